// Package foxapi is a client for the Firefox SMS verification service.
//
// The service rents phone numbers for receiving verification SMS. Every
// operation is a GET to a single endpoint, /yhapi.ashx, selected by the
// `act` query parameter. Responses are plain text envelopes:
//
//	1|<field>|<field>...    success, positional fields per action
//	0|<code or message>     logical failure
//
// # Results and Errors
//
// Operations return a typed result embedding Status. A logical failure
// reported by the service is NOT a Go error: the result comes back with
// Success == false, Error and ErrorCode set, and a nil error. Use
// Status.Err to turn it into a *ServerError when that is more convenient.
//
// A non-nil error is always an *Error and means the client never got a usable
// envelope:
//   - transport failures (network, timeout, DNS, non-2xx), retried with
//     linear backoff up to Client.MaxRetries times
//   - local decode failures (charset, price list JSON), never retried
//   - ErrNotLoggedIn, raised before any request when a token is required
//     and neither passed nor stored
//
// # Usage Example
//
//	client := foxapi.NewClient(foxapi.Config{Retries: 2})
//
//	login, err := client.Login(ctx, foxapi.LoginParams{APIName: "user", Password: "secret"})
//	if err != nil {
//	    return err
//	}
//	if !login.Success {
//	    return login.Err()
//	}
//
//	lease, err := client.GetPhone(ctx, foxapi.GetPhoneParams{ProjectID: "1001"})
//	...
//	msg, err := client.GetMessage(ctx, foxapi.GetMessageParams{Pkey: lease.Pkey})
//	if err == nil && msg.HasCode() {
//	    fmt.Println(msg.Code)
//	}
//
// Polling until a message arrives lives in the receiver package.
//
// # Concurrency
//
// A Client holds a single session token. Operations may run concurrently
// only when they do not race Login or SetToken.
package foxapi
