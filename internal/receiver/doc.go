// Package receiver drives the lease, poll and release workflow on top of the
// foxapi client.
//
// The service never pushes messages to the client, so waiting for an SMS
// means calling getMessage until it succeeds. WaitForMessage does that with
// a fixed interval and an overall timeout; Receive wraps it with getPhone and
// a release of the lease when the wait fails.
//
//	opts := receiver.DefaultOptions()
//	opts.RequireCode = true
//	result, err := receiver.Receive(ctx, client, foxapi.GetPhoneParams{ProjectID: "1001"}, opts)
//	if errors.Is(err, receiver.ErrTimeout) {
//	    // result.Released reports whether the number was handed back
//	}
package receiver
