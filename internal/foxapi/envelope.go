package foxapi

import (
	"strconv"
	"strings"
)

const (
	envelopeSeparator = "|"
	successFlag       = "1"

	// UnknownErrorMessage is used when a failure envelope carries no message.
	UnknownErrorMessage = "Unknown error"

	// EmptyPayloadMessage is used when a success envelope lacks the fields its action returns.
	EmptyPayloadMessage = "empty response payload"
)

// Envelope is a decoded `flag|field|field...` response.
//
// On success Values holds every segment after the flag and Payload holds the
// raw text after the first separator. On failure Error is the second segment
// and ErrorCode its integer value (0 when it does not parse).
type Envelope struct {
	Action    Action
	Raw       string
	Success   bool
	Values    []string
	Payload   string
	Error     string
	ErrorCode int
}

// DecodeEnvelope splits a response body into its flag and positional fields.
func DecodeEnvelope(action Action, body string) *Envelope {
	body = strings.TrimPrefix(body, "\ufeff")
	body = strings.TrimSpace(body)

	env := &Envelope{Action: action, Raw: body}

	flag, payload, hasPayload := strings.Cut(body, envelopeSeparator)
	if strings.TrimSpace(flag) == successFlag {
		env.Success = true
		if hasPayload {
			env.Payload = payload
			env.Values = strings.Split(payload, envelopeSeparator)
		}
		return env
	}

	message := ""
	if hasPayload {
		message, _, _ = strings.Cut(payload, envelopeSeparator)
	}
	if message == "" {
		env.Error = UnknownErrorMessage
	} else {
		env.Error = message
		if code, err := strconv.Atoi(strings.TrimSpace(message)); err == nil {
			env.ErrorCode = code
		}
	}
	return env
}

// Field returns the value at the position the decode table assigns to name.
// Unknown names and missing positions yield "".
func (e *Envelope) Field(name string) string {
	for i, field := range fieldLayouts[e.Action] {
		if field != name {
			continue
		}
		if i < len(e.Values) {
			return e.Values[i]
		}
		return ""
	}
	return ""
}

// Fields maps every field of the action's layout to its decoded value.
func (e *Envelope) Fields() map[string]string {
	layout := fieldLayouts[e.Action]
	out := make(map[string]string, len(layout))
	for i, name := range layout {
		if i < len(e.Values) {
			out[name] = e.Values[i]
		} else {
			out[name] = ""
		}
	}
	return out
}

// Status converts the envelope into the common result header.
// An action with a field layout whose success payload is empty is reported
// as a logical failure.
func (e *Envelope) Status() Status {
	if !e.Success {
		return Status{
			Success:   false,
			Error:     e.Error,
			ErrorCode: e.ErrorCode,
			Raw:       e.Raw,
			action:    e.Action,
		}
	}
	if e.Payload == "" && (len(fieldLayouts[e.Action]) > 0 || e.Action == ActionGetItem) {
		return Status{Success: false, Error: EmptyPayloadMessage, Raw: e.Raw, action: e.Action}
	}
	return Status{Success: true, Raw: e.Raw, action: e.Action}
}
