package dto

// Envelope is the wrapper every endpoint returns. Failures always carry a
// fixed user-safe message; store errors never leak into responses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK builds a success envelope with an optional message.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// ActionEnvelope carries the action discriminator every entry point
// dispatches on.
type ActionEnvelope struct {
	Action string `form:"action" json:"action"`
}
