package authn

// Status is the outcome of an authentication attempt. It is the single
// source of truth for whether a login may proceed to session establishment.
type Status int

const (
	StatusFailure Status = iota
	StatusSuccess
	StatusTwoStepRequired
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTwoStepRequired:
		return "two_step_required"
	default:
		return "failure"
	}
}

// Result pairs a Status with the human-readable reason for non-success
// outcomes. Message is empty on success.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Success returns a successful Result with an empty message.
func Success() Result {
	return Result{Status: StatusSuccess}
}

// Failure returns a failed Result carrying the given reason.
func Failure(message string) Result {
	return Result{Status: StatusFailure, Message: message}
}

// TwoStepRequired returns a Result indicating a second factor is needed.
func TwoStepRequired(message string) Result {
	return Result{Status: StatusTwoStepRequired, Message: message}
}
