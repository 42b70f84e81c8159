package vision

import "fmt"

// Kind classifies an extraction failure so the caller can give actionable
// guidance (wrong key vs. exhausted quota vs. a model that simply is not
// available to this key).
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthRejected
	KindQuotaExceeded
	KindModelUnavailable
	KindContentRejected
	KindNoJSONFound
	KindMalformedJSON
)

func (k Kind) String() string {
	switch k {
	case KindAuthRejected:
		return "auth_rejected"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindContentRejected:
		return "content_rejected"
	case KindNoJSONFound:
		return "no_json_found"
	case KindMalformedJSON:
		return "malformed_json"
	default:
		return "unknown"
	}
}

// Error is a classified extraction failure. RawResponse carries the model
// service's response text so the user can diagnose failures themselves;
// there is no server-side log they could consult instead.
type Error struct {
	Kind        Kind
	HTTPStatus  int
	RawResponse string
	Err         error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.HTTPStatus != 0 {
		msg = fmt.Sprintf("%s (http %d)", msg, e.HTTPStatus)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "vision: " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Hint returns a short remediation suggestion for the user, mirroring the
// guidance shown next to each failure mode in the review UI.
func (e *Error) Hint() string {
	switch e.Kind {
	case KindAuthRejected:
		return "check your Gemini API key"
	case KindQuotaExceeded:
		return "API quota exceeded; check your usage limits"
	case KindModelUnavailable:
		return "model not available for this key; try another model from /models"
	case KindContentRejected:
		return "content blocked by safety filters; try a different image"
	case KindNoJSONFound, KindMalformedJSON:
		return "the model response contained no usable JSON; retry the extraction"
	default:
		return "retry the extraction; inspect the raw response for details"
	}
}
