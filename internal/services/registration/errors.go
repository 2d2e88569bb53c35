package registration

import (
	"errors"
	"net/http"
)

// Sentinels that every *Error unwraps to
var (
	ErrValidation  = errors.New("invalid registration")
	ErrDuplicate   = errors.New("duplicate registration")
	ErrPersistence = errors.New("registration could not be saved")
)

// Kind classifies a failed registration
type Kind string

const (
	KindValidation  Kind = "validation"
	KindDuplicate   Kind = "duplicate"
	KindPersistence Kind = "persistence"
)

// Fixed user-facing messages, one per kind
const (
	MessageValidation  = "فضلاً اكمل البيانات واختر قرية صحيحة."
	MessageDuplicate   = "هذا اللاعب مُسجّل مسبقاً من نفس القرية."
	MessagePersistence = "حدث خطأ غير متوقع. حاول لاحقاً."
)

// Form holds the submitted values exactly as received so a rejected form can
// be shown again without losing input
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
	Team    string `json:"team"`
}

// Error is returned by Register for every rejected submission
type Error struct {
	Kind    Kind
	Message string
	Form    Form
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

// Unwrap exposes the kind sentinel and, for persistence failures, the storage cause
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Status returns the HTTP status for the failure
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindValidation:
		return ErrValidation
	case KindDuplicate:
		return ErrDuplicate
	default:
		return ErrPersistence
	}
}

func newError(kind Kind, form Form, cause error) *Error {
	var message string
	switch kind {
	case KindValidation:
		message = MessageValidation
	case KindDuplicate:
		message = MessageDuplicate
	default:
		message = MessagePersistence
	}
	return &Error{Kind: kind, Message: message, Form: form, cause: cause}
}
