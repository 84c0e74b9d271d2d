// Package apperr carries typed outcomes from services to the route layer.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindGone
	KindUpstream
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindGone:
		return "gone"
	case KindUpstream:
		return "upstream"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Stable error codes shared with the frontend.
const (
	CodeEmailInvalid          = "EMAIL_INVALID"
	CodeGameIDRequired        = "GAME_ID_REQUIRED"
	CodeGameNotFound          = "GAME_NOT_FOUND"
	CodeGameDisabled          = "GAME_DISABLED"
	CodeGameInactive          = "GAME_INACTIVE"
	CodeOrderNotFound         = "ORDER_NOT_FOUND"
	CodePriceInvalid          = "PRICE_INVALID"
	CodePromoCodeInvalid      = "PROMO_CODE_INVALID"
	CodePromoInactive         = "PROMO_INACTIVE"
	CodePaymentNotCompleted   = "PAYMENT_NOT_COMPLETED"
	CodeSessionConflict       = "SESSION_CONFLICT"
	CodeLinkExpired           = "LINK_EXPIRED"
	CodeTeamNameTaken         = "TEAM_NAME_TAKEN"
	CodeTeamInvalid           = "TEAM_INVALID"
	CodeResultDuplicate       = "RESULT_DUPLICATE"
	CodeResultInvalid         = "RESULT_INVALID"
	CodeQuestionNotFound      = "QUESTION_NOT_FOUND"
	CodeQuestionInvalid       = "QUESTION_INVALID"
	CodeQuestionOrderMismatch = "QUESTION_ORDER_MISMATCH"
	CodeProviderError         = "PROVIDER_ERROR"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInternal              = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on code so sentinel values can be compared with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Kind == e.Kind
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Invalid(code, message string) *Error  { return New(KindInvalid, code, message) }
func NotFound(code, message string) *Error { return New(KindNotFound, code, message) }
func Conflict(code, message string) *Error { return New(KindConflict, code, message) }
func Gone(code, message string) *Error     { return New(KindGone, code, message) }
func Forbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}
func Unauthorized(code, message string) *Error {
	return New(KindUnauthorized, code, message)
}
func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, CodeProviderError, message, err)
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports KindInternal for anything untyped.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
