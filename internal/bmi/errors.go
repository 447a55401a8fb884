package bmi

import "errors"

// Kind identifies why a measurement was rejected.
type Kind string

const (
	KindMissingInput      Kind = "missing_input"
	KindNonPositiveWeight Kind = "non_positive_weight"
	KindExcessiveWeight   Kind = "excessive_weight"
	KindNonPositiveHeight Kind = "non_positive_height"
	KindExcessiveHeight   Kind = "excessive_height"
)

// Messages shown to the user, one per kind. The wording is part of the
// public behaviour and must not be edited.
var messages = map[Kind]string{
	KindMissingInput:      "Do you think I am God ? You do not tell me anything, how do I calculate !!!",
	KindNonPositiveWeight: "You will hit the lightest Guinness world record, be careful of gravity does not work for you !",
	KindExcessiveWeight:   "You do not test, Your weight has crushed my scales.",
	KindNonPositiveHeight: "You so short, smaller than the ants ?",
	KindExcessiveHeight:   "you are so tall ! Can you help me pick the stars ?",
}

var (
	ErrMissingInput      = &ValidationError{Kind: KindMissingInput}
	ErrNonPositiveWeight = &ValidationError{Kind: KindNonPositiveWeight}
	ErrExcessiveWeight   = &ValidationError{Kind: KindExcessiveWeight}
	ErrNonPositiveHeight = &ValidationError{Kind: KindNonPositiveHeight}
	ErrExcessiveHeight   = &ValidationError{Kind: KindExcessiveHeight}

	ErrUnknownSex     = errors.New("unknown sex")
	ErrNonFiniteIdeal = errors.New("ideal weight is not a finite number")
)

// ValidationError rejects a single submission. Its Error text is the
// message presented to the user.
type ValidationError struct {
	Kind Kind
}

func (e *ValidationError) Error() string {
	return messages[e.Kind]
}

// Is matches any ValidationError of the same kind, so callers can use
// errors.Is(err, bmi.ErrExcessiveWeight).
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// AsValidationError unwraps err into a ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
