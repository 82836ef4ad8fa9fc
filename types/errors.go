package types

import (
	"errors"
	"fmt"
)

// ErrorKind tags the behavior class of a core error, per the taxonomy:
// illegal constructions, unification failures between closed terms, and
// missing bindings discovered after type-check completion.
type ErrorKind int

const (
	// KindIllegalType covers double-binding, self-binding, vacuous
	// binding, generalizing a non-free variable, embedding an open or
	// already-generalized term into a closed parent, and supplying the
	// wrong number of actuals to a trait.
	KindIllegalType ErrorKind = iota
	// KindUnificationFailure covers two closed terms the caller asked
	// to identify that have incompatible structure.
	KindUnificationFailure
	// KindMissingBinding covers a free variable surviving into a
	// position required to be closed.
	KindMissingBinding
)

func (k ErrorKind) String() string {
	switch k {
	case KindIllegalType:
		return "IllegalType"
	case KindUnificationFailure:
		return "UnificationFailure"
	case KindMissingBinding:
		return "MissingBinding"
	default:
		return "UnknownError"
	}
}

// Error is the single error type the core ever returns. Its Kind
// selects the taxonomy bucket; errors.Is matches on Kind, errors.As
// recovers the concrete *Error for inspecting Handle/Node context.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Handle, when valid, is the node the failed operation concerned
	// (e.g. the variable that failed to bind).
	Handle Handle
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is supports errors.Is(err, ErrIllegalType) and friends by comparing
// Kind only, ignoring message and handle.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values usable with errors.Is to test an error's taxonomy
// bucket without inspecting its message.
var (
	ErrIllegalType         = &Error{Kind: KindIllegalType}
	ErrUnificationFailure  = &Error{Kind: KindUnificationFailure}
	ErrMissingBinding      = &Error{Kind: KindMissingBinding}
)

func illegalf(h Handle, format string, args ...interface{}) *Error {
	return &Error{Kind: KindIllegalType, Msg: fmt.Errorf(format, args...).Error(), Handle: h}
}

func unificationFailuref(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnificationFailure, Msg: fmt.Errorf(format, args...).Error()}
}

func missingBindingf(h Handle, format string, args ...interface{}) *Error {
	return &Error{Kind: KindMissingBinding, Msg: fmt.Errorf(format, args...).Error(), Handle: h}
}

// NewMissingBinding lets an external collaborator (the type-check
// walker) raise a MissingBinding error for a free variable it found
// surviving into a position that was required to be closed once
// type-checking finished — the core itself never raises this kind,
// since it has no notion of "type-check completion."
func NewMissingBinding(h Handle, format string, args ...interface{}) error {
	return missingBindingf(h, format, args...)
}

// Message texts for the well-known failure modes listed in the
// binder-discipline and trait sections. illegalf keeps only the
// formatted text of these in an *Error's Msg, so errors.Is matches a
// returned error by its Kind sentinel above, not by these values.
var (
	errDoubleBinding          = errors.New("type variable is already bound at another node")
	errSelfBinding            = errors.New("a node cannot bind itself as its own type variable")
	errVacuousBinding         = errors.New("type variable does not occur free in the binder's children")
	errNonComposite           = errors.New("only composite nodes may bind type variables")
	errEmbeddedOpenOrPolyTerm = errors.New("cannot embed an open or already-generalized term into a closed construction")
	errWrongActualsArity      = errors.New("trait instantiation supplied the wrong number of actuals")
)
