package core

import "errors"

// Kind classifies every failure that can abort a run.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingFile
	KindInvalidFormat
	KindNonSequentialFiles
	KindRecordInvalidFormat
	KindInvalidCode
	KindAmountOverflow
)

func (k Kind) String() string {
	switch k {
	case KindMissingFile:
		return "missing_file"
	case KindInvalidFormat:
		return "invalid_format"
	case KindNonSequentialFiles:
		return "non_sequential_files"
	case KindRecordInvalidFormat:
		return "record_invalid_format"
	case KindInvalidCode:
		return "invalid_code"
	case KindAmountOverflow:
		return "amount_overflow"
	default:
		return "unknown_error"
	}
}

// Error is the tagged failure returned by every pipeline stage.
// Subject is the entity kind of the definition file involved, File the
// record or definition file name when one is known.
type Error struct {
	Kind    Kind
	Subject EntityKind
	File    string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Subject != "" {
		msg += " (" + string(e.Subject) + ")"
	}
	if e.File != "" {
		msg += ": " + e.File
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind so callers can compare against a bare
// &Error{Kind: ...}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind Kind, file string, err error) *Error {
	return &Error{Kind: kind, File: file, Err: err}
}

// KindOf reports the kind of err, or KindUnknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
