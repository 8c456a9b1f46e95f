package serde

import "errors"

// Kind classifies a decode failure.
type Kind uint8

const (
	// Other is an unclassified failure.
	Other Kind = iota
	// Message is a free-form error raised by the surrounding serialization framework.
	Message
	// Parsing means the input had the right length but is not a valid value.
	Parsing
	// DataLength means the input is shorter or longer than the fixed encoding size.
	DataLength
)

func (k Kind) String() string {
	switch k {
	case Message:
		return "message"
	case Parsing:
		return "parsing error"
	case DataLength:
		return "data length error"
	default:
		return "unknown error"
	}
}

var (
	ErrOther      = &Error{Kind: Other}
	ErrParsing    = &Error{Kind: Parsing}
	ErrDataLength = &Error{Kind: DataLength}
)

// Error is the single error type returned by the codecs and their framework adapters.
type Error struct {
	Kind Kind
	// Msg is the detail text. For Message errors it is the whole error text.
	Msg string
	// Err is the framework error a Message error was built from, if any.
	Err error
}

// FromMessage builds a Message error. It is used by both the encoding and the
// decoding direction of a framework adapter.
func FromMessage(msg string) *Error {
	return &Error{Kind: Message, Msg: msg}
}

// NewDataLengthError reports a length mismatch.
func NewDataLengthError(msg string) *Error {
	return &Error{Kind: DataLength, Msg: msg}
}

// NewParsingError reports bytes that do not decode to a valid value.
func NewParsingError(msg string) *Error {
	return &Error{Kind: Parsing, Msg: msg}
}

func (e *Error) Error() string {
	if e.Kind == Message {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so that errors.Is(err, ErrParsing) holds for every parsing error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Wrap translates an arbitrary error into the taxonomy. Errors that already carry
// a *Error are returned untouched, everything else becomes a Message error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var serr *Error
	if errors.As(err, &serr) {
		return err
	}
	return &Error{Kind: Message, Msg: err.Error(), Err: err}
}

// KindOf returns the kind carried by err, or Other when err holds no *Error.
func KindOf(err error) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return Other
}
