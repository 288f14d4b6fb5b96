package lang

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrorCode identifies one of the reportable expression errors.
type ErrorCode int

const (
	ErrOutOfRange ErrorCode = iota
	ErrIllFormed
	ErrInvalidOperand
	ErrExtraneousSymbol
	ErrMismatchClosingParen
	ErrLostOperator
	ErrUnmatchedOpeningParen
	ErrDivisionByZero
	ErrNumericOverflow

	numErrorCodes
)

var codeNames = [numErrorCodes]string{
	"OutOfRange",
	"IllFormedExpression",
	"InvalidOperand",
	"ExtraneousSymbol",
	"MismatchClosingParen",
	"LostOperator",
	"UnmatchedOpeningParen",
	"DivisionByZero",
	"NumericOverflow",
}

func (c ErrorCode) String() string {
	if c < 0 || c >= numErrorCodes {
		return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
	}
	return codeNames[c]
}

// HasColumn reports whether messages for this code end with a column.
func (c ErrorCode) HasColumn() bool {
	return c >= 0 && c <= ErrUnmatchedOpeningParen
}

// ParseErrorCode maps a code name such as "DivisionByZero" back to its code.
func ParseErrorCode(name string) (ErrorCode, bool) {
	for i, n := range codeNames {
		if n == name {
			return ErrorCode(i), true
		}
	}
	return 0, false
}

// Error is the single reportable failure of one expression.
// Col is -1 for arithmetic errors.
type Error struct {
	Code ErrorCode
	Col  int
}

func (e *Error) Error() string {
	return defaultReporter.Message(e.Code, e.Col)
}

func newError(code ErrorCode, col int) *Error {
	return &Error{Code: code, Col: col}
}

func arithError(code ErrorCode) *Error {
	return &Error{Code: code, Col: -1}
}

// ErrInternal marks invariant violations between stages. Such a failure is a
// bug in an earlier stage, never a property of the input.
var ErrInternal = errors.New("internal error")

func internalf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInternal, format, args...)
}

const (
	msgOutOfRange            = "Numeric constant out of range: column "
	msgIllFormed             = "Ill-formed expression or missing term detected: column "
	msgInvalidOperand        = "Invalid operand: column "
	msgExtraneousSymbol      = "Extraneous symbol: column "
	msgMismatchClosingParen  = "Mismatch ')': column "
	msgLostOperator          = "Lost operator: column "
	msgUnmatchedOpeningParen = "Missing closing ')' to match opening '(' at: column "
	msgDivisionByZero        = "Division by zero!"
	msgNumericOverflow       = "Numeric overflow error!"
)

// Reporter renders error codes as user-facing messages. Its table is fixed
// at construction.
type Reporter struct {
	messages [numErrorCodes]string
}

var defaultReporter = DefaultReporter()

// DefaultReporter returns a Reporter with the built-in English messages.
func DefaultReporter() Reporter {
	return Reporter{messages: [numErrorCodes]string{
		msgOutOfRange,
		msgIllFormed,
		msgInvalidOperand,
		msgExtraneousSymbol,
		msgMismatchClosingParen,
		msgLostOperator,
		msgUnmatchedOpeningParen,
		msgDivisionByZero,
		msgNumericOverflow,
	}}
}

// NewReporter returns the default table with the named entries replaced.
// Keys are code names as returned by ErrorCode.String.
func NewReporter(overrides map[string]string) (Reporter, error) {
	r := DefaultReporter()
	for name, text := range overrides {
		code, ok := ParseErrorCode(name)
		if !ok {
			return Reporter{}, errors.Errorf("unknown error code name %q", name)
		}
		r.messages[code] = text
	}
	return r, nil
}

// Message formats code and 0-based column. Column-bearing codes render the
// column 1-based followed by a period.
func (r Reporter) Message(code ErrorCode, col int) string {
	if code < 0 || code >= numErrorCodes {
		return ""
	}
	msg := r.messages[code]
	if code.HasColumn() {
		msg += strconv.Itoa(col+1) + "."
	}
	return msg
}

// Render formats any error returned by EvalLine or its stages.
func (r Reporter) Render(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return r.Message(e.Code, e.Col)
	}
	return err.Error()
}
