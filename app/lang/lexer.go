package lang

import "strconv"

const (
	minValue     = -32768
	maxValue     = 32767
	maxNumberLen = 6
)

type lexState int

const (
	stateStart lexState = iota
	stateInNumber
	stateAfterNumber // number ended by whitespace, already emitted
	stateAfterOperator
	stateAfterOpenParen
	stateAfterCloseParen

	numLexStates
)

type charClass int

const (
	classSpace charClass = iota
	classDigit
	classMinus
	classOperator
	classOpenParen
	classCloseParen
	classOther

	numCharClasses
)

func classify(ch byte) charClass {
	switch {
	case isSpace(ch):
		return classSpace
	case isDigit(ch):
		return classDigit
	case ch == '-':
		return classMinus
	case isOperator(ch):
		return classOperator
	case ch == '(':
		return classOpenParen
	case ch == ')':
		return classCloseParen
	}
	return classOther
}

type lexAction int

const (
	actNone       lexAction = iota
	actBegin                // start a number at this column
	actAppend               // extend the current number
	actFlush                // emit the current number
	actEmit                 // emit the character as a term
	actFlushEmit            // emit the current number, then the character
	actEmitUnary            // emit the character as unary minus
)

const noError ErrorCode = -1

type transition struct {
	next   lexState
	action lexAction
	err    ErrorCode
}

func to(next lexState, action lexAction) transition {
	return transition{next: next, action: action, err: noError}
}

func fail(code ErrorCode) transition {
	return transition{err: code}
}

// transitions is indexed by the current state and the class of the next
// character.
var transitions = [numLexStates][numCharClasses]transition{
	stateStart: {
		classSpace:      to(stateStart, actNone),
		classDigit:      to(stateInNumber, actBegin),
		classMinus:      to(stateAfterOperator, actEmitUnary),
		classOperator:   fail(ErrLostOperator),
		classOpenParen:  to(stateAfterOpenParen, actEmit),
		classCloseParen: fail(ErrMismatchClosingParen),
		classOther:      fail(ErrInvalidOperand),
	},
	stateInNumber: {
		classSpace:      to(stateAfterNumber, actFlush),
		classDigit:      to(stateInNumber, actAppend),
		classMinus:      to(stateAfterOperator, actFlushEmit),
		classOperator:   to(stateAfterOperator, actFlushEmit),
		classOpenParen:  fail(ErrExtraneousSymbol),
		classCloseParen: to(stateAfterCloseParen, actFlushEmit),
		classOther:      fail(ErrInvalidOperand),
	},
	stateAfterNumber: {
		classSpace:      to(stateAfterNumber, actNone),
		classDigit:      fail(ErrExtraneousSymbol),
		classMinus:      to(stateAfterOperator, actEmit),
		classOperator:   to(stateAfterOperator, actEmit),
		classOpenParen:  fail(ErrExtraneousSymbol),
		classCloseParen: to(stateAfterCloseParen, actEmit),
		classOther:      fail(ErrInvalidOperand),
	},
	stateAfterOperator: {
		classSpace:      to(stateAfterOperator, actNone),
		classDigit:      to(stateInNumber, actBegin),
		classMinus:      to(stateAfterOperator, actEmitUnary),
		classOperator:   fail(ErrLostOperator),
		classOpenParen:  to(stateAfterOpenParen, actEmit),
		classCloseParen: fail(ErrIllFormed),
		classOther:      fail(ErrIllFormed),
	},
	stateAfterOpenParen: {
		classSpace:      to(stateAfterOpenParen, actNone),
		classDigit:      to(stateInNumber, actBegin),
		classMinus:      to(stateAfterOperator, actEmitUnary),
		classOperator:   fail(ErrLostOperator),
		classOpenParen:  to(stateAfterOpenParen, actEmit),
		classCloseParen: fail(ErrIllFormed),
		classOther:      fail(ErrInvalidOperand),
	},
	stateAfterCloseParen: {
		classSpace:      to(stateAfterCloseParen, actNone),
		classDigit:      fail(ErrExtraneousSymbol),
		classMinus:      to(stateAfterOperator, actEmit),
		classOperator:   to(stateAfterOperator, actEmit),
		classOpenParen:  fail(ErrExtraneousSymbol),
		classCloseParen: to(stateAfterCloseParen, actEmit),
		classOther:      fail(ErrInvalidOperand),
	},
}

// lexer holds the scan state for a single line.
type lexer struct {
	input  string
	state  lexState
	terms  []Term
	number Term // pending digit run while in stateInNumber

	depth     int // open minus closed parentheses so far
	firstOpen int // column of the outermost unclosed '(' or -1
}

// Tokenize splits a line into terms, validating the arrangement of numbers,
// operators and parentheses. It stops at the first error.
func Tokenize(input string) ([]Term, error) {
	if input == "" {
		return nil, newError(ErrIllFormed, 0)
	}
	lx := &lexer{input: input, firstOpen: -1}
	for i := 0; i < len(input); i++ {
		if err := lx.step(i); err != nil {
			return nil, err
		}
	}
	if lx.state == stateInNumber {
		lx.flush()
	}
	if lx.depth != 0 {
		return nil, newError(ErrUnmatchedOpeningParen, lx.firstOpen)
	}
	return lx.terms, nil
}

func (lx *lexer) step(i int) *Error {
	ch := lx.input[i]
	class := classify(ch)
	last := i == len(lx.input)-1

	if class == classOpenParen || class == classCloseParen {
		if err := lx.balance(ch, i); err != nil {
			return err
		}
	}

	tr := transitions[lx.state][class]
	if tr.err != noError {
		return newError(tr.err, i)
	}

	switch class {
	case classSpace:
		if last && tr.next != stateAfterNumber && tr.next != stateAfterCloseParen {
			return newError(ErrIllFormed, i+1)
		}
	case classMinus, classOperator:
		// an expression cannot end on an operator
		if last {
			return newError(ErrIllFormed, i+1)
		}
	}

	switch tr.action {
	case actBegin:
		lx.number = Term{Lexeme: string(ch), Col: i}
	case actAppend:
		lx.number.Lexeme += string(ch)
		if !validLiteral(lx.number.Lexeme) {
			return newError(ErrOutOfRange, lx.number.Col)
		}
	case actFlush:
		lx.flush()
	case actEmit:
		lx.emit(Term{Lexeme: string(ch), Col: i})
	case actFlushEmit:
		lx.flush()
		lx.emit(Term{Lexeme: string(ch), Col: i})
	case actEmitUnary:
		lx.emit(Term{Lexeme: string(ch), Col: i, Unary: true})
	}
	lx.state = tr.next
	return nil
}

// balance tracks parenthesis depth and the column reported when an opening
// parenthesis is never closed.
func (lx *lexer) balance(ch byte, col int) *Error {
	if lx.depth == 0 {
		lx.firstOpen = col
	}
	if ch == '(' {
		lx.depth++
		return nil
	}
	lx.depth--
	if lx.depth < 0 {
		return newError(ErrMismatchClosingParen, col)
	}
	return nil
}

func (lx *lexer) flush() {
	lx.emit(lx.number)
	lx.number = Term{}
}

func (lx *lexer) emit(t Term) {
	lx.terms = append(lx.terms, t)
}

// validLiteral reports whether a digit run is a valid number.
func validLiteral(s string) bool {
	if len(s) > maxNumberLen {
		return false
	}
	v, err := strconv.Atoi(s)
	return err == nil && v >= minValue && v <= maxValue
}
