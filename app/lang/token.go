package lang

import "fmt"

// Term represents a single lexical unit of an expression: a number, an
// operator, or a parenthesis.
type Term struct {
	Lexeme string
	Col    int  // 0-based column of the first character in the input
	Unary  bool // true only for a '-' acting as negation
}

func (t Term) String() string {
	if t.Unary {
		return fmt.Sprintf("Term(%q unary, %d)", t.Lexeme, t.Col)
	}
	return fmt.Sprintf("Term(%q, %d)", t.Lexeme, t.Col)
}

// IsNumber reports whether the term is an integer literal, optionally
// negative. Evaluation results carry a leading '-'.
func (t Term) IsNumber() bool {
	s := t.Lexeme
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsOperator reports whether the term is one of + - * / % ^.
func (t Term) IsOperator() bool {
	return len(t.Lexeme) == 1 && isOperator(t.Lexeme[0])
}

func (t Term) IsOpenParen() bool  { return t.Lexeme == "(" }
func (t Term) IsCloseParen() bool { return t.Lexeme == ")" }

// Precedence returns the grouping rank of the term. Lower values bind
// tighter; -1 means the term is not an operator or parenthesis.
func (t Term) Precedence() int {
	switch {
	case t.IsOpenParen(), t.IsCloseParen():
		return 1
	case !t.IsOperator():
		return -1
	case t.Unary:
		return 2
	}
	switch t.Lexeme[0] {
	case '^':
		return 3
	case '*', '/', '%':
		return 4
	default: // + -
		return 5
	}
}

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch byte) bool { return isDigit(ch) }

// IsOperator reports whether ch is a binary or unary operator character.
func IsOperator(ch byte) bool { return isOperator(ch) }

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isOperator(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '^':
		return true
	}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}
