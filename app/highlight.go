package main

import (
	"image/color"
	"unicode/utf8"

	"bares/app/lang"
)

// TokenKind represents the category of a syntax token.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenNumber
	TokenOperator
	TokenUnary
	TokenParen
	TokenInvalid
	TokenError
)

// Token is a span of text with a syntax category.
type Token struct {
	Text string
	Kind TokenKind
}

// tokenColors maps token kinds to colors. Dark-theme oriented.
var tokenColors = map[TokenKind]color.NRGBA{
	TokenPlain:    {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenNumber:   {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // green
	TokenOperator: {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenUnary:    {R: 0x56, G: 0x9C, B: 0xD6, A: 0xFF}, // blue
	TokenParen:    {R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // yellow
	TokenInvalid:  {R: 0xCE, G: 0x91, B: 0x78, A: 0xFF}, // orange
	TokenError:    {R: 0xF4, G: 0x47, B: 0x47, A: 0xFF}, // red
}

// TokenColor returns the color for a token kind.
func TokenColor(kind TokenKind) color.NRGBA {
	if c, ok := tokenColors[kind]; ok {
		return c
	}
	return tokenColors[TokenPlain]
}

func charKind(ch byte) TokenKind {
	switch {
	case lang.IsDigit(ch):
		return TokenNumber
	case lang.IsOperator(ch):
		return TokenOperator
	case ch == '(' || ch == ')':
		return TokenParen
	case ch == ' ' || ch == '\t':
		return TokenPlain
	default:
		return TokenInvalid
	}
}

// Tokenize splits a line into highlighted spans. Lines the lexer accepts
// have their unary minus signs marked; errCol, when inside the line, marks
// the character an error was reported at.
func Tokenize(line string, errCol int) []Token {
	if line == "" {
		return nil
	}

	kinds := make([]TokenKind, len(line))
	for i := 0; i < len(line); i++ {
		kinds[i] = charKind(line[i])
	}
	if terms, err := lang.Tokenize(line); err == nil {
		for _, t := range terms {
			if t.Unary {
				kinds[t.Col] = TokenUnary
			}
		}
	}
	if errCol >= 0 && errCol < len(line) {
		_, size := utf8.DecodeRuneInString(line[errCol:])
		for i := errCol; i < errCol+size; i++ {
			kinds[i] = TokenError
		}
	}

	var result []Token
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && kinds[i] == kinds[start] && mergeable(kinds[i], line[i]) {
			continue
		}
		result = append(result, Token{Text: line[start:i], Kind: kinds[start]})
		start = i
	}
	return result
}

// mergeable reports whether a byte of kind k continues the current span.
// Operators and parens are always single spans; an error span continues
// only through the remaining bytes of its rune.
func mergeable(k TokenKind, b byte) bool {
	switch k {
	case TokenNumber, TokenPlain, TokenInvalid:
		return true
	case TokenError:
		return !utf8.RuneStart(b)
	}
	return false
}
