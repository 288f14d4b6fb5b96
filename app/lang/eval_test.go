package lang

import (
	"errors"
	"testing"
)

func TestEvalLine(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2+3", 5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-4-3", 3},
		{"-5+3", -2},
		{"3*-2", -6},
		{"--3", 3},
		{"2--3", 5},
		{"-(2+3)", -5},
		{"7/2", 3},
		{"-7/2", -3},
		{"7%3", 1},
		{"-7%3", -1},
		{"2^14", 16384},
		{"2^0", 1},
		{"0^0", 1},
		{"-2^2", 4},
		{"2^-1", 0},
		{"1^-5", 1},
		{"(-1)^-3", -1},
		{"(-1)^4", 1},
		{"32767", 32767},
		{"007", 7},
		{"-32767-1", -32768},
		{" 1 + 2 ", 3},
		{"((((5))))", 5},
		{"12*(2+6*6)+16/4-90/1", 370},
	}

	for _, tt := range tests {
		got, err := EvalLine(tt.input)
		if err != nil {
			t.Errorf("EvalLine(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EvalLine(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// Exponentiation groups left to right like the other binary operators.
func TestPowerIsLeftAssociative(t *testing.T) {
	got, err := EvalLine("2^3^2")
	if err != nil {
		t.Fatalf("EvalLine error: %v", err)
	}
	if got != 64 {
		t.Errorf("2^3^2 = %d, want 64", got)
	}
}

func TestEvalLineArithmeticErrors(t *testing.T) {
	tests := []struct {
		input string
		code  ErrorCode
	}{
		{"5/0", ErrDivisionByZero},
		{"5%0", ErrDivisionByZero},
		{"1/(2-2)", ErrDivisionByZero},
		{"32767+1", ErrNumericOverflow},
		{"-32767-2", ErrNumericOverflow},
		{"200*200", ErrNumericOverflow},
		{"2^15", ErrNumericOverflow},
		{"0^-1", ErrNumericOverflow},
		{"(-32767-1)/-1", ErrNumericOverflow},
		{"-(-32767-1)", ErrNumericOverflow},
	}

	for _, tt := range tests {
		_, err := EvalLine(tt.input)
		var e *Error
		if !errors.As(err, &e) {
			t.Errorf("EvalLine(%q) error = %v, want %v", tt.input, err, tt.code)
			continue
		}
		if e.Code != tt.code || e.Col != -1 {
			t.Errorf("EvalLine(%q) = %v at %d, want %v without column", tt.input, e.Code, e.Col, tt.code)
		}
	}
}

func TestEvalPostfixOperandChecks(t *testing.T) {
	// leaf operands are validated as well as results
	_, err := EvalPostfix([]Term{{Lexeme: "99999"}, {Lexeme: "1"}, {Lexeme: "+"}})
	var e *Error
	if !errors.As(err, &e) || e.Code != ErrNumericOverflow {
		t.Errorf("oversized operand error = %v, want %v", err, ErrNumericOverflow)
	}

	_, err = EvalPostfix([]Term{{Lexeme: "0001000"}, {Lexeme: "1"}, {Lexeme: "*"}})
	if !errors.As(err, &e) || e.Code != ErrNumericOverflow {
		t.Errorf("seven-character operand error = %v, want %v", err, ErrNumericOverflow)
	}
}

func TestEvalPostfixInternalFaults(t *testing.T) {
	tests := []struct {
		name    string
		postfix []Term
	}{
		{"empty", nil},
		{"missing operand", []Term{{Lexeme: "1"}, {Lexeme: "+"}}},
		{"no operands", []Term{{Lexeme: "-", Unary: true}}},
		{"leftover operands", []Term{{Lexeme: "1"}, {Lexeme: "2"}}},
		{"parenthesis", []Term{{Lexeme: "1"}, {Lexeme: "("}}},
	}

	for _, tt := range tests {
		_, err := EvalPostfix(tt.postfix)
		if !errors.Is(err, ErrInternal) {
			t.Errorf("%s: error = %v, want internal fault", tt.name, err)
		}
	}
}

func TestEvalLineIsRepeatable(t *testing.T) {
	for _, input := range []string{"2+3*4", "5/0", "(2+3", "-32767-1"} {
		v1, err1 := EvalLine(input)
		v2, err2 := EvalLine(input)
		if v1 != v2 {
			t.Errorf("EvalLine(%q) gave %d then %d", input, v1, v2)
		}
		if (err1 == nil) != (err2 == nil) || (err1 != nil && err1.Error() != err2.Error()) {
			t.Errorf("EvalLine(%q) errors differ: %v, %v", input, err1, err2)
		}
	}
}
