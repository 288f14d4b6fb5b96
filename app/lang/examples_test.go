package lang

import "testing"

// TestExamples checks the rendered output of complete lines, exactly as the
// batch tool writes them.
func TestExamples(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// precedence
		{"2+3*4", "14"},
		{"(2+3)*4", "20"},
		{"2^3^2", "64"},

		// unary minus
		{"-5+3", "-2"},
		{"3*-2", "-6"},

		// arithmetic errors
		{"5/0", "Division by zero!"},
		{"32767+1", "Numeric overflow error!"},

		// parentheses
		{"(2+3", "Missing closing ')' to match opening '(' at: column 1."},
		{"2+3)", "Mismatch ')': column 4."},
		{"()", "Ill-formed expression or missing term detected: column 2."},

		// malformed input
		{"2++3", "Lost operator: column 3."},
		{"2 3", "Extraneous symbol: column 3."},
		{"2+", "Ill-formed expression or missing term detected: column 3."},
		{"40000", "Numeric constant out of range: column 1."},
		{"a", "Invalid operand: column 1."},
		{"1 + a", "Ill-formed expression or missing term detected: column 5."},

		// literals are rendered canonically
		{"007", "7"},
		{"  42", "42"},
	}

	r := DefaultReporter()
	for _, tt := range tests {
		got := EvalOne(r, tt.input)
		if got.Text != tt.want {
			t.Errorf("%q => %q, want %q", tt.input, got.Text, tt.want)
		}
	}
}
