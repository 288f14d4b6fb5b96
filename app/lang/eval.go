package lang

import "strconv"

var zeroTerm = Term{Lexeme: "0", Col: -1}

// EvalPostfix evaluates a postfix term sequence on an operand stack. Every
// operand and every intermediate result must be a valid number.
func EvalPostfix(postfix []Term) (Term, error) {
	var stack []Term

	pop := func() (Term, bool) {
		if len(stack) == 0 {
			return Term{}, false
		}
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t, true
	}

	for _, t := range postfix {
		if t.IsNumber() {
			stack = append(stack, t)
			continue
		}
		if !t.IsOperator() {
			return Term{}, internalf("unexpected term %q in postfix sequence", t.Lexeme)
		}
		right, ok := pop()
		if !ok {
			return Term{}, internalf("missing operand for %q at column %d", t.Lexeme, t.Col+1)
		}
		left := zeroTerm
		if !t.Unary {
			if left, ok = pop(); !ok {
				return Term{}, internalf("missing operand for %q at column %d", t.Lexeme, t.Col+1)
			}
		}
		res, err := applyOperation(t.Lexeme[0], left, right)
		if err != nil {
			return Term{}, err
		}
		stack = append(stack, res)
	}

	if len(stack) != 1 {
		return Term{}, internalf("%d operands left after evaluation", len(stack))
	}
	return stack[0], nil
}

func applyOperation(op byte, left, right Term) (Term, error) {
	a, ok := numberValue(left)
	if !ok {
		return Term{}, arithError(ErrNumericOverflow)
	}
	b, ok := numberValue(right)
	if !ok {
		return Term{}, arithError(ErrNumericOverflow)
	}

	var r int64
	switch op {
	case '^':
		var err error
		if r, err = intPow(a, b); err != nil {
			return Term{}, err
		}
	case '*':
		r = a * b
	case '/':
		if b == 0 {
			return Term{}, arithError(ErrDivisionByZero)
		}
		r = a / b
	case '%':
		if b == 0 {
			return Term{}, arithError(ErrDivisionByZero)
		}
		r = a % b
	case '+':
		r = a + b
	case '-':
		r = a - b
	default:
		return Term{}, internalf("unknown operator %q", op)
	}

	res := Term{Lexeme: strconv.FormatInt(r, 10), Col: -1}
	if _, ok := numberValue(res); !ok {
		return Term{}, arithError(ErrNumericOverflow)
	}
	return res, nil
}

// numberValue parses a term as a valid number: at most six characters of
// decimal text within the signed 16-bit range.
func numberValue(t Term) (int64, bool) {
	if len(t.Lexeme) > maxNumberLen || !t.IsNumber() {
		return 0, false
	}
	v, err := strconv.ParseInt(t.Lexeme, 10, 64)
	if err != nil || v < minValue || v > maxValue {
		return 0, false
	}
	return v, true
}

// intPow raises base to exp in integer arithmetic. Negative exponents
// truncate toward zero like integer division.
func intPow(base, exp int64) (int64, error) {
	if exp < 0 {
		switch base {
		case 0:
			return 0, arithError(ErrNumericOverflow)
		case 1:
			return 1, nil
		case -1:
			if exp%2 == 0 {
				return 1, nil
			}
			return -1, nil
		}
		return 0, nil
	}
	switch base {
	case 0, 1:
		if exp == 0 {
			return 1, nil
		}
		return base, nil
	case -1:
		if exp%2 == 0 {
			return 1, nil
		}
		return -1, nil
	}
	r := int64(1)
	for i := int64(0); i < exp; i++ {
		r *= base
		if r < minValue || r > maxValue {
			return 0, arithError(ErrNumericOverflow)
		}
	}
	return r, nil
}

// EvalLine tokenizes, converts and evaluates a single expression.
func EvalLine(line string) (int, error) {
	terms, err := Tokenize(line)
	if err != nil {
		return 0, err
	}
	postfix, err := ToPostfix(terms)
	if err != nil {
		return 0, err
	}
	res, err := EvalPostfix(postfix)
	if err != nil {
		return 0, err
	}
	v, ok := numberValue(res)
	if !ok {
		return 0, arithError(ErrNumericOverflow)
	}
	return int(v), nil
}
