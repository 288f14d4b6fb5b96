package lang

// ToPostfix reorders an infix term sequence into postfix (reverse Polish)
// order using the shunting-yard algorithm. The input is expected to come
// from Tokenize; arrangement errors it would have rejected are reported as
// internal faults.
func ToPostfix(terms []Term) ([]Term, error) {
	out := make([]Term, 0, len(terms))
	var ops []Term

	for _, t := range terms {
		switch {
		case t.IsNumber():
			out = append(out, t)

		case t.IsOpenParen():
			ops = append(ops, t)

		case t.IsCloseParen():
			for {
				if len(ops) == 0 {
					return nil, internalf("unmatched ')' at column %d", t.Col+1)
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.IsOpenParen() {
					break
				}
				out = append(out, top)
			}

		case t.IsOperator():
			// A prefix operator has no left operand in the output yet, so
			// nothing pending can be applied before it.
			if !t.Unary {
				for len(ops) > 0 {
					top := ops[len(ops)-1]
					if top.IsOpenParen() || t.Precedence() < top.Precedence() {
						break
					}
					out = append(out, top)
					ops = ops[:len(ops)-1]
				}
			}
			ops = append(ops, t)

		default:
			return nil, internalf("unexpected term %q at column %d", t.Lexeme, t.Col+1)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.IsOpenParen() {
			return nil, internalf("unclosed '(' at column %d", top.Col+1)
		}
		out = append(out, top)
	}
	return out, nil
}

// FormatPostfix renders a postfix sequence with single spaces between
// lexemes. Unary minus is written as '~' so it stays distinguishable from
// subtraction.
func FormatPostfix(terms []Term) string {
	var b []byte
	for i, t := range terms {
		if i > 0 {
			b = append(b, ' ')
		}
		if t.Unary {
			b = append(b, '~')
			continue
		}
		b = append(b, t.Lexeme...)
	}
	return string(b)
}
