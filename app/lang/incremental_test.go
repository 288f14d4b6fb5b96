package lang

import "testing"

func TestEvalAllBasic(t *testing.T) {
	es := &EvalState{}

	lines := []string{"2+3", "5/0", "(1"}
	results := es.EvalAll(lines)

	if results[0].Text != "5" || results[0].IsErr {
		t.Errorf("line 0: got %+v, want 5", results[0])
	}
	if results[1].Text != "Division by zero!" || !results[1].IsErr || results[1].Col != -1 {
		t.Errorf("line 1: got %+v", results[1])
	}
	if !results[2].IsErr || results[2].Col != 0 {
		t.Errorf("line 2: got %+v, want error at column 0", results[2])
	}

	// same lines again, served from the cache
	results2 := es.EvalAll(lines)
	for i := range results {
		if results[i] != results2[i] {
			t.Errorf("line %d: cached %+v, first %+v", i, results2[i], results[i])
		}
	}
}

func TestEvalAllRecomputesChangedLines(t *testing.T) {
	es := &EvalState{}
	es.EvalAll([]string{"1+1", "2*2"})

	results := es.EvalAll([]string{"1+1", "2*3"})
	if results[1].Text != "6" {
		t.Errorf("line 1: got %q, want 6", results[1].Text)
	}

	// line count change resets the cache
	results = es.EvalAll([]string{"7"})
	if len(results) != 1 || results[0].Text != "7" {
		t.Errorf("after shrink: got %+v", results)
	}
}

func TestEvalAllEmptyLine(t *testing.T) {
	es := &EvalState{}
	results := es.EvalAll([]string{""})
	if !results[0].IsErr {
		t.Errorf("empty line: got %+v, want error", results[0])
	}
}

func TestEvalAllCustomReporter(t *testing.T) {
	r, err := NewReporter(map[string]string{"DivisionByZero": "div0"})
	if err != nil {
		t.Fatal(err)
	}
	es := &EvalState{Reporter: &r}
	results := es.EvalAll([]string{"1/0"})
	if results[0].Text != "div0" {
		t.Errorf("got %q, want div0", results[0].Text)
	}
}
