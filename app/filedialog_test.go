package main

import (
	"os"
	"path/filepath"
	"testing"

	"bares/app/lang"
)

func TestResultsText(t *testing.T) {
	var st lang.EvalState
	got := string(ResultsText(st.EvalAll([]string{"2+3", "1/0", "(1"})))
	want := "5\nDivision by zero!\nMissing closing ')' to match opening '(' at: column 1.\n"
	if got != want {
		t.Errorf("ResultsText = %q, want %q", got, want)
	}
}

func TestSavePathAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	res := <-SavePathAsync(path, []byte("1+1\n"))
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1+1\n" {
		t.Errorf("content = %q", data)
	}
}
