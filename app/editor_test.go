package main

import (
	"reflect"
	"testing"
)

func TestEditorState(t *testing.T) {
	es := NewEditorState()
	if got := es.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("empty Lines() = %q", got)
	}
	if got := es.Title(); got != "untitled - bares" {
		t.Errorf("Title() = %q", got)
	}

	es.SetContent([]byte("1+1\r\n2*3\r4"))
	if got := es.Lines(); !reflect.DeepEqual(got, []string{"1+1", "2*3", "4"}) {
		t.Errorf("Lines() = %q", got)
	}

	es.FilePath = "/tmp/work/exprs.txt"
	es.Dirty = true
	if got := es.Title(); got != "* exprs.txt - bares" {
		t.Errorf("Title() = %q", got)
	}
}
