package main

import "testing"

func TestLineNumberText(t *testing.T) {
	tests := []struct {
		n, count int
		want     string
	}{
		{1, 1, " 1"},
		{7, 9, " 7"},
		{3, 120, "  3"},
		{120, 120, "120"},
	}
	for _, tt := range tests {
		if got := lineNumberText(tt.n, tt.count); got != tt.want {
			t.Errorf("lineNumberText(%d, %d) = %q, want %q", tt.n, tt.count, got, tt.want)
		}
	}
}

func TestVisibleRange(t *testing.T) {
	first, last := visibleRange(100, 0, 20, 200)
	if first != 0 || last != 12 {
		t.Errorf("visibleRange = %d, %d, want 0, 12", first, last)
	}
	first, last = visibleRange(5, 0, 20, 200)
	if first != 0 || last != 5 {
		t.Errorf("visibleRange = %d, %d, want 0, 5", first, last)
	}
}
