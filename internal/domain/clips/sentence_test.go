package clips

import (
	"testing"
	"time"
)

func TestSplitSentences_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"three sentences", "Hello world. How are you? Great!", []string{"Hello world.", "How are you?", "Great!"}},
		{"terminator runs", "Wait... what?!", []string{"Wait...", "what?!"}},
		{"decimal is not a boundary", "Version 2.5 is faster", []string{"Version 2.5 is faster"}},
		{"trailing fragment kept", "Done here. and then some", []string{"Done here.", "and then some"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sentences %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("sentence %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHasCompleteEnding_Table(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Done.", true},
		{"Really?!", true},
		{`He said "stop."`, true},
		{"(all wrapped up.)", true},
		{"Unfinished thought", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := HasCompleteEnding(tt.text); got != tt.want {
			t.Fatalf("HasCompleteEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTrimToBoundary_CutsToLastSentence(t *testing.T) {
	text, end, ok := TrimToBoundary("First point. Second trailing", 0, 10*time.Second)
	if !ok {
		t.Fatalf("expected a boundary")
	}
	if text != "First point." {
		t.Fatalf("unexpected text: %q", text)
	}
	if end <= 4*time.Second || end >= 5*time.Second {
		t.Fatalf("end should shrink proportionally, got %v", end)
	}
}

func TestTrimToBoundary_NoBoundary(t *testing.T) {
	if _, _, ok := TrimToBoundary("never stops going", 0, 10*time.Second); ok {
		t.Fatalf("expected no boundary")
	}
}
