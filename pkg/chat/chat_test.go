package chat

import "testing"

func TestLineString(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		expected string
	}{
		{"clerk line", Clerk("State your purpose here, stranger."), "Clerk: State your purpose here, stranger."},
		{"player line", You("let me in"), "You: let me in"},
		{"empty text keeps label", Clerk(""), "Clerk: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	var tr Transcript
	if _, ok := tr.Last(); ok {
		t.Fatal("Last() on empty transcript returned ok")
	}

	tr.Append(Clerk("one"))
	tr.Append(You("two"))

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}

	last, ok := tr.Last()
	if !ok || last != You("two") {
		t.Errorf("Last() = %v, %v; want You: two", last, ok)
	}

	lines := tr.Lines()
	lines[0] = Clerk("mutated")
	if first := tr.Lines()[0]; first.Text != "one" {
		t.Errorf("Lines() exposed internal slice, first = %q", first.Text)
	}
}

func TestInputRequestValidate(t *testing.T) {
	if err := (&InputRequest{}).Validate(); err == nil {
		t.Error("Validate() on empty message returned nil")
	}
	if err := (&InputRequest{Message: "ping"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
