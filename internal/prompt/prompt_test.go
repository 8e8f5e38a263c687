package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInputUsesDefaultOnEmptyAnswer(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(strings.NewReader("\n"), &out)

	got, err := l.Input(Question{Message: "Theme Version", Default: "1.0.0"})
	if err != nil {
		t.Fatalf("Input error: %v", err)
	}
	if got != "1.0.0" {
		t.Errorf("Input() = %q, want %q", got, "1.0.0")
	}
	if !strings.Contains(out.String(), "Theme Version") {
		t.Errorf("prompt not printed, got %q", out.String())
	}
}

func TestInputReasksUntilValid(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(strings.NewReader("bad\ngood\n"), &out)

	q := Question{
		Message: "Key",
		Validate: func(s string) error {
			if s != "good" {
				return errors.New("invalid key format")
			}
			return nil
		},
	}
	got, err := l.Input(q)
	if err != nil {
		t.Fatalf("Input error: %v", err)
	}
	if got != "good" {
		t.Errorf("Input() = %q, want %q", got, "good")
	}
	if !strings.Contains(out.String(), "invalid key format") {
		t.Errorf("validation message not shown, got %q", out.String())
	}
}

func TestInputLastLineWithoutNewline(t *testing.T) {
	l := NewLine(strings.NewReader("my-theme"), &bytes.Buffer{})
	got, err := l.Input(Question{Message: "Key"})
	if err != nil {
		t.Fatalf("Input error: %v", err)
	}
	if got != "my-theme" {
		t.Errorf("Input() = %q, want %q", got, "my-theme")
	}
}

func TestInputEOF(t *testing.T) {
	l := NewLine(strings.NewReader(""), &bytes.Buffer{})
	_, err := l.Input(Question{Message: "Key"})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestPasswordFromNonTerminal(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(strings.NewReader("s3cr;et\n"), &out)
	got, err := l.Password(Question{Message: "Password", Default: "admin"})
	if err != nil {
		t.Fatalf("Password error: %v", err)
	}
	if got != "s3cr;et" {
		t.Errorf("Password() = %q, want %q", got, "s3cr;et")
	}
	if strings.Contains(out.String(), "admin") {
		t.Error("password default should not be printed")
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  int
	}{
		{"explicit choice", "2\n", "", 1},
		{"default choice", "\n", "3", 2},
		{"retry after out of range", "9\n1\n", "", 0},
		{"retry after garbage", "abc\n3\n", "", 2},
	}
	choices := []string{"Bootstrap", "Foundation", "Simple"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLine(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := l.Select(Question{Message: "Theme", Default: tt.def}, choices)
			if err != nil {
				t.Fatalf("Select error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Select() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectNoChoices(t *testing.T) {
	l := NewLine(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := l.Select(Question{Message: "Theme"}, nil); err == nil {
		t.Fatal("expected error for empty choice list")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"\n", true, true},
		{"\n", false, false},
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"maybe\nno\n", true, false},
	}

	for _, tt := range tests {
		l := NewLine(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := l.Confirm("Everything ok?", tt.def)
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q, %v) = %v, want %v", tt.input, tt.def, got, tt.want)
		}
	}
}
