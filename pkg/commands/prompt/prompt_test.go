package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	var out bytes.Buffer
	ask := Lines(strings.NewReader("first\r\nsecond"), &out)

	got, err := ask("one: ")
	if err != nil || got != "first" {
		t.Fatalf("expected first, got %q, %v", got, err)
	}
	got, err = ask("two: ")
	if err != nil || got != "second" {
		t.Fatalf("expected second, got %q, %v", got, err)
	}
	if _, err := ask("three: "); !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
	if out.String() != "one: two: three: " {
		t.Fatalf("unexpected prompts %q", out.String())
	}
}

func TestPasswordFallsBackToLines(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "answers")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("hunter2\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	if Interactive(f) {
		t.Fatalf("a regular file is not a terminal")
	}
	var out bytes.Buffer
	got, err := Password(f, &out)("Password: ")
	if err != nil || got != "hunter2" {
		t.Fatalf("expected hunter2, got %q, %v", got, err)
	}
}
