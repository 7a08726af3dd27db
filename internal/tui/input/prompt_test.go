package input

import (
	"errors"
	"testing"
)

var testCommands = []PromptCommand{
	{Name: "/add", Description: "Add"},
	{Name: "/rename", Description: "Rename"},
	{Name: "/range", Description: "Range"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "add", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/add", want: 1},
		{name: "shared_prefix", input: "/r", want: 2},
		{name: "prefix", input: "/ren", want: 1},
		{name: "with_space", input: "/add x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	value, ok := PromptAutocomplete("/a", testCommands)
	if !ok {
		t.Fatal("expected autocomplete")
	}
	if value != "/add " {
		t.Fatalf("value = %q, want %q", value, "/add ")
	}

	if _, ok := PromptAutocomplete("/z", testCommands); ok {
		t.Fatal("expected no autocomplete for unknown prefix")
	}
}

func TestSplitCommand(t *testing.T) {
	name, args, err := SplitCommand("  /ADD  User research 5 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "/add" || args != "User research 5" {
		t.Fatalf("got (%q, %q)", name, args)
	}

	if _, _, err := SplitCommand("add x"); !errors.Is(err, ErrNotCommand) {
		t.Fatalf("err = %v, want ErrNotCommand", err)
	}
}

func TestParsePhase(t *testing.T) {
	tests := []struct {
		args     string
		wantName string
		wantDays int
		wantErr  error
	}{
		{args: "Build 10", wantName: "Build", wantDays: 10},
		{args: "User research 5d", wantName: "User research", wantDays: 5},
		{args: "", wantErr: ErrMissingName},
		{args: "12", wantErr: ErrMissingName},
		{args: "Build", wantErr: ErrMissingDays},
		{args: "Build ten", wantErr: ErrMissingDays},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			name, days, err := ParsePhase(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName || days != tt.wantDays {
				t.Fatalf("got (%q, %d), want (%q, %d)", name, days, tt.wantName, tt.wantDays)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("2024-01-01 2024-02-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "2024-01-01" || end != "2024-02-15" {
		t.Fatalf("got (%q, %q)", start, end)
	}

	if _, _, err := ParseRange("2024-01-01"); !errors.Is(err, ErrBadRange) {
		t.Fatalf("err = %v, want ErrBadRange", err)
	}
}
