// Package input parses and completes text typed into the TUI prompt.
package input

import (
	"errors"
	"strconv"
	"strings"
)

// Prompt parsing errors.
var (
	ErrNotCommand  = errors.New("commands start with /")
	ErrMissingName = errors.New("phase name is required")
	ErrMissingDays = errors.New("phase length in days is required")
	ErrBadRange    = errors.New("expected: /range START END (YYYY-MM-DD)")
)

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// SplitCommand splits "/name args..." into the lowercased command and the
// trimmed remainder.
func SplitCommand(input string) (string, string, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", "", ErrNotCommand
	}
	name, args, _ := strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(args), nil
}

// ParsePhase parses "Name of phase 10" or "Name of phase 10d" into a name
// and a length in days. The last word is the length.
func ParsePhase(args string) (string, int, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", 0, ErrMissingName
	}
	last := strings.TrimSuffix(strings.ToLower(fields[len(fields)-1]), "d")
	days, err := strconv.Atoi(last)
	if err != nil {
		return "", 0, ErrMissingDays
	}
	if len(fields) == 1 {
		return "", 0, ErrMissingName
	}
	return strings.Join(fields[:len(fields)-1], " "), days, nil
}

// ParseRange parses "START END" into two date strings. Dates are validated
// by the caller.
func ParseRange(args string) (string, string, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", "", ErrBadRange
	}
	return fields[0], fields[1], nil
}
