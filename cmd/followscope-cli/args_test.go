package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// executeArgs runs the given root command with args and returns any error.
// It suppresses cobra's usage/error output so test output stays clean.
func executeArgs(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// newTestRoot builds the real command tree with PersistentPreRun stubbed out
// so the API client is never initialised.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	resetFlags(t)
	root := newRootCmd()
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return root
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"graph without usernames", []string{"graph"}},
		{"view with two sessions", []string{"view", "a", "b"}},
		{"pin missing coordinates", []string{"pin", "42"}},
		{"pin too many args", []string{"pin", "42", "1", "2", "3"}},
		{"unpin without node", []string{"unpin"}},
		{"unpin two nodes", []string{"unpin", "1", "2"}},
		{"logs with positional", []string{"logs", "x"}},
		{"health with positional", []string{"health", "x"}},
		{"unknown cutoff type", []string{"view", "--cutoff", "yesterday"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := executeArgs(t, newTestRoot(t), tc.args...); err == nil {
				t.Errorf("expected error for %v", tc.args)
			}
		})
	}
}

func TestPinRejectsBadCoordinates(t *testing.T) {
	for _, args := range [][]string{{"pin", "42", "left", "2"}, {"pin", "42", "1", "up"}} {
		if err := executeArgs(t, newTestRoot(t), args...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestGlobalFlagDefaults(t *testing.T) {
	root := newTestRoot(t)
	cases := []struct {
		flag string
		want string
	}{
		{"url", defaultURL},
		{"session", ""},
		{"format", "table"},
	}
	for _, tc := range cases {
		f := root.PersistentFlags().Lookup(tc.flag)
		if f == nil {
			t.Errorf("--%s flag not found", tc.flag)
			continue
		}
		if f.DefValue != tc.want {
			t.Errorf("--%s default: got %q, want %q", tc.flag, f.DefValue, tc.want)
		}
	}
}

func TestSubcommandFlags(t *testing.T) {
	if f := newViewCmd().Flags().Lookup("cutoff"); f == nil || f.DefValue != "0" {
		t.Errorf("view --cutoff missing or wrong default: %+v", f)
	}
	if f := newLogsCmd().Flags().Lookup("backlog"); f == nil || f.DefValue != "false" {
		t.Errorf("logs --backlog missing or wrong: %+v", f)
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := newTestRoot(t)
	for _, name := range []string{"graph", "view", "pin", "unpin", "logs", "health"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
