package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// executeRoot runs a fresh root command with an empty config file and
// returns the exit status and both output streams.
func executeRoot(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), ".llscan")
	if err := os.WriteFile(cfgPath, nil, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	code := run(cmd, append(args, "--config", cfgPath), &stderr)
	return code, stdout.String(), stderr.String()
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "llscan" {
			t.Errorf("expected use 'llscan', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has global flags", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		for _, name := range []string{"config", "log-format", "db-dir"} {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"scan": false, "hist": false, "history": false,
			"compare": false, "init": false, "version": false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestExitError tests exit status mapping.
func TestExitError(t *testing.T) {
	t.Parallel()

	t.Run("usage error is silent", func(t *testing.T) {
		t.Parallel()
		if errUsage.Error() != "exit status 1" {
			t.Errorf("unexpected message %q", errUsage.Error())
		}
		var ee *exitError
		if !errors.As(errUsage, &ee) || ee.code != exitUsage || !ee.silent {
			t.Errorf("unexpected usage error %+v", ee)
		}
	})

	t.Run("wrapped error unwraps", func(t *testing.T) {
		t.Parallel()
		inner := errors.New("inner")
		err := &exitError{code: exitFailure, err: inner}
		if !errors.Is(err, inner) {
			t.Error("expected wrapped error")
		}
		if err.Error() != "inner" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("unknown command exits 2", func(t *testing.T) {
		t.Parallel()
		code, _, stderr := executeRoot(t, "nosuchcommand")
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
		if stderr == "" {
			t.Error("expected message on stderr")
		}
	})
}
