package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hjangles/llscan/internal/database"
	"github.com/hjangles/llscan/internal/model"
)

// TestCompareCommand tests run comparison.
func TestCompareCommand(t *testing.T) {
	t.Parallel()

	t.Run("identical latest runs", func(t *testing.T) {
		t.Parallel()
		dir, _ := seedRuns(t, scenarioSet(10), scenarioSet(10))

		code, stdout, stderr := executeRoot(t, "compare", "--db-dir", dir, "--color", "never")
		if code != 0 {
			t.Fatalf("expected success, got %d: %s", code, stderr)
		}
		if !strings.Contains(stdout, "Result sets are identical.") {
			t.Errorf("expected identical, got %q", stdout)
		}
		if strings.Contains(stdout, "\x1b[") {
			t.Error("expected no color codes")
		}
	})

	t.Run("changed point by id", func(t *testing.T) {
		t.Parallel()
		dir, ids := seedRuns(t, scenarioSet(10), scenarioSet(10), scenarioSet(11))

		code, stdout, stderr := executeRoot(t, "compare", "--db-dir", dir, "--color", "never",
			strconv.FormatInt(ids[0], 10), strconv.FormatInt(ids[2], 10))
		if code != 0 {
			t.Fatalf("expected success, got %d: %s", code, stderr)
		}
		if !strings.Contains(stdout, "Changed points (1)") {
			t.Errorf("expected changed points, got %q", stdout)
		}
		if !strings.Contains(stdout, "[~] [100,200) phi=0.5 logL 10.0 -> 11.0") {
			t.Errorf("expected change line, got %q", stdout)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()
		dir, ids := seedRuns(t, scenarioSet(10), scenarioSet(11))

		code, stdout, stderr := executeRoot(t, "compare", "--db-dir", dir, "--json")
		if code != 0 {
			t.Fatalf("expected success, got %d: %s", code, stderr)
		}
		var got ComparisonResult
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Previous.ID != ids[0] || got.Current.ID != ids[1] {
			t.Errorf("expected %d -> %d, got %d -> %d", ids[0], ids[1], got.Previous.ID, got.Current.ID)
		}
		if got.Comparison.Identical || len(got.Comparison.ChangedPoints) != 1 {
			t.Errorf("unexpected comparison %+v", got.Comparison)
		}
	})

	t.Run("needs two runs", func(t *testing.T) {
		t.Parallel()
		dir, _ := seedRuns(t, scenarioSet(10))

		code, _, stderr := executeRoot(t, "compare", "--db-dir", dir)
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
		if !strings.Contains(stderr, "at least 2 runs") {
			t.Errorf("expected run count message, got %q", stderr)
		}
	})

	t.Run("no history", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		code, _, stderr := executeRoot(t, "compare", "--db-dir", dir)
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
		if !strings.Contains(stderr, "(found 0)") {
			t.Errorf("expected run count message, got %q", stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, database.FileName)); !os.IsNotExist(err) {
			t.Error("compare must not create a history database")
		}
	})

	t.Run("rejects one argument", func(t *testing.T) {
		t.Parallel()
		code, _, _ := executeRoot(t, "compare", "--db-dir", t.TempDir(), "1")
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
	})

	t.Run("rejects invalid id", func(t *testing.T) {
		t.Parallel()
		code, _, stderr := executeRoot(t, "compare", "--db-dir", t.TempDir(), "a", "2")
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
		if !strings.Contains(stderr, "invalid run id") {
			t.Errorf("expected invalid id message, got %q", stderr)
		}
	})

	t.Run("invalid color mode", func(t *testing.T) {
		t.Parallel()
		code, _, _ := executeRoot(t, "compare", "--db-dir", t.TempDir(), "--color", "sometimes")
		if code != exitFailure {
			t.Errorf("expected %d, got %d", exitFailure, code)
		}
	})
}

// TestOutputComparisonText tests colored and plain text output.
func TestOutputComparisonText(t *testing.T) {
	t.Parallel()

	before := scenarioSet(10)
	after := scenarioSet(10)
	after.Add(model.ScanPoint{Range: model.MassRange{Low: 200, High: 300}, Phi: 1, LogL: 3})

	result := &ComparisonResult{Comparison: model.Compare(before, after)}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputComparisonText(&buf, result, newStyles(false))
		out := buf.String()
		if !strings.Contains(out, "Added mass ranges (1)") || !strings.Contains(out, "[+] [200,300)") {
			t.Errorf("expected added range, got %q", out)
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("expected no color codes")
		}
	})

	t.Run("colored", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		outputComparisonText(&buf, result, newStyles(true))
		if !strings.Contains(buf.String(), "\x1b[") {
			t.Error("expected color codes")
		}
	})
}
