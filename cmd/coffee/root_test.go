package coffee

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("coffee %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func runCommandExpectError(t *testing.T, args ...string) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("coffee %s: expected an error\n%s", strings.Join(args, " "), buf.String())
	}
}

func TestRootHelp(t *testing.T) {
	out := runCommand(t, "--help")
	if out == "" {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffee.db")
	for i := 0; i < 2; i++ {
		out := runCommand(t, "--db", path, "init")
		if !strings.Contains(out, "Initialized coffee database") {
			t.Fatalf("init run %d: unexpected output %q", i+1, out)
		}
	}
}

// extractAfter pulls the first whitespace-delimited token following marker.
func extractAfter(t *testing.T, out, marker string) string {
	t.Helper()
	idx := strings.Index(out, marker)
	if idx < 0 {
		t.Fatalf("marker %q not found in output:\n%s", marker, out)
	}
	rest := strings.TrimSpace(out[idx+len(marker):])
	if fields := strings.Fields(rest); len(fields) > 0 {
		return strings.TrimSuffix(fields[0], ":")
	}
	t.Fatalf("nothing after marker %q in output:\n%s", marker, out)
	return ""
}

func TestDialInWorkflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffee.db")
	runCommand(t, "--db", path, "init")

	out := runCommand(t, "--db", path, "coffee", "add", "--name", "Yirgacheffe", "--seller", "Blue Bottle", "--grams", "250")
	coffeeID := extractAfter(t, out, "id:")

	out = runCommand(t, "--db", path, "suggest", coffeeID)
	if !strings.Contains(out, "starter baseline") {
		t.Fatalf("expected starter baseline before any shots, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "shot", "log", "--coffee", coffeeID, "--in", "18", "--out", "36", "--time", "27", "--grind", "15")
	if !strings.Contains(out, "232.0g remaining") {
		t.Fatalf("expected 232.0g remaining after an 18g shot, got:\n%s", out)
	}
	shotID := extractAfter(t, out, "Logged shot")

	out = runCommand(t, "--db", path, "shot", "rate", shotID, "--rating", "4", "--notes", "sweet, balanced")
	if !strings.Contains(out, "Good extraction") {
		t.Fatalf("expected a good-shot recommendation, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "suggest", coffeeID)
	if !strings.Contains(out, "based on last shot") {
		t.Fatalf("expected history-based suggestion, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "coffee", "adjust", coffeeID, "--actual", "225", "--reason", "weighed")
	if !strings.Contains(out, "225.0g remaining") {
		t.Fatalf("expected adjusted remaining, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "coffee", "offsets")
	if !strings.Contains(out, "weighed") {
		t.Fatalf("expected offset audit entry, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "stats")
	if !strings.Contains(out, "Total shots: 1") {
		t.Fatalf("expected one shot in stats, got:\n%s", out)
	}

	out = runCommand(t, "--db", path, "doctor")
	if !strings.Contains(out, "Remaining mismatches: 0") {
		t.Fatalf("expected clean doctor report, got:\n%s", out)
	}
}

func TestShotCommandValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffee.db")
	runCommand(t, "--db", path, "init")

	runCommandExpectError(t, "--db", path, "shot", "log", "--coffee", "missing", "--in", "18", "--out", "36", "--time", "27")
	runCommandExpectError(t, "--db", path, "shot", "rate", "missing", "--rating", "4")
	runCommandExpectError(t, "--db", path, "shot", "rate", "missing", "--rating", "9")
}

func TestDeleteRequiresArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffee.db")
	out := runCommand(t, "--db", path, "coffee", "add", "--name", "Old Bag", "--grams", "100")
	coffeeID := extractAfter(t, out, "id:")

	runCommandExpectError(t, "--db", path, "coffee", "delete", coffeeID)
	runCommand(t, "--db", path, "coffee", "archive", coffeeID)
	out = runCommand(t, "--db", path, "coffee", "delete", coffeeID)
	if !strings.Contains(out, "Deleted Old Bag") {
		t.Fatalf("expected delete confirmation, got:\n%s", out)
	}
}
