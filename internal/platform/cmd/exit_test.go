package cmd_test

import (
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	cmd "github.com/louisbranch/chatguard/internal/platform/cmd"
)

// Exitf calls os.Exit, so the assertion re-runs the test binary as a
// subprocess and inspects its exit status and stderr.
func TestExitfExitsNonZero(t *testing.T) {
	if os.Getenv("CHATGUARD_TEST_EXITF") == "1" {
		cmd.Exitf("check failed: %s", "backend unreachable")
		return
	}

	sub := exec.Command(os.Args[0], "-test.run=^TestExitfExitsNonZero$")
	sub.Env = append(os.Environ(), "CHATGUARD_TEST_EXITF=1")
	out, err := sub.CombinedOutput()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exit error, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "check failed: backend unreachable") {
		t.Fatalf("output = %q, want fatal message", out)
	}
}
