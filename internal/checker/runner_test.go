package checker

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	res, err := ExecRunner{}.Run(context.Background(), pkg_mgr.Command{
		Name: "sh",
		Args: []string{"-c", `echo "$LC_ALL"; echo oops >&2; exit 3`},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "C" {
		t.Errorf("stdout = %q, want C", got)
	}
	if got := strings.TrimSpace(string(res.Stderr)); got != "oops" {
		t.Errorf("stderr = %q, want oops", got)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), pkg_mgr.Command{Name: "upcheck-definitely-missing-binary"})
	if err == nil {
		t.Fatal("Run() error = nil, want spawn error")
	}
}
