package checker

import (
	"testing"

	appErrors "github.com/25smoking/upcheck/internal/errors"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

func TestClassify(t *testing.T) {
	checkupdates := pkg_mgr.Command{Name: "checkupdates"}
	paru := pkg_mgr.Command{Name: "paru", Args: []string{"-Qu", "--aur"}}
	dnf := pkg_mgr.Command{Name: "dnf", Args: []string{"check-update", "-q"}}
	apt := pkg_mgr.Command{Name: "apt", Args: []string{"list", "--upgradable"}}

	tests := []struct {
		name      string
		cmd       pkg_mgr.Command
		res       Result
		wantParse bool
		wantErr   bool
	}{
		{name: "success", cmd: apt, res: Result{Stdout: []byte("x")}, wantParse: true},
		{name: "success empty", cmd: apt, res: Result{}, wantParse: true},
		{name: "checkupdates no updates", cmd: checkupdates, res: Result{ExitCode: 2}},
		{name: "checkupdates no updates whitespace", cmd: checkupdates, res: Result{ExitCode: 2, Stdout: []byte("\n")}},
		{name: "paru no updates", cmd: paru, res: Result{ExitCode: 1}},
		{name: "checkupdates 1 is failure", cmd: checkupdates, res: Result{ExitCode: 1, Stderr: []byte("cannot sync")}, wantErr: true},
		{name: "dnf updates available", cmd: dnf, res: Result{ExitCode: 100, Stdout: []byte("vim.x86_64 9.1 updates")}, wantParse: true},
		{name: "dnf error", cmd: dnf, res: Result{ExitCode: 1}, wantErr: true},
		{name: "non-zero with output tolerated", cmd: apt, res: Result{ExitCode: 1, Stdout: []byte("vim/jammy 9.1 amd64 [upgradable from: 9.0]")}, wantParse: true},
		{name: "non-zero without output", cmd: apt, res: Result{ExitCode: 100}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parse, err := classify(tt.cmd, tt.res)
			if parse != tt.wantParse {
				t.Errorf("parse = %v, want %v", parse, tt.wantParse)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !appErrors.IsCode(err, appErrors.CodePhaseFailed) {
				t.Errorf("code = %s, want %s", appErrors.CodeOf(err), appErrors.CodePhaseFailed)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if got := StateLockPending.String(); got != "lock_pending" {
		t.Errorf("String() = %q", got)
	}
	if got := State(99).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
	if !StateFailed.Terminal() || StateAggregated.Terminal() {
		t.Error("Terminal() mismatch")
	}
}
