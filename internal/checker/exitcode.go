package checker

import (
	"bytes"
	"fmt"
	"strings"

	appErrors "github.com/25smoking/upcheck/internal/errors"
	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

const maxStderrSnippet = 200

// Exit codes that mean "nothing to update" when stdout is empty.
var noUpdatesCodes = map[string]int{
	"checkupdates": 2,
	"paru":         1,
	"yay":          1,
}

// Exit codes that mean "updates listed on stdout".
var updatesCodes = map[string]int{
	"dnf": 100,
}

// classify decides what to do with a finished subprocess: parse its stdout,
// treat it as an empty success, or fail the attempt.
func classify(cmd pkg_mgr.Command, res Result) (parse bool, err error) {
	if res.ExitCode == 0 {
		return true, nil
	}

	empty := len(bytes.TrimSpace(res.Stdout)) == 0

	if code, ok := noUpdatesCodes[cmd.Name]; ok && code == res.ExitCode && empty {
		return false, nil
	}
	if code, ok := updatesCodes[cmd.Name]; ok && code == res.ExitCode {
		return true, nil
	}
	if !empty {
		return true, nil
	}

	msg := fmt.Sprintf("%s exited with status %d", cmd, res.ExitCode)
	if snippet := stderrSnippet(res.Stderr); snippet != "" {
		msg += ": " + snippet
	}
	return false, appErrors.New(appErrors.CodePhaseFailed, msg, nil)
}

func stderrSnippet(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if len(s) > maxStderrSnippet {
		s = s[:maxStderrSnippet] + "..."
	}
	return s
}
