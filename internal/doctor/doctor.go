// Package doctor runs environment diagnostics: everything the trainer
// needs from the host before a session can start.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"unicode"
)

// CheckResult is the outcome of one diagnostic check
type CheckResult struct {
	Name    string
	OK      bool
	Details string
	Fix     string // remediation hint, only meaningful when not OK
}

// minGitVersion is the oldest git the stages are known to work with
// (init -b, worktree, restore).
var minGitVersion = [3]int{2, 30, 0}

// parseGitVersion extracts major.minor.patch from `git --version`
// output. Returns false when no usable version is present.
func parseGitVersion(raw string) ([3]int, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "git version", ""))

	var version [3]int
	count := 0
	for _, part := range strings.Split(raw, ".") {
		var digits strings.Builder
		for _, r := range part {
			if !unicode.IsDigit(r) {
				break
			}
			digits.WriteRune(r)
		}
		if digits.Len() == 0 {
			break
		}
		fmt.Sscanf(digits.String(), "%d", &version[count])
		count++
		if count == 3 {
			break
		}
	}
	if count < 2 {
		return [3]int{}, false
	}
	return version, true
}

func versionAtLeast(v, min [3]int) bool {
	for i := 0; i < 3; i++ {
		if v[i] != min[i] {
			return v[i] > min[i]
		}
	}
	return true
}

// Run executes all diagnostic checks in order. A missing git binary
// short-circuits: nothing else is meaningful without it.
func Run() []CheckResult {
	var results []CheckResult

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return append(results, CheckResult{
			Name:    "git binary",
			Details: "git command not found",
			Fix:     "install Git and make sure it is on PATH",
		})
	}
	results = append(results, CheckResult{
		Name: "git binary", OK: true, Details: "found at " + gitPath,
	})

	out, err := exec.Command("git", "--version").CombinedOutput()
	versionRaw := strings.TrimSpace(string(out))
	version, parsed := parseGitVersion(versionRaw)
	switch {
	case err != nil || !parsed:
		results = append(results, CheckResult{
			Name:    "git version",
			Details: "could not determine git version",
			Fix:     "check that `git --version` works",
		})
	case versionAtLeast(version, minGitVersion):
		results = append(results, CheckResult{
			Name: "git version", OK: true, Details: versionRaw,
		})
	default:
		results = append(results, CheckResult{
			Name:    "git version",
			Details: fmt.Sprintf("%s (want >= %d.%d)", versionRaw, minGitVersion[0], minGitVersion[1]),
			Fix:     "update Git to a recent version",
		})
	}

	// The sandbox pins its own identity, but learners expect their
	// global setup to be sane too.
	for _, key := range []string{"user.name", "user.email"} {
		out, err := exec.Command("git", "config", "--global", "--get", key).Output()
		value := strings.TrimSpace(string(out))
		if err == nil && value != "" {
			results = append(results, CheckResult{
				Name: "global " + key, OK: true, Details: value,
			})
		} else {
			results = append(results, CheckResult{
				Name:    "global " + key,
				Details: "not set",
				Fix:     fmt.Sprintf("git config --global %s \"<value>\"", key),
			})
		}
	}

	if dir, err := os.MkdirTemp("", "git_trainer_doctor_"); err != nil {
		results = append(results, CheckResult{
			Name:    "temp dir writable",
			Details: err.Error(),
			Fix:     "check TMPDIR permissions or point it at a writable location",
		})
	} else {
		_ = os.RemoveAll(dir)
		results = append(results, CheckResult{
			Name: "temp dir writable", OK: true, Details: "ok",
		})
	}

	results = append(results, CheckResult{
		Name: "platform", OK: true,
		Details: fmt.Sprintf("%s (%s)", runtime.GOOS, runtime.GOARCH),
	})

	return results
}

// FormatReport renders the check results as a learner-facing report
func FormatReport(results []CheckResult) string {
	lines := []string{"Git Trainer Doctor Report"}
	fails := 0
	for _, item := range results {
		marker := "OK"
		if !item.OK {
			marker = "FAIL"
			fails++
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s", marker, item.Name, item.Details))
		if !item.OK && item.Fix != "" {
			lines = append(lines, "  fix: "+item.Fix)
		}
	}
	lines = append(lines, fmt.Sprintf("Summary: %d passed, %d failed", len(results)-fails, fails))
	return strings.Join(lines, "\n")
}

// Healthy reports whether every check passed
func Healthy(results []CheckResult) bool {
	for _, item := range results {
		if !item.OK {
			return false
		}
	}
	return true
}
