package sandbox

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// allowedCommands is the authoritative allow-list: git plus read-only
// and file-manipulation utilities a learner legitimately needs.
var allowedCommands = map[string]bool{
	"git":   true,
	"ls":    true,
	"pwd":   true,
	"cat":   true,
	"find":  true,
	"grep":  true,
	"sed":   true,
	"head":  true,
	"tail":  true,
	"wc":    true,
	"echo":  true,
	"touch": true,
	"diff":  true,
}

// deniedCommands only improves the rejection message for tools we know
// are dangerous; anything not allow-listed is rejected either way.
var deniedCommands = map[string]string{
	"sh":        "shell interpreter",
	"bash":      "shell interpreter",
	"zsh":       "shell interpreter",
	"dash":      "shell interpreter",
	"python":    "script interpreter",
	"python3":   "script interpreter",
	"perl":      "script interpreter",
	"ruby":      "script interpreter",
	"node":      "script interpreter",
	"php":       "script interpreter",
	"sudo":      "privilege escalation",
	"su":        "privilege escalation",
	"doas":      "privilege escalation",
	"curl":      "remote access",
	"wget":      "remote access",
	"ssh":       "remote access",
	"scp":       "remote access",
	"sftp":      "remote access",
	"nc":        "remote access",
	"ncat":      "remote access",
	"telnet":    "remote access",
	"systemctl": "service control",
	"service":   "service control",
	"launchctl": "service control",
}

// AllowedCommands returns the allow-list in sorted order, for display
func AllowedCommands() []string {
	names := make([]string, 0, len(allowedCommands))
	for name := range allowedCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decision is the outcome of filtering one command line
type Decision struct {
	Allowed bool
	Reason  string
}

// CheckCommand decides whether a learner-submitted command line may
// run. The line is split into segments on shell separators, and every
// segment's head command (after leading NAME=value assignments) must be
// on the allow-list. This is a guardrail against accidents, not a
// security boundary.
func CheckCommand(line string) Decision {
	segments, err := splitSegments(line)
	if err != nil {
		return Decision{Allowed: false, Reason: err.Error()}
	}
	if len(segments) == 0 {
		return Decision{Allowed: false, Reason: "empty command"}
	}

	for _, tokens := range segments {
		head := headCommand(tokens)
		if head == "" {
			return Decision{Allowed: false, Reason: "empty command segment"}
		}
		if category, denied := deniedCommands[head]; denied {
			return Decision{Allowed: false, Reason: fmt.Sprintf("%q is blocked (%s)", head, category)}
		}
		if !allowedCommands[head] {
			return Decision{Allowed: false, Reason: fmt.Sprintf("%q is not an allowed command", head)}
		}
	}
	return Decision{Allowed: true}
}

// headCommand returns the first token that is not an environment
// assignment of the form NAME=value
func headCommand(tokens []string) string {
	for _, token := range tokens {
		if isEnvAssignment(token) {
			continue
		}
		return token
	}
	return ""
}

func isEnvAssignment(token string) bool {
	eq := strings.IndexByte(token, '=')
	if eq <= 0 {
		return false
	}
	name := token[:eq]
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// splitSegments tokenizes a command line honoring single quotes, double
// quotes, and backslash escapes, splitting into segments on the shell
// separators |, ||, &&, ;, and &. Command substitution and unterminated
// quoting are rejected.
func splitSegments(line string) ([][]string, error) {
	var (
		segments [][]string
		current  []string
		token    strings.Builder
		hasToken bool
		inSingle bool
		inDouble bool
	)

	flushToken := func() {
		if hasToken {
			current = append(current, token.String())
			token.Reset()
			hasToken = false
		}
	}
	flushSegment := func() {
		flushToken()
		if len(current) > 0 {
			segments = append(segments, current)
			current = nil
		}
	}

	runes := []rune(line)
	for pos := 0; pos < len(runes); pos++ {
		ch := runes[pos]

		switch {
		case inSingle:
			if ch == '\'' {
				inSingle = false
			} else {
				token.WriteRune(ch)
			}
		case ch == '\\':
			if pos+1 >= len(runes) {
				return nil, errors.New("trailing backslash")
			}
			pos++
			token.WriteRune(runes[pos])
			hasToken = true
		case ch == '`':
			return nil, errors.New("command substitution is not permitted")
		case ch == '$' && pos+1 < len(runes) && runes[pos+1] == '(':
			return nil, errors.New("command substitution is not permitted")
		case inDouble:
			if ch == '"' {
				inDouble = false
			} else {
				token.WriteRune(ch)
			}
		case ch == '\'':
			inSingle = true
			hasToken = true
		case ch == '"':
			inDouble = true
			hasToken = true
		case ch == '|':
			flushSegment()
			if pos+1 < len(runes) && runes[pos+1] == '|' {
				pos++
			}
		case ch == '&':
			flushSegment()
			if pos+1 < len(runes) && runes[pos+1] == '&' {
				pos++
			}
		case ch == ';':
			flushSegment()
		case ch == ' ' || ch == '\t' || ch == '\n':
			flushToken()
		default:
			token.WriteRune(ch)
			hasToken = true
		}
	}

	if inSingle || inDouble {
		return nil, errors.New("unterminated quote")
	}
	flushSegment()
	return segments, nil
}
