package locfile

import (
	"fmt"
	"runtime"
	"strings"
)

// NewlineKind selects how line endings inside string values are rewritten.
type NewlineKind int

const (
	// NewlineNone leaves line endings untouched.
	NewlineNone NewlineKind = iota
	// NewlineCrLf converts line endings to "\r\n".
	NewlineCrLf
	// NewlineLf converts line endings to "\n".
	NewlineLf
	// NewlineOSDefault converts line endings to the host convention.
	NewlineOSDefault
)

func (k NewlineKind) String() string {
	switch k {
	case NewlineNone:
		return "none"
	case NewlineCrLf:
		return "crlf"
	case NewlineLf:
		return "lf"
	case NewlineOSDefault:
		return "os"
	default:
		return fmt.Sprintf("NewlineKind(%d)", int(k))
	}
}

// ParseNewlineKind converts a name such as "crlf" into a NewlineKind.
// The empty string maps to NewlineNone.
func ParseNewlineKind(s string) (NewlineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NewlineNone, nil
	case "crlf", "\r\n":
		return NewlineCrLf, nil
	case "lf", "\n":
		return NewlineLf, nil
	case "os":
		return NewlineOSDefault, nil
	default:
		return NewlineNone, fmt.Errorf("unknown newline kind %q", s)
	}
}

// Normalize rewrites every line ending in text according to k.
func (k NewlineKind) Normalize(text string) string {
	switch k {
	case NewlineCrLf:
		return toCrLf(text)
	case NewlineLf:
		return toLf(text)
	case NewlineOSDefault:
		if runtime.GOOS == "windows" {
			return toCrLf(text)
		}
		return toLf(text)
	default:
		return text
	}
}

func toLf(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func toCrLf(text string) string {
	return strings.ReplaceAll(toLf(text), "\n", "\r\n")
}
