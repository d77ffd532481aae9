package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedExtension is returned when a file name matches no known format.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrUnsupportedParser is returned for a format tag outside the known set.
	ErrUnsupportedParser = errors.New("unsupported parser")
)

// Kind identifies the grammar of a localization file.
type Kind int

const (
	// KindUnset asks the dispatcher to infer the kind from the file path.
	KindUnset Kind = iota
	KindResx
	KindLocJSON
	KindResJSON
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindResx:
		return "resx"
	case KindLocJSON:
		return "loc.json"
	case KindResJSON:
		return "resjson"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a format tag such as "loc.json" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resx":
		return KindResx, nil
	case "loc.json":
		return KindLocJSON, nil
	case "resjson":
		return KindResJSON, nil
	default:
		return KindUnset, fmt.Errorf("%w: %s", ErrUnsupportedParser, s)
	}
}

// SelectByFilePath infers the Kind from the file name suffix, ignoring case.
// ".resx" wins over ".resx.json", which is a loc.json file.
func SelectByFilePath(filePath string) (Kind, error) {
	lower := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lower, ".resx"):
		return KindResx, nil
	case strings.HasSuffix(lower, ".resx.json"), strings.HasSuffix(lower, ".loc.json"):
		return KindLocJSON, nil
	case strings.HasSuffix(lower, ".resjson"):
		return KindResJSON, nil
	default:
		return KindUnset, fmt.Errorf("%w in file: %s", ErrUnsupportedExtension, filePath)
	}
}
