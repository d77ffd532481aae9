package resjson

import (
	"fmt"
	"sort"
	"strings"

	"locparse/internal/locfile"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

const commentSuffix = ".comment"

// Parse reads a .resjson file. Comments and trailing commas are allowed.
// A string "x" takes its comment from the "_x.comment" property; any other
// property starting with "_" is metadata and skipped.
func Parse(opts locfile.ParseFileOptions) (*locfile.File, error) {
	standard, err := hujson.Standardize([]byte(opts.Content))
	if err != nil {
		return nil, fmt.Errorf("parse resjson file %s: %w", opts.FilePath, err)
	}

	doc := gjson.ParseBytes(standard)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parse resjson file %s: top-level value must be an object", opts.FilePath)
	}

	file := locfile.NewFile()
	comments := make(map[string]string)
	ignored := make(map[string]bool)
	var parseErr error

	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if strings.HasPrefix(name, "_") {
			if strings.HasSuffix(name, commentSuffix) {
				comments[strings.TrimSuffix(name[1:], commentSuffix)] = value.String()
			}
			return true
		}

		if value.Type != gjson.String {
			parseErr = fmt.Errorf("resjson file %s: value of %q must be a string", opts.FilePath, name)
			return false
		}
		if opts.IgnoreString.Ignore(opts.FilePath, name) {
			ignored[name] = true
			return true
		}
		if !file.Add(name, locfile.String{Value: value.String()}) {
			parseErr = fmt.Errorf("resjson file %s defines string %q more than once", opts.FilePath, name)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	var orphans []string
	for name, comment := range comments {
		s, ok := file.Strings[name]
		if !ok {
			if !ignored[name] {
				orphans = append(orphans, name)
			}
			continue
		}
		s.Comment = comment
		file.Strings[name] = s
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		return nil, fmt.Errorf("resjson file %s has comments for missing strings: %s",
			opts.FilePath, strings.Join(orphans, ", "))
	}

	return file, nil
}
