package resx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"locparse/internal/locfile"

	"github.com/rs/zerolog"
)

// ReadOptions controls how a .resx document is read.
type ReadOptions struct {
	// FilePath is used in messages only.
	FilePath string
	// NewlineNormalization rewrites line endings in values and comments.
	NewlineNormalization locfile.NewlineKind
	// WarnOnMissingComment logs a warning for strings without a comment.
	WarnOnMissingComment bool
	// IgnoreString optionally drops strings by name.
	IgnoreString *locfile.StringFilter
	// Logger receives warnings and recoverable errors.
	Logger zerolog.Logger
}

// document mirrors the parts of a .resx file that carry strings. Headers,
// the embedded XSD and metadata elements are not mapped and therefore skipped.
type document struct {
	XMLName xml.Name  `xml:"root"`
	Data    []element `xml:"data"`
}

type element struct {
	Name    *string `xml:"name,attr"`
	Value   *string `xml:"value"`
	Comment *string `xml:"comment"`
}

// Read parses .resx content into a File.
//
// Only malformed XML fails the read. Problems with individual <data>
// elements are logged and the element is skipped.
func Read(content string, opts ReadOptions) (*locfile.File, error) {
	var doc document
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parse resx file %s: %w", opts.FilePath, err)
	}

	logger := opts.Logger.With().Str("file", opts.FilePath).Logger()
	result := locfile.NewFile()

	for i, data := range doc.Data {
		if data.Name == nil || strings.TrimSpace(*data.Name) == "" {
			logger.Error().Int("index", i).Msg("RESX <data> element is missing a name")
			continue
		}
		name := *data.Name

		if opts.IgnoreString.Ignore(opts.FilePath, name) {
			continue
		}

		if data.Value == nil {
			logger.Error().Str("string", name).Msg("RESX string is missing a <value> element")
			continue
		}

		var comment string
		if data.Comment != nil {
			comment = *data.Comment
		}
		if strings.TrimSpace(comment) == "" && opts.WarnOnMissingComment {
			logger.Warn().Str("string", name).Msg("RESX string is missing a comment")
		}

		s := locfile.String{
			Value:   opts.NewlineNormalization.Normalize(*data.Value),
			Comment: opts.NewlineNormalization.Normalize(comment),
		}
		if !result.Add(name, s) {
			logger.Error().Str("string", name).Msg("Duplicate RESX string, keeping the first definition")
		}
	}

	return result, nil
}
