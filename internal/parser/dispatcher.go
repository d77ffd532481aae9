package parser

import (
	"fmt"
	"sync"

	"locparse/internal/cache"
	"locparse/internal/locfile"
	"locparse/internal/locjson"
	"locparse/internal/resjson"
	"locparse/internal/resx"

	"github.com/rs/zerolog"
)

// ResxOptions only apply when the resolved kind is KindResx.
type ResxOptions struct {
	// NewlineNormalization rewrites line endings in values. It is part of the cache key.
	NewlineNormalization locfile.NewlineKind
	// IgnoreMissingComments silences the missing-comment warning. It is not
	// part of the cache key: a cached result is returned as-is even if this
	// flag changed since it was parsed.
	IgnoreMissingComments bool
}

// Options describe a single parse request.
type Options struct {
	locfile.ParseFileOptions

	// Parser forces a format. KindUnset infers it from FilePath.
	Parser Kind
	// Resx holds settings for .resx files.
	Resx ResxOptions
	// Logger receives parser warnings.
	Logger zerolog.Logger
}

// ResxReader reads .resx content.
type ResxReader func(content string, opts resx.ReadOptions) (*locfile.File, error)

// FormatParser parses one of the JSON based formats.
type FormatParser func(opts locfile.ParseFileOptions) (*locfile.File, error)

// Dispatcher picks a format parser for each request and memoizes .resx results.
type Dispatcher struct {
	cache        cache.Cache
	readResx     ResxReader
	parseLocJSON FormatParser
	parseResJSON FormatParser
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResxReader replaces the .resx reader.
func WithResxReader(r ResxReader) Option {
	return func(d *Dispatcher) { d.readResx = r }
}

// WithLocJSONParser replaces the .loc.json parser.
func WithLocJSONParser(p FormatParser) Option {
	return func(d *Dispatcher) { d.parseLocJSON = p }
}

// WithResJSONParser replaces the .resjson parser.
func WithResJSONParser(p FormatParser) Option {
	return func(d *Dispatcher) { d.parseResJSON = p }
}

// NewDispatcher creates a Dispatcher that stores .resx results in c.
// A nil c gets a fresh in-memory cache.
func NewDispatcher(c cache.Cache, opts ...Option) *Dispatcher {
	if c == nil {
		c = cache.NewMemory()
	}
	d := &Dispatcher{
		cache:        c,
		readResx:     resx.Read,
		parseLocJSON: locjson.Parse,
		parseResJSON: resjson.Parse,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse resolves the format of opts and parses its content.
//
// For .resx files the result is cached under the file path and newline
// setting. A cached result is reused only when the content is identical and
// the same *StringFilter is passed again. The returned File may be shared
// with other callers and must not be modified.
//
// Errors from the format parsers are returned unchanged.
func (d *Dispatcher) Parse(opts Options) (*locfile.File, error) {
	kind := opts.Parser
	if kind == KindUnset {
		var err error
		kind, err = SelectByFilePath(opts.FilePath)
		if err != nil {
			return nil, err
		}
	}

	switch kind {
	case KindResx:
		return d.parseResx(opts)
	case KindLocJSON:
		return d.parseLocJSON(opts.ParseFileOptions)
	case KindResJSON:
		return d.parseResJSON(opts.ParseFileOptions)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedParser, kind)
	}
}

func (d *Dispatcher) parseResx(opts Options) (*locfile.File, error) {
	key := cacheKey(opts.FilePath, opts.Resx.NewlineNormalization)
	if entry, ok := d.cache.Get(key); ok && entry.Matches(opts.Content, opts.IgnoreString) {
		return entry.File, nil
	}

	file, err := d.readResx(opts.Content, resx.ReadOptions{
		FilePath:             opts.FilePath,
		NewlineNormalization: opts.Resx.NewlineNormalization,
		WarnOnMissingComment: !opts.Resx.IgnoreMissingComments,
		IgnoreString:         opts.IgnoreString,
		Logger:               opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	d.cache.Set(key, cache.Entry{
		Content:      opts.Content,
		File:         file,
		IgnoreString: opts.IgnoreString,
	})
	return file, nil
}

func cacheKey(filePath string, newline locfile.NewlineKind) string {
	return filePath + "?" + newline.String()
}

var defaultDispatcher = sync.OnceValue(func() *Dispatcher {
	return NewDispatcher(cache.NewMemory())
})

// Default returns the process-wide Dispatcher used by ParseFile.
func Default() *Dispatcher {
	return defaultDispatcher()
}

// ParseFile parses with the process-wide Dispatcher.
func ParseFile(opts Options) (*locfile.File, error) {
	return Default().Parse(opts)
}
