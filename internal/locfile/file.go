package locfile

// String is a single localized string with its translator comment.
type String struct {
	// Value is the text shown to the user.
	Value string `json:"value"`
	// Comment is the note left for translators (empty if absent).
	Comment string `json:"comment,omitempty"`
}

// File is the format-independent representation of a parsed localization file.
// Parsers build it; callers must treat it as read-only because the same
// instance may be handed to several callers.
type File struct {
	// Strings maps a string name to its value and comment.
	Strings map[string]String
	// Names lists the string names in document order.
	Names []string
}

// NewFile creates an empty File.
func NewFile() *File {
	return &File{Strings: make(map[string]String)}
}

// Add appends a string. It reports false if the name is already present.
func (f *File) Add(name string, s String) bool {
	if _, exists := f.Strings[name]; exists {
		return false
	}
	f.Strings[name] = s
	f.Names = append(f.Names, name)
	return true
}

// Get returns the string stored under name.
func (f *File) Get(name string) (String, bool) {
	s, ok := f.Strings[name]
	return s, ok
}

// Len returns the number of strings.
func (f *File) Len() int {
	return len(f.Names)
}

// StringFilter decides whether a string should be left out of a parsed file.
//
// A filter is compared by reference: two filters wrapping the same function
// are still different filters. Callers that want cached parse results to be
// reused must keep passing the same *StringFilter.
type StringFilter struct {
	ignore func(filePath, stringName string) bool
}

// NewStringFilter wraps fn in a new filter.
func NewStringFilter(fn func(filePath, stringName string) bool) *StringFilter {
	return &StringFilter{ignore: fn}
}

// Ignore reports whether stringName in filePath should be skipped.
// A nil filter ignores nothing.
func (f *StringFilter) Ignore(filePath, stringName string) bool {
	if f == nil || f.ignore == nil {
		return false
	}
	return f.ignore(filePath, stringName)
}

// ParseFileOptions are the inputs shared by every format parser.
type ParseFileOptions struct {
	// FilePath identifies the file. It is used in messages and cache keys, never opened.
	FilePath string
	// Content is the raw file text.
	Content string
	// IgnoreString optionally filters strings out of the result.
	IgnoreString *StringFilter
}
