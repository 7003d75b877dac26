package parser

// Default configuration limits.
const (
	DefaultMaxIncludeDepth = 10
	DefaultMaxSectionDepth = 6
	DefaultMaxBlockDepth   = 64
)

// Options configures one parse call.
type Options struct {
	// MaxIncludeDepth bounds nested include resolution.
	MaxIncludeDepth int

	// MaxSectionDepth bounds section nesting; deeper headings are flagged
	// by the validator.
	MaxSectionDepth int

	// MaxBlockDepth bounds block nesting: delimited blocks plus AsciiDoc
	// table cells. Markers past the limit are treated as text.
	MaxBlockDepth int

	// BaseDir is the directory for resolving include targets.
	// If empty, includes resolve relative to the working directory.
	BaseDir string

	// SafeMode requires include targets to resolve within BaseDir.
	SafeMode bool

	// FileReader resolves include targets. Nil disables include
	// resolution; every include directive then reports IncludeNotFound.
	FileReader FileReader

	// DetectLanguages enables source-language detection for listing
	// blocks without an explicit language attribute.
	DetectLanguages bool
}

// DefaultOptions returns Options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		MaxSectionDepth: DefaultMaxSectionDepth,
		MaxBlockDepth:   DefaultMaxBlockDepth,
		FileReader:      OSFileReader{},
		DetectLanguages: true,
	}
}

// Normalized fills zero-valued limits with defaults.
func (o Options) Normalized() Options {
	if o.MaxIncludeDepth <= 0 {
		o.MaxIncludeDepth = DefaultMaxIncludeDepth
	}
	if o.MaxSectionDepth <= 0 {
		o.MaxSectionDepth = DefaultMaxSectionDepth
	}
	if o.MaxBlockDepth <= 0 {
		o.MaxBlockDepth = DefaultMaxBlockDepth
	}
	return o
}
