// Package config defines configuration types for doctora.
// These types are pure data structures; file discovery and flag binding
// live in the CLI layer.
package config

// OutputFormat specifies the output format for parse results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatPlain OutputFormat = "plain"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatPlain:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for doctora.
type Config struct {
	// MaxIncludeDepth bounds nested include resolution.
	MaxIncludeDepth int `yaml:"max_include_depth"`

	// MaxSectionDepth bounds section nesting before the validator flags it.
	MaxSectionDepth int `yaml:"max_section_depth"`

	// MaxBlockDepth bounds block nesting; markers past the limit are
	// treated as text.
	MaxBlockDepth int `yaml:"max_block_depth"`

	// BaseDir is the directory include targets resolve against.
	// If empty, the directory of the parsed file is used.
	BaseDir string `yaml:"base_dir"`

	// SafeMode requires include targets to stay within BaseDir.
	SafeMode bool `yaml:"safe_mode"`

	// DetectLanguages enables source-language detection for listing
	// blocks without an explicit language attribute.
	DetectLanguages bool `yaml:"detect_languages"`

	// LogLevel sets CLI log verbosity ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxIncludeDepth: 10,
		MaxSectionDepth: 6,
		MaxBlockDepth:   64,
		SafeMode:        true,
		DetectLanguages: true,
		LogLevel:        "warn",
		Format:          FormatText,
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
