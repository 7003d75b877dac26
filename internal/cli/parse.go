package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/intergrado-cg/doctora/internal/logging"
	"github.com/intergrado-cg/doctora/internal/ui/pretty"
	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/config"
	"github.com/intergrado-cg/doctora/pkg/diag"
	"github.com/intergrado-cg/doctora/pkg/parser"
	"github.com/intergrado-cg/doctora/pkg/processor"
	"github.com/intergrado-cg/doctora/pkg/validator"
)

// ErrParseIssuesFound is returned when the parse reported diagnostics.
// It carries no message for the user; it only selects the exit code.
var ErrParseIssuesFound = errors.New("parse issues found")

// ErrInputUnreadable is returned when the input or config file cannot
// be read.
var ErrInputUnreadable = errors.New("input unreadable")

type parseFlags struct {
	format    string
	baseDir   string
	strict    bool
	noContext bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse an AsciiDoc file and report diagnostics",
		Long:  parseLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text (diagnostics), plain (rendered text)")
	cmd.Flags().StringVar(&flags.baseDir, "base-dir", "",
		"base directory for include resolution (default: the input's directory)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"treat warnings as failures")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false,
		"omit source lines from diagnostic output")

	return cmd
}

const parseLongDescription = `Parse an AsciiDoc file into a syntax tree and report every problem found.

The parse never stops at the first error: each problem produces one
diagnostic and parsing resumes at the next block boundary.

Examples:
  doctora parse README.adoc                 # Report diagnostics
  doctora parse --format plain book.adoc    # Render as plain text
  doctora parse --strict spec.adoc          # Warnings fail the run`

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flags.baseDir != "" {
		cfg.BaseDir = flags.baseDir
	}
	cfg.Format = config.OutputFormat(flags.format)
	if !cfg.Format.IsValid() {
		return fmt.Errorf("unknown output format %q", flags.format)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	opts := parserOptions(cfg, filepath.Dir(path))
	logger.Debug("parsing",
		logging.FieldInput, path,
		logging.FieldBaseDir, opts.BaseDir,
		logging.FieldSafeMode, opts.SafeMode,
	)

	doc, diags := parser.ParseWithOptions(content, opts)
	diags = append(diags, validator.Validate(doc, doc.Doc.Attributes, opts)...)
	diags.Sort()

	logger.Debug("parsed",
		logging.FieldInput, path,
		logging.FieldDiagnosticsTotal, len(diags),
		logging.FieldErrors, diags.CountBySeverity()[diag.SeverityError],
	)

	src := adast.NewSource(path, content)
	colorMode, _ := cmd.Flags().GetString("color")

	switch cfg.Format {
	case config.FormatPlain:
		if err := renderPlain(doc, src, diags, colorMode, flags); err != nil {
			return err
		}
	default:
		renderDiagnostics(os.Stdout, doc, src, diags, colorMode, flags)
	}

	if ExitCodeFromDiagnostics(diags, flags.strict) != ExitSuccess {
		return ErrParseIssuesFound
	}
	return nil
}

// renderDiagnostics writes styled diagnostics and a summary line.
func renderDiagnostics(out *os.File, _ *adast.Node, src *adast.Source, diags diag.List, colorMode string, flags *parseFlags) {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	width := pretty.TerminalWidth(out, 100)

	for _, d := range diags {
		fmt.Fprint(out, styles.FormatDiagnostic(d, src, !flags.noContext, width))
	}
	if len(diags) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, styles.FormatSummaryOneLine(diags))
}

// renderPlain writes the rendered document to stdout and any diagnostics
// to stderr.
func renderPlain(doc *adast.Node, src *adast.Source, diags diag.List, colorMode string, flags *parseFlags) error {
	registry := processor.DefaultRegistry()
	shared := &processor.Shared{Source: src, Registry: registry}

	output, err := registry.Process("plain", doc, shared)
	if err != nil {
		return fmt.Errorf("render plain text: %w", err)
	}

	if _, err := os.Stdout.Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if len(diags) > 0 {
		renderDiagnostics(os.Stderr, doc, src, diags, colorMode, flags)
	}
	return nil
}

// loadConfig reads the file named by --config, or returns defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if configPath == "" {
		return config.NewConfig(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// parserOptions maps the configuration onto one parse call.
func parserOptions(cfg *config.Config, inputDir string) parser.Options {
	opts := parser.DefaultOptions()
	opts.MaxIncludeDepth = cfg.MaxIncludeDepth
	opts.MaxSectionDepth = cfg.MaxSectionDepth
	opts.MaxBlockDepth = cfg.MaxBlockDepth
	opts.BaseDir = cfg.BaseDir
	if opts.BaseDir == "" {
		opts.BaseDir = inputDir
	}
	opts.SafeMode = cfg.SafeMode
	opts.DetectLanguages = cfg.DetectLanguages
	return opts
}
