package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// FileReader is the file-access capability used to resolve include::
// directives. It is the only I/O the core performs.
type FileReader interface {
	// ReadIncludeTarget reads the contents of an include target.
	ReadIncludeTarget(path string) ([]byte, error)
}

// OSFileReader resolves include targets against the local filesystem.
type OSFileReader struct{}

// ReadIncludeTarget implements FileReader.
func (OSFileReader) ReadIncludeTarget(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FuncFileReader adapts a function to the FileReader interface; handy for
// tests and in-memory documents.
type FuncFileReader func(path string) ([]byte, error)

// ReadIncludeTarget implements FileReader.
func (f FuncFileReader) ReadIncludeTarget(path string) ([]byte, error) {
	return f(path)
}

// ResolveIncludePath joins target with baseDir and, in safe mode, rejects
// targets that escape baseDir.
func ResolveIncludePath(target, baseDir string, safeMode bool) (string, error) {
	path := target
	if baseDir != "" && !filepath.IsAbs(target) {
		path = filepath.Join(baseDir, target)
	}
	path = filepath.Clean(path)

	if safeMode {
		base := filepath.Clean(baseDir)
		if base == "" || base == "." {
			cwd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("resolve base dir: %w", err)
			}
			base = cwd
		}
		abs := path
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(base, target)
			abs = filepath.Clean(abs)
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("include target %q escapes base directory %q", target, base)
		}
		path = abs
	}

	return path, nil
}

// readInclude performs depth and path checks, then invokes the injected
// FileReader. Failures become diagnostics, never fatal errors.
func (p *parser) readInclude(target string, span adast.Span) ([]byte, bool) {
	if !p.ctx.EnterInclude() {
		p.report(diag.New(diag.IncludeDepthExceeded, span,
			fmt.Sprintf("include depth exceeds the configured maximum of %d", p.ctx.Options().MaxIncludeDepth)))
		return nil, false
	}

	opts := p.ctx.Options()
	path, err := ResolveIncludePath(target, opts.BaseDir, opts.SafeMode)
	if err != nil {
		p.ctx.LeaveInclude()
		p.report(diag.New(diag.IncludePathViolation, span, err.Error()))
		return nil, false
	}

	if opts.FileReader == nil {
		p.ctx.LeaveInclude()
		p.report(diag.New(diag.IncludeNotFound, span,
			fmt.Sprintf("cannot resolve include target %q: no file access configured", target)))
		return nil, false
	}

	content, err := opts.FileReader.ReadIncludeTarget(path)
	if err != nil {
		p.ctx.LeaveInclude()
		p.report(diag.New(diag.IncludeNotFound, span,
			fmt.Sprintf("cannot read include target %q: %v", target, err)))
		return nil, false
	}

	return content, true
}
