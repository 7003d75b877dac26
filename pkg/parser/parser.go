// Package parser implements the AsciiDoc tokenizer and the context-sensitive
// recursive-descent grammar that turns raw text into an adast tree plus a
// diagnostic list. Parsing never aborts on malformed input: every local
// failure records one diagnostic and skips to the nearest synchronization
// point (blank line, heading, or matching block delimiter).
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// parser holds the cursor state for one parse over one token buffer.
// Position is explicit so lookahead is cheap and nothing is consumed
// irreversibly.
type parser struct {
	content []byte
	tokens  []adast.Token
	pos     int
	ctx     *Context
	diags   *diag.List

	// cellDepth counts AsciiDoc table cells currently being parsed as
	// blocks; together with the open-delimited-block stack it is checked
	// against Options.MaxBlockDepth before another block may open.
	cellDepth   int
	inlineDepth int

	blockDepthReported  bool
	inlineDepthReported bool
}

// Parse parses AsciiDoc content with default options.
// It returns the document root (possibly partial for invalid input) and the
// complete diagnostic list, sorted by primary span start.
func Parse(content []byte) (*adast.Node, diag.List) {
	return ParseWithOptions(content, DefaultOptions())
}

// ParseWithOptions parses AsciiDoc content with explicit options.
func ParseWithOptions(content []byte, opts Options) (*adast.Node, diag.List) {
	ctx := NewContext(opts.Normalized())
	var diags diag.List

	doc := parseBuffer(content, ctx, &diags)
	doc.Doc.Attributes = ctx.Attributes()

	diags.Sort()
	return doc, diags
}

// ParseFile reads path and parses its contents. The returned error is
// non-nil only when the file cannot be read at all; parse problems are
// reported through the diagnostic list.
func ParseFile(path string, opts Options) (*adast.Node, diag.List, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, diags := ParseWithOptions(content, opts)
	return doc, diags, nil
}

// parseBuffer runs the grammar over one buffer using a shared context.
// Include resolution re-enters it for the included buffer.
func parseBuffer(content []byte, ctx *Context, diags *diag.List) *adast.Node {
	p := &parser{
		content: content,
		tokens:  Tokenize(content),
		ctx:     ctx,
		diags:   diags,
	}

	doc := adast.NewDocument()
	doc.Span = adast.Span{Start: 0, End: len(content)}

	p.parseHeader(doc)
	p.parseBlocks(doc, len(p.tokens), 0)
	p.finish()

	return doc
}

// finish reports conditionals still open at end of input. Delimited blocks
// report their own unclosed state as the recursion unwinds, innermost first.
func (p *parser) finish() {
	spans := p.ctx.OpenConditionals()
	for i := len(spans) - 1; i >= 0; i-- {
		p.report(diag.New(diag.UnclosedDelimiter, spans[i],
			"conditional directive is never closed; expected endif::[]").
			WithLabel("opened here", spans[i]))
		p.ctx.PopConditional()
	}
}

func (p *parser) report(b *diag.Builder) {
	*p.diags = append(*p.diags, b.Build())
}

// Cursor helpers. All parsing functions operate on an explicit window
// [p.pos, end) so table cells and delimited bodies can reuse the same rules.

func (p *parser) at(i int) adast.Token {
	if i < 0 || i >= len(p.tokens) {
		return adast.Token{Kind: adast.TokBlankLine, Span: adast.Span{Start: len(p.content), End: len(p.content)}}
	}
	return p.tokens[i]
}

func (p *parser) cur() adast.Token {
	return p.at(p.pos)
}

func (p *parser) peek(offset int) adast.Token {
	return p.at(p.pos + offset)
}

func (p *parser) text(t adast.Token) string {
	return string(t.Text(p.content))
}

// restOfLine returns the raw source from the current token to the end of
// the line, advancing the cursor past the line's tokens but not past the
// newline token itself.
func (p *parser) restOfLine(end int) (string, adast.Span) {
	if p.pos >= end {
		at := len(p.content)
		return "", adast.Span{Start: at, End: at}
	}

	start := p.cur().Span.Start
	last := start
	for p.pos < end {
		tok := p.cur()
		if tok.Kind == adast.TokNewline || tok.Kind == adast.TokBlankLine {
			break
		}
		last = tok.Span.End
		p.pos++
	}

	span := adast.Span{Start: start, End: last}
	return string(span.Text(p.content)), span
}

// skipLineEnd consumes a single trailing newline token, if present.
func (p *parser) skipLineEnd(end int) {
	if p.pos < end && p.cur().Kind == adast.TokNewline {
		p.pos++
	}
}

// isBlockBoundary reports whether kind terminates a paragraph or list item.
func isBlockBoundary(kind adast.TokenKind) bool {
	switch kind {
	case adast.TokBlankLine, adast.TokHeadingMarker, adast.TokAttrEntry,
		adast.TokListBullet, adast.TokListNumber, adast.TokCommentLine,
		adast.TokBlockMacro, adast.TokIncludeMacro, adast.TokIfdefMacro,
		adast.TokIfndefMacro, adast.TokIfevalMacro, adast.TokEndifMacro,
		adast.TokTableDelim, adast.TokNestedTableDelim:
		return true
	default:
		return false
	}
}

// recoverTo implements the skip-to-synchronization-point policy: after one
// diagnostic for a malformed construct, the cursor advances to the next
// blank line, heading, or block delimiter so surrounding valid content is
// preserved and the same root cause is reported only once.
func (p *parser) recoverTo(end int) {
	for p.pos < end {
		kind := p.cur().Kind
		if kind == adast.TokBlankLine || kind == adast.TokHeadingMarker || p.cur().IsDelim() {
			return
		}
		p.pos++
	}
}

// parseHeader parses the optional document header: a level-1 title line at
// the very start of the buffer, followed by optional author and revision
// lines and attribute entries, ended by a blank line.
func (p *parser) parseHeader(doc *adast.Node) {
	start := p.pos
	p.skipIgnorable(len(p.tokens))

	tok := p.cur()
	if tok.Kind != adast.TokHeadingMarker || tok.Len() != 1 {
		p.pos = start
		return
	}

	header := adast.NewNode(adast.NodeHeader)
	header.Span = tok.Span
	header.Block = &adast.BlockAttrs{Level: 1}
	p.ctx.EnterSection(1)
	p.pos++

	titleEnd := p.lineEndIndex(len(p.tokens))
	titleSpan := p.parseInlines(header, titleEnd)
	header.Span = header.Span.Union(titleSpan)
	doc.Doc.Title = string(titleSpan.Text(p.content))
	p.skipLineEnd(len(p.tokens))

	// Author, revision, and attribute entries up to the first blank line.
	plainLines := 0
	for p.pos < len(p.tokens) {
		tok := p.cur()
		switch tok.Kind {
		case adast.TokBlankLine:
			p.pos++
			adast.AppendChild(doc, header)
			return
		case adast.TokNewline:
			p.pos++
		case adast.TokAttrEntry:
			p.parseAttrEntry(len(p.tokens))
		case adast.TokCommentLine:
			p.pos++
		case adast.TokText:
			line, span := p.restOfLine(len(p.tokens))
			p.skipLineEnd(len(p.tokens))
			plainLines++
			switch plainLines {
			case 1:
				doc.Doc.Authors = splitAuthors(line)
			case 2:
				doc.Doc.Revision = line
			default:
				// Extra plain lines are not header material; this is
				// already body content the header should not have eaten.
				p.report(diag.New(diag.UnexpectedToken, span,
					"unexpected line in document header"))
			}
			header.Span = header.Span.Union(span)
		default:
			adast.AppendChild(doc, header)
			return
		}
	}

	adast.AppendChild(doc, header)
}

// lineEndIndex returns the index of the token ending the current line
// without moving the cursor.
func (p *parser) lineEndIndex(end int) int {
	i := p.pos
	for i < end {
		kind := p.tokens[i].Kind
		if kind == adast.TokNewline || kind == adast.TokBlankLine {
			return i
		}
		i++
	}
	return end
}

// skipIgnorable advances over blank lines, newlines, and comment lines.
func (p *parser) skipIgnorable(end int) {
	for p.pos < end {
		switch p.cur().Kind {
		case adast.TokNewline, adast.TokBlankLine, adast.TokCommentLine:
			p.pos++
		default:
			return
		}
	}
}

func splitAuthors(line string) []string {
	var authors []string
	for _, part := range strings.Split(line, ";") {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}
