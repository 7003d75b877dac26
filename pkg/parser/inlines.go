package parser

import (
	"fmt"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// maxInlineNesting caps nested formatted spans. A formatting delimiter that
// would open a deeper level stays literal text.
const maxInlineNesting = 16

// parseInlines parses the token window [p.pos, end) into inline children of
// parent and returns the span the children cover. The tokenizer elides
// horizontal whitespace between tokens, so text values are recovered by
// slicing the source between constructs rather than by joining tokens.
//
// Formatting delimiters pair with the nearest following delimiter of the
// same kind and length inside the window; an unpaired delimiter is literal
// text, never a diagnostic.
func (p *parser) parseInlines(parent *adast.Node, end int) adast.Span {
	covered := adast.Span{}

	// [textStart, …) is the pending raw text run. flush slices it up to
	// stop and emits a single text node.
	textStart := -1
	flush := func(stop int) {
		if textStart < 0 || stop <= textStart {
			textStart = -1
			return
		}
		span := adast.Span{Start: textStart, End: stop}
		adast.AppendChild(parent, adast.NewText(string(span.Text(p.content)), span))
		covered = covered.Union(span)
		textStart = -1
	}
	literal := func(tok adast.Token) {
		if textStart < 0 {
			textStart = tok.Span.Start
		}
		p.pos++
	}

	lastEnd := -1

	for p.pos < end {
		tok := p.cur()

		switch tok.Kind {
		case adast.TokNewline:
			if p.pos+1 >= end {
				// Trailing newline is not paragraph content.
				flush(tok.Span.Start)
				p.pos++
				continue
			}
			literal(tok)

		case adast.TokBlankLine:
			flush(tok.Span.Start)
			p.pos++

		case adast.TokText:
			if p.tryLineBreak(parent, tok, end, flush) {
				covered = covered.Union(tok.Span)
				continue
			}
			if node, next := p.tryInlineMacro(tok, end); node != nil {
				flush(tok.Span.Start)
				adast.AppendChild(parent, node)
				covered = covered.Union(node.Span)
				p.pos = next
				continue
			}
			literal(tok)

		case adast.TokBoldDelim, adast.TokItalicDelim, adast.TokMonoDelim:
			closeAt := p.findClosingDelim(tok, end)
			if closeAt < 0 || p.inlineNestingExceeded(tok.Span) {
				literal(tok)
				continue
			}
			flush(tok.Span.Start)
			node := p.parseFormatted(tok, closeAt)
			adast.AppendChild(parent, node)
			covered = covered.Union(node.Span)

		case adast.TokAttrRefOpen:
			node, next := p.tryAttrRef(end)
			if node == nil {
				literal(tok)
				continue
			}
			flush(tok.Span.Start)
			adast.AppendChild(parent, node)
			covered = covered.Union(node.Span)
			p.pos = next

		case adast.TokURL:
			flush(tok.Span.Start)
			node, next := p.parseAutoLink(tok, end)
			adast.AppendChild(parent, node)
			covered = covered.Union(node.Span)
			p.pos = next

		case adast.TokError:
			flush(tok.Span.Start)
			p.report(diag.New(diag.LexError, tok.Span,
				fmt.Sprintf("invalid character sequence %q", p.text(tok))))
			p.pos++

		default:
			// Pipes, bangs, stray brackets, and anything else without
			// inline meaning here fold back into the text run.
			literal(tok)
		}

		lastEnd = tok.Span.End
	}

	flush(lastEnd)
	return covered
}

// tryLineBreak recognizes the hard line break form: a lone '+' at the end
// of a line, separated from the preceding text by whitespace.
func (p *parser) tryLineBreak(parent *adast.Node, tok adast.Token, end int, flush func(int)) bool {
	if p.text(tok) != "+" {
		return false
	}
	if tok.Span.Start == 0 || p.content[tok.Span.Start-1] != ' ' && p.content[tok.Span.Start-1] != '\t' {
		return false
	}
	next := p.peek(1)
	if p.pos+1 < end && next.Kind != adast.TokNewline {
		return false
	}

	flush(tok.Span.Start)
	br := adast.NewNode(adast.NodeLineBreak)
	br.Span = tok.Span
	br.Inline = &adast.InlineAttrs{}
	adast.AppendChild(parent, br)
	p.pos++
	return true
}

// inlineNestingExceeded reports whether opening one more formatted span
// would pass maxInlineNesting. The first delimiter past the limit produces
// an InvalidNesting diagnostic; deeper ones stay literal silently.
func (p *parser) inlineNestingExceeded(span adast.Span) bool {
	if p.inlineDepth < maxInlineNesting {
		return false
	}
	if !p.inlineDepthReported {
		p.inlineDepthReported = true
		p.report(diag.New(diag.InvalidNesting, span,
			fmt.Sprintf("inline formatting exceeds the maximum nesting of %d; deeper delimiters are treated as text", maxInlineNesting)))
	}
	return true
}

// parseFormatted builds a formatted node from a delimiter pair and parses
// the enclosed tokens as nested inline content.
func (p *parser) parseFormatted(open adast.Token, closeAt int) *adast.Node {
	closeTok := p.tokens[closeAt]

	node := adast.NewNode(adast.NodeFormatted)
	node.Span = open.Span.Union(closeTok.Span)
	node.Inline = &adast.InlineAttrs{Style: formatStyle(open.Kind)}

	p.pos++
	p.inlineDepth++
	p.parseInlines(node, closeAt)
	p.inlineDepth--
	p.pos = closeAt + 1

	return node
}

// findClosingDelim returns the index of the nearest delimiter of the same
// kind and length before end, or -1.
func (p *parser) findClosingDelim(open adast.Token, end int) int {
	for i := p.pos + 1; i < end; i++ {
		tok := p.tokens[i]
		if tok.Kind == open.Kind && tok.Len() == open.Len() {
			return i
		}
	}
	return -1
}

func formatStyle(kind adast.TokenKind) adast.FormatStyle {
	switch kind {
	case adast.TokItalicDelim:
		return adast.StyleItalic
	case adast.TokMonoDelim:
		return adast.StyleMonospace
	default:
		return adast.StyleBold
	}
}

// tryAttrRef recognizes {name} with no interior whitespace. References
// resolve against the attribute table as parsed so far; an undefined name
// substitutes as its literal form and is flagged for the validator.
func (p *parser) tryAttrRef(end int) (*adast.Node, int) {
	open := p.cur()
	nameTok := p.peek(1)
	closeTok := p.peek(2)

	if p.pos+2 >= end ||
		nameTok.Kind != adast.TokText ||
		closeTok.Kind != adast.TokAttrRefClose ||
		nameTok.Span.Start != open.Span.End ||
		closeTok.Span.Start != nameTok.Span.End {
		return nil, 0
	}

	name := p.text(nameTok)
	span := open.Span.Union(closeTok.Span)
	resolved, defined := p.ctx.ResolveAttribute(name, span, p.diags)
	if !defined {
		resolved = "{" + name + "}"
	}

	node := adast.NewNode(adast.NodeAttributeRef)
	node.Span = span
	node.Inline = &adast.InlineAttrs{AttrRef: &adast.AttrRefAttrs{
		Name:     name,
		Resolved: resolved,
		Defined:  defined,
	}}
	return node, p.pos + 3
}

// parseAutoLink builds a link node from a bare URL token, consuming an
// immediately following [text] attribute list as the display text.
func (p *parser) parseAutoLink(tok adast.Token, end int) (*adast.Node, int) {
	node := adast.NewNode(adast.NodeLink)
	node.Span = tok.Span
	node.Inline = &adast.InlineAttrs{Link: &adast.LinkAttrs{URL: p.text(tok)}}

	next := p.pos + 1
	if body, span, after, ok := p.bracketBody(next, end, tok.Span.End); ok {
		node.Inline.Link.Text = body
		node.Span = node.Span.Union(span)
		next = after
	}
	return node, next
}

// tryInlineMacro recognizes name:target[attrs] where the text token holds
// "name:target" and the bracket list follows with no gap. link: targets
// become link nodes; every other name becomes a generic inline macro.
func (p *parser) tryInlineMacro(tok adast.Token, end int) (*adast.Node, int) {
	text := p.text(tok)
	name, target, found := strings.Cut(text, ":")
	if !found || name == "" || target == "" || !isMacroName(name) {
		return nil, 0
	}

	body, span, after, ok := p.bracketBody(p.pos+1, end, tok.Span.End)
	if !ok {
		return nil, 0
	}

	if name == "link" {
		node := adast.NewNode(adast.NodeLink)
		node.Span = tok.Span.Union(span)
		node.Inline = &adast.InlineAttrs{Link: &adast.LinkAttrs{URL: target, Text: body}}
		return node, after
	}

	node := adast.NewNode(adast.NodeMacro)
	node.Span = tok.Span.Union(span)
	node.Inline = &adast.InlineAttrs{Macro: &adast.MacroAttrs{
		Name:       name,
		Target:     target,
		Attributes: parseAttrList(body),
	}}
	return node, after
}

// bracketBody returns the raw text between a bracket pair starting at token
// index at, requiring the open bracket to sit at byte offset afterByte and
// the close to appear before the next newline.
func (p *parser) bracketBody(at, end, afterByte int) (string, adast.Span, int, bool) {
	if at >= end {
		return "", adast.Span{}, 0, false
	}
	open := p.tokens[at]
	if open.Kind != adast.TokBracketOpen || open.Span.Start != afterByte {
		return "", adast.Span{}, 0, false
	}

	for i := at + 1; i < end; i++ {
		switch p.tokens[i].Kind {
		case adast.TokBracketClose:
			inner := adast.Span{Start: open.Span.End, End: p.tokens[i].Span.Start}
			return string(inner.Text(p.content)), open.Span.Union(p.tokens[i].Span), i + 1, true
		case adast.TokNewline, adast.TokBlankLine:
			return "", adast.Span{}, 0, false
		}
	}
	return "", adast.Span{}, 0, false
}

func isMacroName(name string) bool {
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' {
			continue
		}
		return false
	}
	return true
}
