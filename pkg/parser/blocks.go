package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
	"github.com/intergrado-cg/doctora/pkg/langdetect"
)

// parseBlocks parses blocks into parent until the window ends or a heading
// at or above stopLevel is seen (lookahead, not consumed). It is the single
// dispatch point of the block grammar.
func (p *parser) parseBlocks(parent *adast.Node, end, stopLevel int) {
	var pending adast.Attributes

	for p.pos < end {
		tok := p.cur()

		switch tok.Kind {
		case adast.TokNewline, adast.TokBlankLine, adast.TokCommentLine:
			p.pos++
			continue

		case adast.TokCommentDelim:
			p.skipCommentBlock(end)
			continue

		case adast.TokIfdefMacro, adast.TokIfndefMacro, adast.TokIfevalMacro, adast.TokEndifMacro:
			p.parseConditional(parent, end)
			continue
		}

		// Inside a false conditional branch, tokens are consumed but
		// produce no AST nodes. Only directives above remain significant.
		if !p.ctx.Emitting() {
			p.pos++
			continue
		}

		// A delimiter matching the top of the open-block stack closes the
		// enclosing block; the caller consumes it.
		if tok.IsDelim() && p.ctx.MatchesOpenDelimited(delimKindOf(tok.Kind), tok.Len()) {
			return
		}

		switch {
		case tok.Kind == adast.TokHeadingMarker:
			level := tok.Len()
			if level <= stopLevel {
				return
			}
			p.parseSection(parent, end, level)

		case tok.Kind == adast.TokAttrEntry:
			p.parseAttrEntry(end)

		case tok.Kind == adast.TokIncludeMacro:
			p.parseInclude(parent, end)

		case tok.Kind == adast.TokBlockMacro:
			p.parseBlockMacro(parent, end, pending)
			pending = nil

		case tok.Kind == adast.TokTableDelim:
			p.parseTable(parent, end, false, pending)
			pending = nil

		case tok.Kind == adast.TokNestedTableDelim:
			p.parseTable(parent, end, true, pending)
			pending = nil

		case tok.IsDelim():
			p.parseDelimited(parent, end, pending)
			pending = nil

		case tok.Kind == adast.TokListBullet || tok.Kind == adast.TokListNumber:
			p.parseList(parent, end, pending)
			pending = nil

		case tok.Kind == adast.TokBracketOpen && p.atLineStart():
			attrs, ok := p.parseBlockAttrList(end)
			if ok {
				pending = attrs
				continue
			}
			p.parseParagraph(parent, end, pending)
			pending = nil

		case tok.Kind == adast.TokError:
			p.report(diag.New(diag.LexError, tok.Span,
				fmt.Sprintf("invalid character sequence %q", p.text(tok))))
			p.pos++
			p.recoverTo(end)

		default:
			p.parseParagraph(parent, end, pending)
			pending = nil
		}
	}
}

// atLineStart reports whether the current token begins a line.
func (p *parser) atLineStart() bool {
	if p.pos == 0 {
		return true
	}
	switch p.tokens[p.pos-1].Kind {
	case adast.TokNewline, adast.TokBlankLine:
		return true
	default:
		return false
	}
}

// parseSection parses a heading and all following blocks that belong to it.
// Blocks belong to the section until a heading of level <= its own level is
// seen or the window ends. Jumps deeper than parent level + 1 are accepted
// as irregular-depth children and flagged, not rejected.
func (p *parser) parseSection(parent *adast.Node, end, level int) {
	tok := p.cur()
	p.pos++

	section := adast.NewNode(adast.NodeSection)
	section.Span = tok.Span
	section.Block = &adast.BlockAttrs{Level: level}

	prevLevel := p.ctx.CurrentLevel()
	if level > prevLevel+1 {
		p.report(diag.New(diag.InvalidNesting, tok.Span,
			fmt.Sprintf("section level %d follows level %d; intermediate levels are skipped", level, prevLevel)))
	}
	p.ctx.EnterSection(level)

	titleEnd := p.lineEndIndex(end)
	titleSpan := p.parseInlines(section, titleEnd)
	section.Span = section.Span.Union(titleSpan)
	section.Block.ID = sectionID(string(titleSpan.Text(p.content)))
	p.skipLineEnd(end)

	p.parseBlocks(section, end, level)
	p.ctx.EnterSection(prevLevel)

	adast.AppendChild(parent, section)
}

// sectionID derives an anchor id from a section title.
func sectionID(title string) string {
	var b strings.Builder
	b.WriteByte('_')
	lastUnderscore := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// parseParagraph parses a run of non-blank lines into a paragraph of inline
// content, terminated by a blank line, heading, delimiter, or list marker.
func (p *parser) parseParagraph(parent *adast.Node, end int, pending adast.Attributes) {
	para := adast.NewNode(adast.NodeParagraph)
	para.Block = &adast.BlockAttrs{Attributes: pending}

	winEnd := p.pos
	for winEnd < end {
		kind := p.tokens[winEnd].Kind
		if isBlockBoundary(kind) || p.tokens[winEnd].IsDelim() {
			break
		}
		winEnd++
	}

	span := p.parseInlines(para, winEnd)
	para.Span = span

	if para.HasChildren() {
		adast.AppendChild(parent, para)
	}
}

// parseAttrEntry handles ':name: value' and ':name!:' lines, mutating the
// context attribute table. The value keeps its raw text; nested references
// are substituted when the attribute is resolved.
func (p *parser) parseAttrEntry(end int) {
	tok := p.cur()
	p.pos++

	entry := p.text(tok)
	name := strings.TrimSuffix(strings.TrimPrefix(entry, ":"), ":")
	unset := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	value, _ := p.restOfLine(end)
	p.skipLineEnd(end)

	if !p.ctx.Emitting() {
		return
	}

	switch {
	case unset:
		p.ctx.DefineAttribute(name, adast.UnsetValue())
	case value == "":
		// A bare entry defines a boolean flag.
		p.ctx.DefineAttribute(name, adast.BoolValue(true))
	default:
		if n, err := strconv.Atoi(value); err == nil {
			p.ctx.DefineAttribute(name, adast.IntValue(n))
		} else {
			p.ctx.DefineAttribute(name, adast.TextValue(value))
			if strings.Contains(value, "{") {
				// A value with references may close a cycle the moment it
				// is defined, before anything refers to it.
				p.ctx.ResolveAttribute(name, tok.Span, p.diags)
			}
		}
	}
}

// skipCommentBlock consumes a '////' comment block without producing nodes.
func (p *parser) skipCommentBlock(end int) {
	open := p.cur()
	p.pos++
	for p.pos < end {
		tok := p.cur()
		if tok.Kind == adast.TokCommentDelim && tok.Len() == open.Len() {
			p.pos++
			return
		}
		p.pos++
	}
	p.report(diag.New(diag.UnclosedDelimiter, open.Span,
		"comment block is never closed").
		WithLabel("opened here", open.Span))
}

// blockNestingExceeded reports whether opening one more nested block would
// pass MaxBlockDepth. Open delimited blocks and AsciiDoc table cells both
// count toward the limit. The first marker past it produces an
// InvalidNesting diagnostic; deeper ones degrade to text silently.
func (p *parser) blockNestingExceeded(span adast.Span) bool {
	limit := p.ctx.Options().MaxBlockDepth
	if p.ctx.DelimitedDepth()+p.cellDepth < limit {
		return false
	}
	if !p.blockDepthReported {
		p.blockDepthReported = true
		p.report(diag.New(diag.InvalidNesting, span,
			fmt.Sprintf("block nesting exceeds the maximum depth of %d; deeper markers are treated as text", limit)))
	}
	return true
}

// literalMarkerLine consumes the current line as a plain paragraph, used
// when the nesting limit stops a deeper block from opening.
func (p *parser) literalMarkerLine(parent *adast.Node, end int) {
	line, span := p.restOfLine(end)
	p.skipLineEnd(end)

	para := adast.NewNode(adast.NodeParagraph)
	para.Span = span
	para.Block = &adast.BlockAttrs{}
	adast.AppendChild(para, adast.NewText(line, span))
	adast.AppendChild(parent, para)
}

// delimKindOf maps delimiter token kinds to block flavors.
func delimKindOf(kind adast.TokenKind) adast.DelimitedKind {
	switch kind {
	case adast.TokListingDelim:
		return adast.DelimListing
	case adast.TokSidebarDelim:
		return adast.DelimSidebar
	case adast.TokExampleDelim:
		return adast.DelimExample
	case adast.TokQuoteDelim:
		return adast.DelimQuote
	case adast.TokLiteralDelim:
		return adast.DelimLiteral
	case adast.TokPassthroughDelim:
		return adast.DelimPassthrough
	case adast.TokOpenDelim:
		return adast.DelimOpen
	default:
		return adast.DelimComment
	}
}

// parseDelimited parses one delimited block. The open-delimited-block stack
// records kind plus literal delimiter length; a marker matching the top of
// the stack closes the block, any other marker opens a nested one, so nested
// same-kind blocks must use a different length. At end of input every block
// still open reports UnclosedDelimiter (innermost first, as the recursion
// unwinds) and a close is synthesized so the partial tree stays well-formed.
func (p *parser) parseDelimited(parent *adast.Node, end int, pending adast.Attributes) {
	open := p.cur()
	if p.blockNestingExceeded(open.Span) {
		p.literalMarkerLine(parent, end)
		return
	}
	kind := delimKindOf(open.Kind)
	length := open.Len()
	p.pos++
	p.skipLineEnd(end)

	node := adast.NewNode(adast.NodeDelimited)
	node.Span = open.Span
	node.Block = &adast.BlockAttrs{
		Attributes: pending,
		Delimited: &adast.DelimitedAttrs{
			Kind:     kind,
			DelimLen: length,
		},
	}

	p.ctx.PushDelimited(kind, length, open.Span)

	if kind.IsVerbatim() {
		p.parseVerbatimBody(node, end, open)
	} else {
		p.parseContainerBody(node, end, open)
	}

	p.ctx.PopDelimited()
	adast.AppendChild(parent, node)
}

// parseVerbatimBody captures raw content for listing/literal/passthrough
// blocks. Directive-looking lines inside are literal text by construction:
// the raw span is sliced from the source without interpreting tokens.
func (p *parser) parseVerbatimBody(node *adast.Node, end int, open adast.Token) {
	attrs := node.Block.Delimited
	contentStart := open.Span.End
	if contentStart < len(p.content) && p.content[contentStart] == '\r' {
		contentStart++
	}
	if contentStart < len(p.content) && p.content[contentStart] == '\n' {
		contentStart++
	}

	for p.pos < end {
		tok := p.cur()
		if tok.Kind == open.Kind && tok.Len() == open.Len() {
			attrs.Content = adast.Span{Start: contentStart, End: lineStartBefore(p.content, tok.Span.Start)}
			node.Span = node.Span.Union(tok.Span)
			p.pos++
			p.skipLineEnd(end)
			p.setListingLanguage(node)
			return
		}
		p.pos++
	}

	// End of input: synthesize the close.
	attrs.Content = adast.Span{Start: min(contentStart, len(p.content)), End: len(p.content)}
	attrs.Unclosed = true
	node.Span = node.Span.Union(attrs.Content)
	p.report(diag.New(diag.UnclosedDelimiter, open.Span,
		fmt.Sprintf("%s block is never closed; expected %q", attrs.Kind, strings.Repeat(delimChar(open.Kind), open.Len()))).
		WithLabel("opened here", open.Span))
	p.setListingLanguage(node)
}

// parseContainerBody recursively parses blocks for example/sidebar/quote/
// open blocks until the matching close marker. parseBlocks returns at a
// delimiter matching the top of the open-block stack; anything else at the
// cursor means the close is missing.
func (p *parser) parseContainerBody(node *adast.Node, end int, open adast.Token) {
	attrs := node.Block.Delimited
	p.parseBlocks(node, end, 0)

	if p.pos < end {
		tok := p.cur()
		if tok.Kind == open.Kind && tok.Len() == open.Len() {
			node.Span = node.Span.Union(tok.Span)
			p.pos++
			p.skipLineEnd(end)
			return
		}
	}

	attrs.Unclosed = true
	p.report(diag.New(diag.UnclosedDelimiter, open.Span,
		fmt.Sprintf("%s block is never closed; expected %q", attrs.Kind, strings.Repeat(delimChar(open.Kind), open.Len()))).
		WithLabel("opened here", open.Span))
}

func delimChar(kind adast.TokenKind) string {
	switch kind {
	case adast.TokListingDelim:
		return "-"
	case adast.TokSidebarDelim:
		return "*"
	case adast.TokExampleDelim:
		return "="
	case adast.TokQuoteDelim:
		return "_"
	case adast.TokLiteralDelim:
		return "."
	case adast.TokPassthroughDelim:
		return "+"
	case adast.TokOpenDelim:
		return "-"
	default:
		return "/"
	}
}

// setListingLanguage records the listing language either from the block
// attribute list ([source,go]) or by content detection.
func (p *parser) setListingLanguage(node *adast.Node) {
	attrs := node.Block.Delimited
	if attrs.Kind != adast.DelimListing {
		return
	}

	if lang, ok := node.Block.Attributes["language"]; ok && lang.IsSet() {
		attrs.Language = lang.String()
		return
	}

	if p.ctx.Options().DetectLanguages {
		attrs.Language = langdetect.Detect(attrs.Content.Text(p.content))
	}
}

// lineStartBefore returns the offset of the start of the line containing
// offset, used to trim the newline preceding a close marker from verbatim
// content.
func lineStartBefore(content []byte, offset int) int {
	if offset > 0 && offset <= len(content) && content[offset-1] == '\n' {
		offset--
		if offset > 0 && content[offset-1] == '\r' {
			offset--
		}
	}
	return offset
}

// parseBlockAttrList parses a '[...]' line preceding a block. Positional
// entries map to style and language; named entries use key=value form.
// Returns ok=false when the line is not a well-formed attribute list, in
// which case the cursor is restored.
func (p *parser) parseBlockAttrList(end int) (adast.Attributes, bool) {
	start := p.pos
	p.pos++ // '['

	closeAt := -1
	lineEnd := p.lineEndIndex(end)
	for i := p.pos; i < lineEnd; i++ {
		if p.tokens[i].Kind == adast.TokBracketClose {
			closeAt = i
		}
	}
	if closeAt < 0 || closeAt != lineEnd-1 {
		p.pos = start
		return nil, false
	}

	inner := adast.Span{Start: p.tokens[start].Span.End, End: p.tokens[closeAt].Span.Start}
	attrs := parseAttrList(string(inner.Text(p.content)))
	p.pos = closeAt + 1
	p.skipLineEnd(end)
	return attrs, true
}

// parseAttrList parses a comma-separated attribute list body. The first
// positional entry is the style; for source blocks the second is the
// language.
func parseAttrList(body string) adast.Attributes {
	attrs := make(adast.Attributes)
	position := 0

	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if key, value, found := strings.Cut(part, "="); found {
			attrs[strings.TrimSpace(key)] = adast.TextValue(strings.TrimSpace(strings.Trim(value, `"`)))
			continue
		}
		position++
		switch position {
		case 1:
			attrs["style"] = adast.TextValue(part)
		case 2:
			attrs["language"] = adast.TextValue(part)
		default:
			attrs[fmt.Sprintf("positional-%d", position)] = adast.TextValue(part)
		}
	}

	return attrs
}

// parseBlockMacro parses 'name::target[attrs]' block macro lines.
func (p *parser) parseBlockMacro(parent *adast.Node, end int, pending adast.Attributes) {
	tok := p.cur()
	p.pos++

	name := strings.TrimSuffix(p.text(tok), "::")
	target, attrs, span := p.parseMacroTail(end, tok.Span)
	p.skipLineEnd(end)

	node := adast.NewNode(adast.NodeBlockMacro)
	node.Span = tok.Span.Union(span)
	node.Block = &adast.BlockAttrs{
		Attributes: pending,
		Macro: &adast.MacroAttrs{
			Name:       name,
			Target:     target,
			Attributes: attrs,
		},
	}
	adast.AppendChild(parent, node)
}

// parseMacroTail consumes 'target[attrlist]' after a macro keyword,
// returning the target, the parsed attribute list, and the covered span.
func (p *parser) parseMacroTail(end int, macroSpan adast.Span) (string, adast.Attributes, adast.Span) {
	lineEnd := p.lineEndIndex(end)
	span := macroSpan

	// Target: raw source between the macro keyword and the bracket.
	bracketAt := -1
	for i := p.pos; i < lineEnd; i++ {
		if p.tokens[i].Kind == adast.TokBracketOpen {
			bracketAt = i
			break
		}
	}

	if bracketAt < 0 {
		// No attribute list; the whole line tail is the target.
		target, tailSpan := p.restOfLine(end)
		return strings.TrimSpace(target), make(adast.Attributes), span.Union(tailSpan)
	}

	targetSpan := adast.Span{Start: macroSpan.End, End: p.tokens[bracketAt].Span.Start}
	target := strings.TrimSpace(string(targetSpan.Text(p.content)))

	closeAt := -1
	for i := bracketAt + 1; i < lineEnd; i++ {
		if p.tokens[i].Kind == adast.TokBracketClose {
			closeAt = i
		}
	}

	if closeAt < 0 {
		p.report(diag.New(diag.UnexpectedToken, p.tokens[bracketAt].Span,
			"macro attribute list is never closed; expected ']'"))
		p.pos = lineEnd
		return target, make(adast.Attributes), span.Union(targetSpan)
	}

	inner := adast.Span{Start: p.tokens[bracketAt].Span.End, End: p.tokens[closeAt].Span.Start}
	attrs := parseAttrList(string(inner.Text(p.content)))
	p.pos = closeAt + 1
	return target, attrs, span.Union(p.tokens[closeAt].Span)
}

// parseInclude resolves an include:: directive. Depth and safe-mode path
// checks happen before any read; failures become diagnostics and the
// directive is kept in the tree as an unresolved block macro. Inside a
// verbatim block this code is never reached: such lines are raw content.
func (p *parser) parseInclude(parent *adast.Node, end int) {
	tok := p.cur()
	p.pos++

	target, attrs, span := p.parseMacroTail(end, tok.Span)
	p.skipLineEnd(end)

	node := adast.NewNode(adast.NodeBlockMacro)
	node.Span = tok.Span.Union(span)
	node.Block = &adast.BlockAttrs{
		Macro: &adast.MacroAttrs{
			Name:       "include",
			Target:     target,
			Attributes: attrs,
		},
	}
	adast.AppendChild(parent, node)

	content, ok := p.readInclude(target, node.Span)
	node.Block.Macro.Attributes["resolved"] = adast.BoolValue(ok)
	if !ok {
		return
	}

	// Parse the included buffer with the same context so attributes and
	// conditionals flow through, attaching its blocks under the macro node.
	// Spans of included content refer to the included buffer.
	sub := &parser{
		content: content,
		tokens:  Tokenize(content),
		ctx:     p.ctx,
		diags:   p.diags,
	}
	sub.parseBlocks(node, len(sub.tokens), 0)
	p.ctx.LeaveInclude()
}

// parseConditional evaluates ifdef/ifndef/ifeval/endif directives against
// the current attribute table. Content in a false branch is consumed but
// produces no nodes and no diagnostics. The single-line form
// ifdef::flag[line] emits its bracket content as a paragraph when the
// condition holds, without opening a region.
func (p *parser) parseConditional(parent *adast.Node, end int) {
	tok := p.cur()
	p.pos++

	target, _, span := p.parseMacroTail(end, tok.Span)
	span = tok.Span.Union(span)

	body, bodySpan := conditionBody(p, span)
	p.skipLineEnd(end)

	switch tok.Kind {
	case adast.TokEndifMacro:
		if !p.ctx.PopConditional() {
			p.report(diag.New(diag.UnexpectedToken, span,
				"endif::[] without a matching ifdef, ifndef, or ifeval"))
		}
		return
	case adast.TokIfevalMacro:
		p.ctx.PushConditional(condIfeval, "", p.evalCondition(body, span), span)
		return
	}

	condition := p.ctx.IsAttributeDefined(target)
	kind := condIfdef
	if tok.Kind == adast.TokIfndefMacro {
		condition = !condition
		kind = condIfndef
	}

	if body != "" {
		if condition && p.ctx.Emitting() {
			para := adast.NewNode(adast.NodeParagraph)
			para.Span = bodySpan
			para.Block = &adast.BlockAttrs{}
			adast.AppendChild(para, adast.NewText(body, bodySpan))
			adast.AppendChild(parent, para)
		}
		return
	}

	p.ctx.PushConditional(kind, target, condition, span)
}

// conditionBody extracts the raw text between the brackets of a directive
// line whose total span is span, with the span of that text.
func conditionBody(p *parser, span adast.Span) (string, adast.Span) {
	raw := string(span.Text(p.content))
	open := strings.IndexByte(raw, '[')
	closeIdx := strings.LastIndexByte(raw, ']')
	if open < 0 || closeIdx <= open {
		return "", adast.Span{Start: span.End, End: span.End}
	}
	bodySpan := adast.Span{Start: span.Start + open + 1, End: span.Start + closeIdx}
	return raw[open+1 : closeIdx], bodySpan
}

// evalCondition evaluates an ifeval expression: attribute references are
// substituted first, then a single comparison is applied.
func (p *parser) evalCondition(expr string, span adast.Span) bool {
	expr = strings.TrimSpace(p.substituteRefs(expr, span))

	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		left, right, found := strings.Cut(expr, op)
		if !found {
			continue
		}
		return compare(strings.TrimSpace(left), strings.TrimSpace(right), op)
	}

	p.report(diag.New(diag.UnexpectedToken, span,
		fmt.Sprintf("cannot evaluate ifeval expression %q", expr)))
	return false
}

func compare(left, right, op string) bool {
	ln, lerr := strconv.Atoi(left)
	rn, rerr := strconv.Atoi(right)
	if lerr == nil && rerr == nil {
		switch op {
		case "==":
			return ln == rn
		case "!=":
			return ln != rn
		case "<":
			return ln < rn
		case ">":
			return ln > rn
		case "<=":
			return ln <= rn
		case ">=":
			return ln >= rn
		}
	}

	left = strings.Trim(left, `"`)
	right = strings.Trim(right, `"`)
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case "<":
		return left < right
	case ">":
		return left > right
	case "<=":
		return left <= right
	case ">=":
		return left >= right
	}
	return false
}

// substituteRefs replaces {name} references in raw text using the context.
func (p *parser) substituteRefs(text string, span adast.Span) string {
	if !strings.Contains(text, "{") {
		return text
	}

	var out strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			out.WriteString(text)
			return out.String()
		}
		closeIdx := strings.IndexByte(text[open:], '}')
		if closeIdx < 0 {
			out.WriteString(text)
			return out.String()
		}
		closeIdx += open

		out.WriteString(text[:open])
		name := text[open+1 : closeIdx]
		if isValidAttrName(normalizeAttrName(name)) {
			resolved, _ := p.ctx.ResolveAttribute(name, span, p.diags)
			out.WriteString(resolved)
		} else {
			out.WriteString(text[open : closeIdx+1])
		}
		text = text[closeIdx+1:]
	}
}
