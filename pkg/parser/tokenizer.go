package parser

import (
	"bytes"
	"unicode/utf8"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// tokenizer performs a single-pass tokenization of AsciiDoc content.
// It is stateless with respect to the grammar: block-marker tokens are
// recognized purely by line position and shape, and the parser decides what
// they mean from its own context.
type tokenizer struct {
	content []byte
	tokens  []adast.Token
	pos     int
}

// Tokenize performs a single-pass, longest-match tokenization of content.
// It is total: unrecognized byte sequences become TokError tokens rather
// than failures. Spaces and tabs between tokens are elided; newlines and
// blank-line runs are preserved as structural tokens.
func Tokenize(content []byte) []adast.Token {
	if len(content) == 0 {
		return nil
	}

	const initialCapacityDivisor = 6 // reasonable initial capacity estimate
	t := &tokenizer{
		content: content,
		tokens:  make([]adast.Token, 0, len(content)/initialCapacityDivisor+1),
	}

	for t.pos < len(t.content) {
		t.tokenizeLine()
	}

	return t.tokens
}

// tokenizeLine tokenizes one line, trying line-start constructs first.
func (t *tokenizer) tokenizeLine() {
	t.skipSpaces()
	if t.pos >= len(t.content) {
		return
	}

	switch t.content[t.pos] {
	case '\n', '\r':
		t.consumeNewlines()
		return
	case '=':
		if t.tryHeadingMarker() {
			t.tokenizeInline()
			return
		}
		if t.tryDelimiterLine('=', 4, adast.TokExampleDelim) {
			return
		}
	case '-':
		if t.tryDelimiterLine('-', 4, adast.TokListingDelim) {
			return
		}
		if t.tryOpenBlockDelim() {
			return
		}
		if t.tryListBullet() {
			t.tokenizeInline()
			return
		}
	case '*':
		if t.tryDelimiterLine('*', 4, adast.TokSidebarDelim) {
			return
		}
		if t.tryListBullet() {
			t.tokenizeInline()
			return
		}
	case '_':
		if t.tryDelimiterLine('_', 4, adast.TokQuoteDelim) {
			return
		}
	case '+':
		if t.tryDelimiterLine('+', 4, adast.TokPassthroughDelim) {
			return
		}
	case '.':
		if t.tryDelimiterLine('.', 4, adast.TokLiteralDelim) {
			return
		}
		if t.tryListNumber() {
			t.tokenizeInline()
			return
		}
	case '/':
		if t.tryDelimiterLine('/', 4, adast.TokCommentDelim) {
			return
		}
		if t.tryCommentLine() {
			return
		}
	case ':':
		if t.tryAttrEntry() {
			t.tokenizeInline()
			return
		}
	case '|':
		if t.tryTableDelim('|', adast.TokTableDelim) {
			return
		}
	case '!':
		if t.tryTableDelim('!', adast.TokNestedTableDelim) {
			return
		}
	}

	// Ordered list markers like "1." or "a." at line start.
	if isAlphaNum(t.content[t.pos]) && t.tryListNumber() {
		t.tokenizeInline()
		return
	}

	// Block macros and directives: name:: at line start.
	if t.tryBlockMacro() {
		t.tokenizeInline()
		return
	}

	t.tokenizeInline()
}

// skipSpaces elides spaces and tabs between tokens.
func (t *tokenizer) skipSpaces() {
	for t.pos < len(t.content) && (t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.pos++
	}
}

// consumeNewlines consumes one newline, or a run of two or more as a single
// blank-line token. Interior horizontal whitespace does not break a run.
func (t *tokenizer) consumeNewlines() {
	start := t.pos
	count := 0

	for t.pos < len(t.content) {
		switch t.content[t.pos] {
		case '\r':
			t.pos++
			if t.pos < len(t.content) && t.content[t.pos] == '\n' {
				t.pos++
			}
			count++
		case '\n':
			t.pos++
			count++
		case ' ', '\t':
			// Whitespace-only lines still separate blocks.
			ahead := t.pos
			for ahead < len(t.content) && (t.content[ahead] == ' ' || t.content[ahead] == '\t') {
				ahead++
			}
			if ahead < len(t.content) && (t.content[ahead] == '\n' || t.content[ahead] == '\r') {
				t.pos = ahead
				continue
			}
			t.finishNewlines(start, count)
			return
		default:
			t.finishNewlines(start, count)
			return
		}
	}

	t.finishNewlines(start, count)
}

func (t *tokenizer) finishNewlines(start, count int) {
	if count >= 2 {
		t.emit(adast.TokBlankLine, start, t.pos)
	} else if count == 1 {
		t.emit(adast.TokNewline, start, t.pos)
	}
}

// tryHeadingMarker attempts to parse a heading marker (= through ======)
// followed by a space. A '=' run alone on its line is a delimiter, not a
// heading.
func (t *tokenizer) tryHeadingMarker() bool {
	start := t.pos
	count := 0

	for t.pos < len(t.content) && t.content[t.pos] == '=' && count < 7 {
		t.pos++
		count++
	}

	if count >= 1 && count <= 6 && t.pos < len(t.content) &&
		(t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.emit(adast.TokHeadingMarker, start, t.pos)
		t.skipSpaces()
		return true
	}

	t.pos = start
	return false
}

// tryDelimiterLine attempts to parse a run of marker characters, at least
// minLen long, alone on its line.
func (t *tokenizer) tryDelimiterLine(marker byte, minLen int, kind adast.TokenKind) bool {
	start := t.pos
	count := 0

	for t.pos < len(t.content) && t.content[t.pos] == marker {
		t.pos++
		count++
	}

	if count >= minLen && t.restOfLineBlank() {
		t.emit(kind, start, t.pos)
		return true
	}

	t.pos = start
	return false
}

// tryOpenBlockDelim recognizes the open block delimiter: exactly two
// hyphens alone on a line.
func (t *tokenizer) tryOpenBlockDelim() bool {
	start := t.pos
	count := 0

	for t.pos < len(t.content) && t.content[t.pos] == '-' {
		t.pos++
		count++
	}

	if count == 2 && t.restOfLineBlank() {
		t.emit(adast.TokOpenDelim, start, t.pos)
		return true
	}

	t.pos = start
	return false
}

// tryTableDelim recognizes '|===' and '!===' table delimiter lines.
func (t *tokenizer) tryTableDelim(lead byte, kind adast.TokenKind) bool {
	start := t.pos
	if t.content[t.pos] != lead {
		return false
	}
	t.pos++

	count := 0
	for t.pos < len(t.content) && t.content[t.pos] == '=' {
		t.pos++
		count++
	}

	if count >= 3 && t.restOfLineBlank() {
		t.emit(kind, start, t.pos)
		return true
	}

	t.pos = start
	return false
}

// restOfLineBlank reports whether only spaces and tabs remain before the
// next newline or end of input. It does not consume anything.
func (t *tokenizer) restOfLineBlank() bool {
	pos := t.pos
	for pos < len(t.content) && t.content[pos] != '\n' && t.content[pos] != '\r' {
		if t.content[pos] != ' ' && t.content[pos] != '\t' {
			return false
		}
		pos++
	}
	return true
}

// tryListBullet attempts to parse an unordered list marker: a run of '*' or
// '-' followed by a space. Deeper runs nest list levels.
func (t *tokenizer) tryListBullet() bool {
	start := t.pos
	marker := t.content[t.pos]

	for t.pos < len(t.content) && t.content[t.pos] == marker {
		t.pos++
	}

	if t.pos < len(t.content) && (t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.emit(adast.TokListBullet, start, t.pos)
		t.skipSpaces()
		return true
	}

	t.pos = start
	return false
}

// tryListNumber attempts an ordered list marker: a '.' run, or digits or a
// single letter or roman numeral run followed by '.', then a space.
func (t *tokenizer) tryListNumber() bool {
	start := t.pos

	if t.content[t.pos] == '.' {
		for t.pos < len(t.content) && t.content[t.pos] == '.' {
			t.pos++
		}
	} else {
		for t.pos < len(t.content) && isAlphaNum(t.content[t.pos]) {
			t.pos++
		}
		if t.pos >= len(t.content) || t.content[t.pos] != '.' {
			t.pos = start
			return false
		}
		t.pos++
	}

	if t.pos < len(t.content) && (t.content[t.pos] == ' ' || t.content[t.pos] == '\t') {
		t.emit(adast.TokListNumber, start, t.pos)
		t.skipSpaces()
		return true
	}

	t.pos = start
	return false
}

// tryCommentLine recognizes a '//' line comment covering the rest of the
// line. Three or more slashes that are not a comment block delimiter also
// count.
func (t *tokenizer) tryCommentLine() bool {
	if t.pos+1 >= len(t.content) || t.content[t.pos+1] != '/' {
		return false
	}

	start := t.pos
	for t.pos < len(t.content) && t.content[t.pos] != '\n' && t.content[t.pos] != '\r' {
		t.pos++
	}

	t.emit(adast.TokCommentLine, start, t.pos)
	t.consumeNewlines()
	return true
}

// tryAttrEntry recognizes ':name:' and ':name!:' attribute entries at line
// start. The value, if any, follows as ordinary inline tokens.
func (t *tokenizer) tryAttrEntry() bool {
	start := t.pos
	t.pos++ // leading ':'

	nameStart := t.pos
	for t.pos < len(t.content) && isAttrNameByte(t.content[t.pos]) {
		t.pos++
	}

	if t.pos == nameStart {
		t.pos = start
		return false
	}

	// Optional '!' marks an unset entry.
	if t.pos < len(t.content) && t.content[t.pos] == '!' {
		t.pos++
	}

	if t.pos >= len(t.content) || t.content[t.pos] != ':' {
		t.pos = start
		return false
	}
	t.pos++

	t.emit(adast.TokAttrEntry, start, t.pos)
	t.skipSpaces()
	return true
}

// directiveKinds maps the recognized macro keywords to token kinds.
var directiveKinds = map[string]adast.TokenKind{
	"include": adast.TokIncludeMacro,
	"ifdef":   adast.TokIfdefMacro,
	"ifndef":  adast.TokIfndefMacro,
	"ifeval":  adast.TokIfevalMacro,
	"endif":   adast.TokEndifMacro,
}

// tryBlockMacro recognizes 'name::' at line start, classifying the known
// directive keywords and falling back to a generic block macro token.
func (t *tokenizer) tryBlockMacro() bool {
	start := t.pos

	for t.pos < len(t.content) && isMacroNameByte(t.content[t.pos]) {
		t.pos++
	}

	if t.pos == start || t.pos+1 >= len(t.content) ||
		t.content[t.pos] != ':' || t.content[t.pos+1] != ':' {
		t.pos = start
		return false
	}

	name := string(t.content[start:t.pos])
	t.pos += 2

	kind, ok := directiveKinds[name]
	if !ok {
		kind = adast.TokBlockMacro
	}
	t.emit(kind, start, t.pos)
	return true
}

// tokenizeInline tokenizes inline content until end of line.
func (t *tokenizer) tokenizeInline() {
	for t.pos < len(t.content) {
		ch := t.content[t.pos]

		switch {
		case ch == '\n' || ch == '\r':
			t.consumeNewlines()
			return
		case ch == ' ' || ch == '\t':
			t.skipSpaces()
		case ch == '*':
			t.consumeRun('*', adast.TokBoldDelim)
		case ch == '_':
			t.consumeRun('_', adast.TokItalicDelim)
		case ch == '`':
			t.consumeRun('`', adast.TokMonoDelim)
		case ch == '{':
			t.emitSingle(adast.TokAttrRefOpen)
		case ch == '}':
			t.emitSingle(adast.TokAttrRefClose)
		case ch == '[':
			t.emitSingle(adast.TokBracketOpen)
		case ch == ']':
			t.emitSingle(adast.TokBracketClose)
		case ch == '|':
			t.emitSingle(adast.TokPipe)
		case ch == '!':
			t.emitSingle(adast.TokBang)
		case ch == 'h' && t.tryURL():
			// token already emitted
		default:
			t.consumeText()
		}
	}
}

// tryURL recognizes bare http:// and https:// URLs.
func (t *tokenizer) tryURL() bool {
	rest := t.content[t.pos:]
	var schemeLen int
	switch {
	case bytes.HasPrefix(rest, []byte("https://")):
		schemeLen = len("https://")
	case bytes.HasPrefix(rest, []byte("http://")):
		schemeLen = len("http://")
	default:
		return false
	}

	start := t.pos
	t.pos += schemeLen
	for t.pos < len(t.content) && isURLByte(t.content[t.pos]) {
		t.pos++
	}

	// A bare scheme with no host is just text.
	if t.pos == start+schemeLen {
		t.pos = start
		return false
	}

	t.emit(adast.TokURL, start, t.pos)
	return true
}

// consumeText consumes a run of ordinary content bytes. Invalid UTF-8 and
// stray control bytes become explicit error tokens so the parser can decide
// how to recover.
func (t *tokenizer) consumeText() {
	start := t.pos

	for t.pos < len(t.content) {
		ch := t.content[t.pos]
		if isInlineSpecial(ch) || ch == '\n' || ch == '\r' || ch == ' ' || ch == '\t' {
			break
		}
		if ch < 0x20 || ch == 0x7f {
			break
		}
		if ch < utf8.RuneSelf {
			t.pos++
			continue
		}
		r, size := utf8.DecodeRune(t.content[t.pos:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		t.pos += size
	}

	if t.pos > start {
		t.emit(adast.TokText, start, t.pos)
		return
	}

	// Invalid byte: emit an error token covering the full bad run.
	for t.pos < len(t.content) {
		ch := t.content[t.pos]
		if ch >= 0x20 && ch != 0x7f {
			r, size := utf8.DecodeRune(t.content[t.pos:])
			if r != utf8.RuneError || size != 1 {
				break
			}
		}
		if ch == '\n' || ch == '\r' {
			break
		}
		t.pos++
	}
	t.emit(adast.TokError, start, t.pos)
}

// consumeRun consumes a run of a formatting delimiter character.
func (t *tokenizer) consumeRun(marker byte, kind adast.TokenKind) {
	start := t.pos
	for t.pos < len(t.content) && t.content[t.pos] == marker {
		t.pos++
	}
	t.emit(kind, start, t.pos)
}

func (t *tokenizer) emit(kind adast.TokenKind, start, end int) {
	t.tokens = append(t.tokens, adast.Token{
		Kind: kind,
		Span: adast.Span{Start: start, End: end},
	})
}

func (t *tokenizer) emitSingle(kind adast.TokenKind) {
	t.emit(kind, t.pos, t.pos+1)
	t.pos++
}

func isAlphaNum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAttrNameByte(b byte) bool {
	return isAlphaNum(b) || b == '-' || b == '_'
}

func isMacroNameByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '_'
}

func isURLByte(b byte) bool {
	if isAlphaNum(b) {
		return true
	}
	switch b {
	case '.', '/', '-', '_', '~', '%', '&', '=', '?', '#', '+', ':', '@':
		return true
	default:
		return false
	}
}

func isInlineSpecial(b byte) bool {
	switch b {
	case '*', '_', '`', '{', '}', '[', ']', '|', '!':
		return true
	default:
		return false
	}
}
