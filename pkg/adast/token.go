package adast

// TokenKind classifies the type of a token in the AsciiDoc source.
type TokenKind uint16

// Token kinds for AsciiDoc lexical elements. Inter-token spaces and tabs
// are elided; newlines and blank-line runs are structural and preserved.
const (
	TokText      TokenKind = iota
	TokNewline             // single newline (LF or CRLF)
	TokBlankLine           // run of two or more newlines

	// Line-start structural markers.
	TokHeadingMarker // '=' through '======' followed by a space
	TokListBullet    // '*' or '-' run followed by a space
	TokListNumber    // '.', '1.', 'a.', 'I.' style ordered marker
	TokAttrEntry     // ':name:' or ':name!:' at line start
	TokCommentLine   // '//' line comment (rest of line)
	TokBlockMacro    // 'name::' at line start (generic block macro)
	TokIncludeMacro  // 'include::'
	TokIfdefMacro    // 'ifdef::'
	TokIfndefMacro   // 'ifndef::'
	TokIfevalMacro   // 'ifeval::'
	TokEndifMacro    // 'endif::'

	// Delimited-block marker lines. The literal run length is Span.Len().
	TokListingDelim     // '----'
	TokSidebarDelim     // '****'
	TokExampleDelim     // '===='
	TokQuoteDelim       // '____'
	TokLiteralDelim     // '....'
	TokPassthroughDelim // '++++'
	TokOpenDelim        // '--' (exactly two)
	TokCommentDelim     // '////'
	TokTableDelim       // '|==='
	TokNestedTableDelim // '!==='

	// Inline elements.
	TokBoldDelim    // '*' run in inline position
	TokItalicDelim  // '_' run
	TokMonoDelim    // '`' run
	TokAttrRefOpen  // '{'
	TokAttrRefClose // '}'
	TokBracketOpen  // '['
	TokBracketClose // ']'
	TokPipe         // '|' (table cell separator)
	TokBang         // '!' (nested table cell separator)
	TokURL          // bare http:// or https:// URL

	// TokError marks an unrecognized or invalid byte sequence. It never
	// halts tokenization; the parser decides how to recover.
	TokError
)

// Token represents a classified span of bytes in the AsciiDoc source.
type Token struct {
	Kind TokenKind
	Span Span
}

// Text returns the source text of this token.
func (t Token) Text(content []byte) []byte {
	return t.Span.Text(content)
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.Span.Len()
}

// IsDelim returns true for delimited-block marker line tokens.
func (t Token) IsDelim() bool {
	switch t.Kind {
	case TokListingDelim, TokSidebarDelim, TokExampleDelim, TokQuoteDelim,
		TokLiteralDelim, TokPassthroughDelim, TokOpenDelim, TokCommentDelim,
		TokTableDelim, TokNestedTableDelim:
		return true
	default:
		return false
	}
}

// IsConditional returns true for conditional-directive macro tokens.
func (t Token) IsConditional() bool {
	switch t.Kind {
	case TokIfdefMacro, TokIfndefMacro, TokIfevalMacro, TokEndifMacro:
		return true
	default:
		return false
	}
}

// kindNames maps token kinds to human-readable descriptions used in
// diagnostics.
var kindNames = map[TokenKind]string{
	TokText:             "text",
	TokNewline:          "newline",
	TokBlankLine:        "blank line",
	TokHeadingMarker:    "heading marker",
	TokListBullet:       "list bullet",
	TokListNumber:       "ordered list marker",
	TokAttrEntry:        "attribute entry",
	TokCommentLine:      "comment",
	TokBlockMacro:       "block macro",
	TokIncludeMacro:     "include directive",
	TokIfdefMacro:       "ifdef directive",
	TokIfndefMacro:      "ifndef directive",
	TokIfevalMacro:      "ifeval directive",
	TokEndifMacro:       "endif directive",
	TokListingDelim:     "listing delimiter",
	TokSidebarDelim:     "sidebar delimiter",
	TokExampleDelim:     "example delimiter",
	TokQuoteDelim:       "quote delimiter",
	TokLiteralDelim:     "literal delimiter",
	TokPassthroughDelim: "passthrough delimiter",
	TokOpenDelim:        "open block delimiter",
	TokCommentDelim:     "comment block delimiter",
	TokTableDelim:       "table delimiter",
	TokNestedTableDelim: "nested table delimiter",
	TokBoldDelim:        "bold delimiter",
	TokItalicDelim:      "italic delimiter",
	TokMonoDelim:        "monospace delimiter",
	TokAttrRefOpen:      "attribute reference open",
	TokAttrRefClose:     "attribute reference close",
	TokBracketOpen:      "open bracket",
	TokBracketClose:     "close bracket",
	TokPipe:             "cell separator",
	TokBang:             "nested cell separator",
	TokURL:              "URL",
	TokError:            "invalid character sequence",
}

// String returns a human-readable description of the token kind.
func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown token"
}
