package parser

import (
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// parseList parses a run of list items starting at the marker under the
// cursor. The numbering style is inferred from the first marker unless the
// preceding block attribute list names one. A deeper marker opens a nested
// list under the last item; a shallower or differently styled marker at the
// same depth ends this list and is left for the caller.
func (p *parser) parseList(parent *adast.Node, end int, pending adast.Attributes) {
	first := p.cur()
	style, depth := listMarkerStyle(p.text(first))
	if s, ok := namedListStyle(pending); ok {
		style = s
	}

	list := adast.NewNode(adast.NodeList)
	list.Span = first.Span
	list.Block = &adast.BlockAttrs{
		List:       &adast.ListAttrs{Style: style, Marker: p.text(first), Depth: depth},
		Attributes: pending,
	}
	adast.AppendChild(parent, list)

	for p.pos < end {
		tok := p.cur()
		switch tok.Kind {
		case adast.TokNewline:
			p.pos++
			continue
		case adast.TokListBullet, adast.TokListNumber:
		default:
			return
		}

		marker := p.text(tok)
		mStyle, mDepth := listMarkerStyle(marker)

		switch {
		case mDepth < depth:
			return

		case mDepth > depth:
			item := list.LastChild
			if item == nil {
				item = newListItem(tok, mStyle, marker, mDepth)
				adast.AppendChild(list, item)
			}
			p.parseList(item, end, nil)
			list.Span = list.Span.Union(item.Span)

		case sameListClass(mStyle, style):
			item := newListItem(tok, mStyle, marker, mDepth)
			p.pos++
			span := p.parseInlines(item, p.listItemEnd(end))
			item.Span = item.Span.Union(span)
			adast.AppendChild(list, item)
			list.Span = list.Span.Union(item.Span)

		default:
			// Same depth, different marker class: a new list begins.
			return
		}
	}
}

func newListItem(tok adast.Token, style adast.ListStyle, marker string, depth int) *adast.Node {
	item := adast.NewNode(adast.NodeListItem)
	item.Span = tok.Span
	item.Block = &adast.BlockAttrs{
		List: &adast.ListAttrs{Style: style, Marker: marker, Depth: depth},
	}
	return item
}

// listItemEnd finds the token index ending the current item: the next list
// marker, blank line, delimiter, or other block boundary. Plain wrapped
// lines continue the item text.
func (p *parser) listItemEnd(end int) int {
	i := p.pos
	for i < end {
		tok := p.tokens[i]
		if tok.IsDelim() || isBlockBoundary(tok.Kind) {
			return i
		}
		i++
	}
	return end
}

// sameListClass reports whether two styles belong to the same list family,
// so "2." continues a list opened by "1." even though both infer arabic.
func sameListClass(a, b adast.ListStyle) bool {
	return (a == adast.ListUnordered) == (b == adast.ListUnordered)
}

// listMarkerStyle infers the numbering style and nesting depth from a raw
// marker. Bullet and dot runs encode depth in their length; explicit
// numbered markers are always depth one. A single letter marker infers the
// alphabetic style; roman numerals need at least two letters so "i." stays
// alphabetic when it opens a list.
func listMarkerStyle(marker string) (adast.ListStyle, int) {
	if marker == "" {
		return adast.ListUnordered, 1
	}
	if marker[0] == '*' || marker[0] == '-' {
		return adast.ListUnordered, len(marker)
	}
	if strings.Trim(marker, ".") == "" {
		return adast.ListArabic, len(marker)
	}

	trimmed := strings.TrimSuffix(marker, ".")
	switch {
	case isDigits(trimmed):
		return adast.ListArabic, 1
	case len(trimmed) > 1 && isRomanRun(trimmed, false):
		return adast.ListLowerRoman, 1
	case len(trimmed) > 1 && isRomanRun(trimmed, true):
		return adast.ListUpperRoman, 1
	case len(trimmed) == 1 && trimmed[0] >= 'a' && trimmed[0] <= 'z':
		return adast.ListLowerAlpha, 1
	case len(trimmed) == 1 && trimmed[0] >= 'A' && trimmed[0] <= 'Z':
		return adast.ListUpperAlpha, 1
	default:
		return adast.ListArabic, 1
	}
}

// namedListStyle maps a style name from a block attribute list to a
// numbering style.
func namedListStyle(pending adast.Attributes) (adast.ListStyle, bool) {
	if pending == nil {
		return 0, false
	}
	value, ok := pending["style"]
	if !ok {
		return 0, false
	}
	switch value.String() {
	case "arabic":
		return adast.ListArabic, true
	case "loweralpha":
		return adast.ListLowerAlpha, true
	case "upperalpha":
		return adast.ListUpperAlpha, true
	case "lowerroman":
		return adast.ListLowerRoman, true
	case "upperroman":
		return adast.ListUpperRoman, true
	}
	return 0, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isRomanRun(s string, upper bool) bool {
	letters := "ivxlcdm"
	if upper {
		letters = "IVXLCDM"
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(letters, rune(s[i])) {
			return false
		}
	}
	return len(s) > 0
}
