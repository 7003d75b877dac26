package parser

import (
	"fmt"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// parseTable parses a table delimited by '|===' lines, or by '!===' lines
// for a table nested inside an AsciiDoc cell. Inside a nested table the
// cell separator is '!' instead of '|'. A blank line after the first row
// marks that row as the header.
func (p *parser) parseTable(parent *adast.Node, end int, nested bool, pending adast.Attributes) {
	open := p.cur()
	sep := adast.TokPipe
	if nested {
		sep = adast.TokBang
	}
	p.pos++
	p.skipLineEnd(end)

	table := adast.NewNode(adast.NodeTable)
	table.Span = open.Span
	table.Block = &adast.BlockAttrs{
		Table:      &adast.TableAttrs{Nested: nested},
		Attributes: pending,
	}
	adast.AppendChild(parent, table)

	closeAt := -1
	for i := p.pos; i < end; i++ {
		if p.tokens[i].Kind == open.Kind && p.tokens[i].Len() == open.Len() {
			closeAt = i
			break
		}
	}
	bodyEnd := end
	if closeAt >= 0 {
		bodyEnd = closeAt
	}

	rows := 0
	for p.pos < bodyEnd {
		tok := p.cur()
		switch {
		case tok.Kind == adast.TokNewline:
			p.pos++

		case tok.Kind == adast.TokBlankLine:
			if rows == 1 {
				table.Block.Table.HasHeader = true
			}
			p.pos++

		case tok.Kind == adast.TokCommentLine:
			p.pos++
			p.skipLineEnd(bodyEnd)

		case tok.Kind == sep || p.isAsciiDocCellMarker(p.pos, bodyEnd, sep):
			p.parseTableRow(table, bodyEnd, sep)
			rows++

		default:
			p.report(diag.New(diag.UnexpectedToken, tok.Span,
				fmt.Sprintf("expected %q to start a table cell", string(sepByte(sep)))))
			p.pos = p.lineEndIndex(bodyEnd)
			p.skipLineEnd(bodyEnd)
		}
	}

	if closeAt < 0 {
		p.report(diag.New(diag.UnclosedDelimiter, open.Span,
			fmt.Sprintf("table is never closed; expected %q", p.text(open))).
			WithLabel("opened here", open.Span))
		return
	}

	table.Span = table.Span.Union(p.tokens[closeAt].Span)
	p.pos = closeAt + 1
	p.skipLineEnd(end)
}

// parseTableRow parses one row: cells led by separator tokens, ending at
// the end of the line. An 'a' glued to the separator marks an AsciiDoc
// cell whose content is parsed as blocks and may span lines; such a cell
// always ends its row.
func (p *parser) parseTableRow(table *adast.Node, bodyEnd int, sep adast.TokenKind) {
	row := adast.NewNode(adast.NodeTableRow)
	row.Block = &adast.BlockAttrs{}
	row.Span = p.cur().Span
	adast.AppendChild(table, row)

	for p.pos < bodyEnd {
		tok := p.cur()

		asciidoc := false
		if p.isAsciiDocCellMarker(p.pos, bodyEnd, sep) {
			asciidoc = true
			p.pos++
			tok = p.cur()
		}
		if tok.Kind != sep {
			break
		}
		p.pos++

		cell := adast.NewNode(adast.NodeTableCell)
		cell.Span = tok.Span
		cell.Block = &adast.BlockAttrs{
			Table: &adast.TableAttrs{AsciiDocCell: asciidoc},
		}
		adast.AppendChild(row, cell)

		cellEnd := p.cellEnd(bodyEnd, sep, asciidoc)
		if asciidoc && !p.blockNestingExceeded(tok.Span) {
			p.cellDepth++
			p.parseBlocks(cell, cellEnd, 0)
			p.cellDepth--
		} else {
			span := p.parseInlines(cell, cellEnd)
			cell.Span = cell.Span.Union(span)
		}
		p.pos = cellEnd
		row.Span = row.Span.Union(cell.Span)

		if asciidoc {
			// The next separator at a line start belongs to a new row.
			break
		}
		if p.pos < bodyEnd {
			kind := p.cur().Kind
			if kind == adast.TokNewline || kind == adast.TokBlankLine {
				break
			}
		}
	}

	table.Span = table.Span.Union(row.Span)
}

// cellEnd finds the token index ending the current cell. Plain cells end
// at the next separator or end of line; AsciiDoc cells extend to the next
// separator that starts a line.
func (p *parser) cellEnd(bodyEnd int, sep adast.TokenKind, spanLines bool) int {
	for i := p.pos; i < bodyEnd; i++ {
		tok := p.tokens[i]
		atSep := tok.Kind == sep || p.isAsciiDocCellMarker(i, bodyEnd, sep)

		if spanLines {
			if atSep && p.tokenAtLineStart(i) {
				return i
			}
			continue
		}

		if atSep || tok.Kind == adast.TokNewline || tok.Kind == adast.TokBlankLine {
			return i
		}
	}
	return bodyEnd
}

// isAsciiDocCellMarker reports whether the token at index i is an 'a'
// glued to the cell separator, the prefix of an AsciiDoc cell.
func (p *parser) isAsciiDocCellMarker(i, bodyEnd int, sep adast.TokenKind) bool {
	if i+1 >= bodyEnd {
		return false
	}
	tok := p.tokens[i]
	next := p.tokens[i+1]
	return tok.Kind == adast.TokText && p.text(tok) == "a" &&
		next.Kind == sep && next.Span.Start == tok.Span.End
}

func (p *parser) tokenAtLineStart(i int) bool {
	if i == 0 {
		return true
	}
	switch p.tokens[i-1].Kind {
	case adast.TokNewline, adast.TokBlankLine:
		return true
	default:
		return false
	}
}

func sepByte(sep adast.TokenKind) byte {
	if sep == adast.TokBang {
		return '!'
	}
	return '|'
}
