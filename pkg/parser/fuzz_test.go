package parser

import (
	"testing"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// FuzzTokenize fuzzes the tokenizer with random input.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"= Heading",
		"== Heading 2\n\nbody",
		"* list item",
		"1. ordered item",
		". dot item",
		":attr: value",
		":attr!:",
		"{ref} and {other}",
		"----\ncode\n----",
		"****\nsidebar\n****",
		"--\nopen\n--",
		"|===\n| a | b\n|===",
		"!===\n! x\n!===",
		"*bold* _italic_ `mono`",
		"include::file.adoc[]",
		"ifdef::flag[]\ntext\nendif::[]",
		"ifeval::[1 > 0]",
		"image::logo.png[Logo]",
		"https://example.com[text]",
		"line1\nline2",
		"line1\r\nline2",
		"a +\nb",
		"= Title\n\nBody with *bold* and {attr}.\n\n* item\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Tokenize must never panic and must be total.
		tokens := Tokenize(data)

		prev := 0
		for i, tok := range tokens {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start || tok.Span.End > len(data) {
				t.Errorf("token[%d] span %+v out of order or out of bounds", i, tok.Span)
			}
			prev = tok.Span.End
		}
	})
}

// FuzzParse verifies the parser terminates and produces a well-formed tree
// for arbitrary input. Includes are disabled so no I/O happens.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"= Title\n\nHello *world*.\n",
		"----\nunclosed",
		"====\n****\nnested unclosed",
		":a: {b}\n:b: {a}\n\n{a}\n",
		":a: {b}\n:b: {a}\n",
		"====\n____\n====\n____\n",
		"ifdef::x[]\nno endif",
		"endif::[]",
		"|===\n| a\na| *b*\n|===\n",
		"* one\n** two\n* three\n",
		"include::gone.adoc[]\n",
		"{undefined}\n",
		"\x01\x02 garbage",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		doc, diags := ParseWithOptions(data, Options{})

		if doc == nil {
			t.Fatal("expected a non-nil document for any input")
		}
		if doc.Kind != adast.NodeDocument {
			t.Errorf("root kind = %v, want NodeDocument", doc.Kind)
		}

		// The tree must be structurally sound: every child points back at
		// its parent and spans stay within the input.
		err := adast.Walk(doc, func(n *adast.Node) error {
			for child := n.FirstChild; child != nil; child = child.Next {
				if child.Parent != n {
					t.Errorf("node %v has a child with a wrong parent link", n.Kind)
				}
			}
			return nil
		})
		if err != nil {
			t.Errorf("walk error: %v", err)
		}

		for _, d := range diags {
			if d.Span.Start > d.Span.End {
				t.Errorf("diagnostic %q has inverted span %+v", d.Kind, d.Span)
			}
		}
	})
}

// FuzzParseDeterministic verifies that parsing twice gives the same result.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"= Title",
		"*bold*",
		"* list",
		":a: 1\n\n{a}",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		doc1, diags1 := ParseWithOptions(data, Options{})
		doc2, diags2 := ParseWithOptions(data, Options{})

		if len(diags1) != len(diags2) {
			t.Errorf("diagnostic count mismatch: %d vs %d", len(diags1), len(diags2))
		}

		count1 := len(adast.FindAll(doc1, func(*adast.Node) bool { return true }))
		count2 := len(adast.FindAll(doc2, func(*adast.Node) bool { return true }))
		if count1 != count2 {
			t.Errorf("node count mismatch: %d vs %d", count1, count2)
		}
	})
}
