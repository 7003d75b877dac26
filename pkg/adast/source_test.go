package adast

import "testing"

func TestSpanBasics(t *testing.T) {
	s := NewSpan(5, 2)
	if s != (Span{Start: 2, End: 5}) {
		t.Errorf("NewSpan should normalize inverted bounds, got %+v", s)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains(2) || s.Contains(5) {
		t.Error("Contains should be inclusive at start, exclusive at end")
	}
	if !s.ContainsSpan(Span{Start: 3, End: 4}) {
		t.Error("ContainsSpan failed for an interior span")
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{Start: 2, End: 5}
	b := Span{Start: 4, End: 9}

	if got := a.Union(b); got != (Span{Start: 2, End: 9}) {
		t.Errorf("Union = %+v, want [2,9)", got)
	}

	// The zero span is treated as absent.
	if got := (Span{}).Union(a); got != a {
		t.Errorf("zero.Union(a) = %+v, want %+v", got, a)
	}
	if got := a.Union(Span{}); got != a {
		t.Errorf("a.Union(zero) = %+v, want %+v", got, a)
	}
}

func TestSpanText(t *testing.T) {
	content := []byte("hello world")

	if got := string((Span{Start: 6, End: 11}).Text(content)); got != "world" {
		t.Errorf("Text = %q, want %q", got, "world")
	}
	if (Span{Start: 6, End: 20}).Text(content) != nil {
		t.Error("out-of-range span should return nil")
	}
	if (Span{Start: -1, End: 3}).Text(content) != nil {
		t.Error("negative span should return nil")
	}
}

func TestBuildLines(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantLines int
	}{
		{"empty", "", 0},
		{"one line no newline", "abc", 1},
		{"one line with newline", "abc\n", 2},
		{"two lines", "abc\ndef", 2},
		{"crlf", "abc\r\ndef", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := BuildLines([]byte(tt.content))
			if len(lines) != tt.wantLines {
				t.Errorf("got %d lines, want %d", len(lines), tt.wantLines)
			}
		})
	}
}

func TestSourceLineAt(t *testing.T) {
	src := NewSource("test.adoc", []byte("first\nsecond\nthird"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{6, 2, 1},
		{8, 2, 3},
		{13, 3, 1},
		{17, 3, 5},
	}

	for _, tt := range tests {
		line, col := src.LineAt(tt.offset)
		if line != tt.wantLine || col != tt.wantCol {
			t.Errorf("LineAt(%d) = (%d, %d), want (%d, %d)",
				tt.offset, line, col, tt.wantLine, tt.wantCol)
		}
	}

	if line, col := src.LineAt(-1); line != 0 || col != 0 {
		t.Errorf("LineAt(-1) = (%d, %d), want (0, 0)", line, col)
	}
}

func TestSourceLineContent(t *testing.T) {
	src := NewSource("", []byte("first\nsecond\r\nthird"))

	if got := string(src.LineContent(1)); got != "first" {
		t.Errorf("line 1 = %q", got)
	}
	// CRLF is excluded from the line content.
	if got := string(src.LineContent(2)); got != "second" {
		t.Errorf("line 2 = %q", got)
	}
	if got := string(src.LineContent(3)); got != "third" {
		t.Errorf("line 3 = %q", got)
	}
	if src.LineContent(0) != nil || src.LineContent(4) != nil {
		t.Error("out-of-range lines should return nil")
	}
}

func TestTokenIsDelim(t *testing.T) {
	delims := []TokenKind{
		TokListingDelim, TokSidebarDelim, TokExampleDelim, TokQuoteDelim,
		TokLiteralDelim, TokPassthroughDelim, TokOpenDelim, TokCommentDelim,
		TokTableDelim, TokNestedTableDelim,
	}
	for _, kind := range delims {
		if !(Token{Kind: kind}).IsDelim() {
			t.Errorf("%v should be a delimiter token", kind)
		}
	}
	if (Token{Kind: TokBoldDelim}).IsDelim() {
		t.Error("inline bold delimiter is not a block delimiter")
	}
}
