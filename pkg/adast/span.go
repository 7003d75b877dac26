package adast

// Span is a half-open byte range [Start, End) into the source content.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// NewSpan creates a span, normalizing inverted bounds.
func NewSpan(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan returns true if other lies entirely within this span.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Union returns the minimal span covering both s and other.
// An empty zero-valued span is treated as absent.
func (s Span) Union(other Span) Span {
	if s == (Span{}) {
		return other
	}
	if other == (Span{}) {
		return s
	}
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

// Text returns the source bytes covered by this span.
// Returns nil if the span is out of range for the content.
func (s Span) Text(content []byte) []byte {
	if s.Start < 0 || s.End > len(content) || s.Start > s.End {
		return nil
	}
	return content[s.Start:s.End]
}
