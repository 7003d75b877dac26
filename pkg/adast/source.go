package adast

import "sort"

// Source is an immutable view of one AsciiDoc input: the raw bytes plus the
// line index used to convert byte offsets into 1-based line/column pairs for
// diagnostic rendering.
type Source struct {
	// Path is the input path (may be empty for in-memory content).
	Path string

	// Content is the full input bytes.
	Content []byte

	// Lines contains metadata for each line.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of input).
	EndOffset int
}

// NewSource creates a Source from content, building the line index.
func NewSource(path string, content []byte) *Source {
	return &Source{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata from content.
// It handles both LF and CRLF line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart <= len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines.
func (s *Source) LineCount() int {
	return len(s.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes. Returns (0, 0) if out of range.
func (s *Source) LineAt(offset int) (int, int) {
	if offset < 0 || len(s.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(s.Content) {
		lastLine := s.Lines[len(s.Lines)-1]
		return len(s.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})

	if lineIdx >= len(s.Lines) {
		lineIdx = len(s.Lines) - 1
	}

	lineInfo := s.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineContent returns the content of a 1-based line, excluding the newline.
// Returns nil if the line number is out of range.
func (s *Source) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	lineInfo := s.Lines[line-1]
	return s.Content[lineInfo.StartOffset:lineInfo.NewlineStart]
}
