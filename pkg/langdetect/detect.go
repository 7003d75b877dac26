// Package langdetect guesses the source language of listing block content
// that carries no explicit language attribute. It uses go-enry, with a few
// cheap structural checks first because short snippets give the classifier
// too little signal.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifier candidates, roughly the languages that show up in
// documentation listings.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lowercase language tag for the listing content, or
// "text" when nothing can be determined with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return "text"
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return "text"
}

// detectByPattern applies structural checks that are near-unambiguous on
// even a few lines, where the statistical classifier is not.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) || strings.Contains(text, "func "):
		return "go"
	case strings.Contains(text, "def ") && strings.Contains(text, "):"),
		strings.Contains(text, "__main__"):
		return "python"
	case strings.Contains(text, "fn main()") || strings.Contains(text, "println!"):
		return "rust"
	case bytes.HasPrefix(trimmed, []byte("SELECT ")) || bytes.HasPrefix(trimmed, []byte("select ")):
		return "sql"
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(content, []byte("RUN ")):
		return "dockerfile"
	case looksLikeJSON(trimmed):
		return "json"
	case looksLikeYAML(content):
		return "yaml"
	}
	return ""
}

func looksLikeJSON(trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

// looksLikeYAML counts top-level "key: value" and "- item" lines; two or
// more without code punctuation is a strong hint.
func looksLikeYAML(content []byte) bool {
	hits := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			hits++
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({\"") {
			hits++
		}
	}
	return hits >= 2
}

// normalize converts go-enry language names to listing tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
