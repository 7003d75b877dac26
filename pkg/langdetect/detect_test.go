package langdetect_test

import (
	"testing"

	"github.com/intergrado-cg/doctora/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty",
			content: "",
			want:    "text",
		},
		{
			name:    "whitespace only",
			content: "  \n\t\n",
			want:    "text",
		},
		{
			name:    "shebang bash",
			content: "#!/bin/bash\necho hi\n",
			want:    "bash",
		},
		{
			name:    "shebang python",
			content: "#!/usr/bin/env python\nprint('hi')\n",
			want:    "python",
		},
		{
			name:    "go package clause",
			content: "package main\n\nimport \"fmt\"\n",
			want:    "go",
		},
		{
			name:    "go func keyword",
			content: "func add(a, b int) int {\n\treturn a + b\n}\n",
			want:    "go",
		},
		{
			name:    "python def",
			content: "def greet(name):\n    return f\"hi {name}\"\n",
			want:    "python",
		},
		{
			name:    "python main guard",
			content: "if __name__ == \"__main__\":\n    run()\n",
			want:    "python",
		},
		{
			name:    "rust main",
			content: "fn main() {\n    println!(\"hi\");\n}\n",
			want:    "rust",
		},
		{
			name:    "sql select",
			content: "SELECT id, name FROM users WHERE id = 1;\n",
			want:    "sql",
		},
		{
			name:    "dockerfile",
			content: "FROM alpine:3.20\nRUN apk add curl\n",
			want:    "dockerfile",
		},
		{
			name:    "json object",
			content: "{\n  \"name\": \"doctora\",\n  \"count\": 3\n}\n",
			want:    "json",
		},
		{
			name:    "yaml mapping",
			content: "host: localhost\nport: 8080\n",
			want:    "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := langdetect.Detect([]byte(tt.content)); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
