package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "bold and list",
			input:    "**Law Title:** Factories Act\n\n1. first\n2. second",
			contains: []string{"<strong>Law Title:</strong>", "<ol>", "<li>first</li>"},
		},
		{
			name:     "table",
			input:    "| Law | Penalty |\n|---|---|\n| A | fine |",
			contains: []string{"<table>", "<td>fine</td>"},
		},
		{
			name:     "script stripped",
			input:    "hello <script>alert(1)</script>",
			contains: []string{"hello"},
			excludes: []string{"<script>", "alert(1)"},
		},
		{
			name:     "javascript link stripped",
			input:    "[x](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(HTML(tt.input))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	out := Terminal("# Rare Laws\n\nSome **important** text.", 60)
	assert.Contains(t, out, "Rare Laws")
	assert.Contains(t, out, "important")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
