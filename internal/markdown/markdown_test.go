package markdown

import (
	"strings"
	"testing"
)

func TestRender_XSS(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		rejected string // substring that must NOT appear in output
	}{
		{"script tag", `<script>alert('xss')</script>`, "<script"},
		{"img onerror", `<img src=x onerror=alert('xss')>`, "<img "},
		{"javascript link", `[click](javascript:alert('xss'))`, "javascript:"},
		{"raw javascript href", `<a href="javascript:void(0)">link</a>`, "javascript:"},
		{"event handler", `<div onmouseover="alert('xss')">hover</div>`, "onmouseover"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.input)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if strings.Contains(strings.ToLower(out), strings.ToLower(tt.rejected)) {
				t.Errorf("output contains rejected %q:\n%s", tt.rejected, out)
			}
		})
	}
}

func TestRender_Bio(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"paragraph", "Backend engineer", "<p>Backend engineer</p>"},
		{"bold", "**Go** developer", "<strong>Go</strong>"},
		{"hard wrap", "line one\nline two", "<br"},
		{"autolink", "see https://go.dev", `href="https://go.dev"`},
		{"external link opens new tab", "[site](https://example.com)", `target="_blank"`},
		{"strikethrough", "~~old~~", "<del>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.input)
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, out)
			}
		})
	}
}

func TestRender_Blank(t *testing.T) {
	out, err := Render("  \n ")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
