package render

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "interpolation",
			input:    "<p>${ tag.Key }</p>",
			expected: "<p>{{ tag.Key }}</p>",
		},
		{
			name:     "interpolation without spaces",
			input:    "${x}",
			expected: "{{ x }}",
		},
		{
			name:     "quoted closing brace",
			input:    `${ "}"|length }`,
			expected: `{{ "}"|length }}`,
		},
		{
			name:     "line statements consume their line",
			input:    "% for x in y:\n<li>${ x }</li>\n% endfor\n",
			expected: "{% for x in y %}<li>{{ x }}</li>\n{% endfor %}",
		},
		{
			name:     "indented statements",
			input:    "  % if x\nyes\n\t% endif",
			expected: "{% if x %}yes\n{% endif %}",
		},
		{
			name:     "empty statement",
			input:    "%\ntext",
			expected: "text",
		},
		{
			name:     "percent inside a line",
			input:    "<p>100% done</p>\n",
			expected: "<p>100% done</p>\n",
		},
		{
			name:     "literal open variable",
			input:    "a {{ b }}",
			expected: "a {% templatetag openvariable %} b }}",
		},
		{
			name:     "native blocks and comments",
			input:    "{% if x %}y{% endif %}{# note #}",
			expected: "{% if x %}y{% endif %}{# note #}",
		},
		{
			name:     "css braces",
			input:    "body { margin: 0; }\n",
			expected: "body { margin: 0; }\n",
		},
		{
			name:     "dollar without brace",
			input:    "$a costs $5",
			expected: "$a costs $5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("translate(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTranslateUnterminated(t *testing.T) {
	_, err := translate([]byte("<p>ok</p>\n% for x in y\n<p>${ x</p>\n"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected error to name line 3, got %q", err.Error())
	}
}

func TestDialectLoader(t *testing.T) {
	files := fstest.MapFS{
		"good.html": {Data: []byte("${ name }\n")},
		"bad.html":  {Data: []byte("${ name\n")},
	}
	loader := newDialectLoader(pongo2.NewFSLoader(files))

	r, err := loader.Get(loader.Abs("", "good.html"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "{{ name }}\n" {
		t.Errorf("expected translated source, got %q", got)
	}
	if loader.lastErr != nil {
		t.Errorf("expected no recorded error, got %v", loader.lastErr)
	}

	if _, err := loader.Get(loader.Abs("", "bad.html")); err == nil {
		t.Fatal("expected error, got nil")
	}
	if loader.lastErr == nil || !strings.Contains(loader.lastErr.Error(), "bad.html") {
		t.Errorf("expected recorded error naming bad.html, got %v", loader.lastErr)
	}

	if _, err := loader.Get(loader.Abs("", "missing.html")); err == nil {
		t.Error("expected error for missing template, got nil")
	}
}
