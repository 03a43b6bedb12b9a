package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// translate rewrites a report template into pongo2's native syntax.
//
// Report templates interpolate with ${ expr } and write control statements on
// lines starting with %, e.g. "% for tag in tags(category.Value)". A line
// statement consumes its whole line including the newline; an optional
// trailing ':' is dropped. {% %} blocks and {# #} comments pass through
// untouched, while a literal {{ in the text is kept literal.
func translate(src []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src))

	line := 1
	atLineStart := true
	for i := 0; i < len(src); {
		if atLineStart {
			if stmt, n, ok := lineStatement(src[i:]); ok {
				if stmt != "" {
					out.WriteString("{% " + stmt + " %}")
				}
				i += n
				line++
				continue
			}
		}

		switch {
		case bytes.HasPrefix(src[i:], []byte("${")):
			end := closingBrace(src[i+2:])
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated ${ expression", line)
			}
			expr := src[i+2 : i+2+end]
			line += bytes.Count(expr, []byte("\n"))
			out.WriteString("{{ " + strings.TrimSpace(string(expr)) + " }}")
			i += 2 + end + 1
			atLineStart = false
		case bytes.HasPrefix(src[i:], []byte("{{")):
			out.WriteString("{% templatetag openvariable %}")
			i += 2
			atLineStart = false
		default:
			c := src[i]
			out.WriteByte(c)
			i++
			atLineStart = c == '\n'
			if atLineStart {
				line++
			}
		}
	}

	return out.Bytes(), nil
}

// lineStatement reports whether s starts with a % line statement and returns
// the statement text and the number of bytes the line occupies.
func lineStatement(s []byte) (string, int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '%' {
		return "", 0, false
	}

	end := bytes.IndexByte(s[i:], '\n')
	n := len(s)
	body := s[i+1:]
	if end >= 0 {
		n = i + end + 1
		body = s[i+1 : i+end]
	}

	stmt := strings.TrimSpace(string(body))
	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ":"))
	return stmt, n, true
}

// closingBrace returns the index of the '}' closing an interpolation,
// skipping nested braces and quoted strings, or -1.
func closingBrace(s []byte) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// dialectLoader wraps a pongo2 loader and translates every template it
// serves, so includes and extends resolve through the same dialect.
// pongo2 falls through to the next loader when Get fails, so the last
// translation failure is kept for the engine to report.
type dialectLoader struct {
	base    pongo2.TemplateLoader
	lastErr error
}

func newDialectLoader(base pongo2.TemplateLoader) *dialectLoader {
	return &dialectLoader{base: base}
}

func (l *dialectLoader) Abs(base, name string) string {
	return l.base.Abs(base, name)
}

func (l *dialectLoader) Get(path string) (io.Reader, error) {
	r, err := l.base.Get(path)
	if err != nil {
		return nil, err
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	translated, err := translate(src)
	if err != nil {
		l.lastErr = fmt.Errorf("%s: %w", path, err)
		return nil, l.lastErr
	}
	return bytes.NewReader(translated), nil
}
