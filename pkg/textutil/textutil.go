// Package textutil provides the quoting and indentation helpers shared by the
// shape representation and the diagnostic builder.
package textutil

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Indent is the unit of indentation used in nested reports.
const Indent = "  "

// ErrNotQuoted is returned when Unquote is given text without single quotes.
var ErrNotQuoted = errors.New("string is not single-quoted")

// Quote renders s as a single-quoted literal. Backslashes, single quotes and
// non-printable runes are escaped; everything else is kept verbatim.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsPrint(r) {
				b.WriteRune(r)

				continue
			}

			quoted := strconv.QuoteRuneToASCII(r)
			b.WriteString(quoted[1 : len(quoted)-1])
		}
	}

	b.WriteByte('\'')

	return b.String()
}

// Unquote reverses Quote.
func Unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", ErrNotQuoted
	}

	body := s[1 : len(s)-1]

	var b strings.Builder

	b.Grow(len(body) + 2)
	b.WriteByte('"')

	for i := 0; i < len(body); i++ {
		c := body[i]

		switch {
		case c == '\\' && i+1 < len(body) && body[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(body):
			b.WriteByte(c)
			b.WriteByte(body[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')

	out, err := strconv.Unquote(b.String())
	if err != nil {
		return "", errors.Join(ErrNotQuoted, err)
	}

	return out, nil
}

// IndentLines prefixes every line with prefix. Empty input yields nil.
func IndentLines(lines []string, prefix string) []string {
	if len(lines) == 0 {
		return nil
	}

	out := make([]string, len(lines))

	for i, line := range lines {
		out[i] = prefix + line
	}

	return out
}

// SplitLines splits text on newlines. A trailing newline does not produce an
// extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
