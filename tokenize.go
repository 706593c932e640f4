package infix

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokens is a forward-only sequence of raw tokens from one expression.
type Tokens interface {
	// Next returns the next token and the 1-based rune column where it
	// starts. ok is false once the input is exhausted.
	Next() (text string, col int, ok bool)
}

// Tokenizer splits expressions into raw tokens. Each call to Tokenize must
// return a fresh sequence.
type Tokenizer interface {
	Tokenize(expr string) Tokens
}

// DelimiterTokenizer splits expressions on a set of delimiter strings. Each
// delimiter is its own token; the text between delimiters forms literal
// tokens with surrounding whitespace removed. Where several delimiters match
// at the same position, the longest wins.
type DelimiterTokenizer struct {
	delims []string
	spaces bool
}

// NewDelimiterTokenizer creates a tokenizer for the given delimiters. If
// spaces is false, whitespace also ends a literal, so "3 4" is two tokens;
// otherwise interior whitespace is part of the literal.
func NewDelimiterTokenizer(delims []string, spaces bool) *DelimiterTokenizer {
	d := make([]string, 0, len(delims))
	seen := make(map[string]bool, len(delims))
	for _, s := range delims {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		d = append(d, s)
	}
	// Longest first, then lexically so the order is deterministic.
	for i := 1; i < len(d); i++ {
		for j := i; j > 0 && longer(d[j], d[j-1]); j-- {
			d[j], d[j-1] = d[j-1], d[j]
		}
	}
	return &DelimiterTokenizer{delims: d, spaces: spaces}
}

func longer(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

// Delimiters returns the tokenizer's delimiters, longest first.
func (t *DelimiterTokenizer) Delimiters() []string {
	return append([]string(nil), t.delims...)
}

// Tokenize returns the token sequence for expr.
func (t *DelimiterTokenizer) Tokenize(expr string) Tokens {
	return &delimScanner{src: expr, col: 1, t: t}
}

type delimScanner struct {
	src string
	// pos is the byte offset of the next unscanned rune, and col is its
	// 1-based rune column.
	pos int
	col int
	t   *DelimiterTokenizer
}

// match returns the delimiter at the scanner's position, or the empty string
// if there is none.
func (s *delimScanner) match() string {
	rest := s.src[s.pos:]
	for _, d := range s.t.delims {
		if strings.HasPrefix(rest, d) {
			return d
		}
	}
	return ""
}

func (s *delimScanner) advance(n int) {
	s.col += utf8.RuneCountInString(s.src[s.pos : s.pos+n])
	s.pos += n
}

func (s *delimScanner) Next() (string, int, bool) {
	for s.pos < len(s.src) {
		if d := s.match(); d != "" {
			col := s.col
			s.advance(len(d))
			return d, col, true
		}
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if unicode.IsSpace(r) {
			s.advance(sz)
			continue
		}
		// Literal. end trails the last non-space rune so that trailing
		// whitespace is dropped.
		start, col, end := s.pos, s.col, s.pos
		for s.pos < len(s.src) && s.match() == "" {
			r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
			if unicode.IsSpace(r) {
				if !s.t.spaces {
					break
				}
				s.advance(sz)
				continue
			}
			s.advance(sz)
			end = s.pos
		}
		return s.src[start:end], col, true
	}
	return "", s.col, false
}

// FieldsTokenizer splits expressions on whitespace only. It suits grammars
// whose operators are words, where e.g. "AND" must not split "ANDROID".
type FieldsTokenizer struct{}

// Tokenize returns the token sequence for expr.
func (FieldsTokenizer) Tokenize(expr string) Tokens {
	return &fieldsScanner{src: expr, col: 1}
}

type fieldsScanner struct {
	src string
	pos int
	col int
}

func (s *fieldsScanner) Next() (string, int, bool) {
	for s.pos < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += sz
		s.col++
	}
	if s.pos >= len(s.src) {
		return "", s.col, false
	}
	start, col := s.pos, s.col
	for s.pos < len(s.src) {
		r, sz := utf8.DecodeRuneInString(s.src[s.pos:])
		if unicode.IsSpace(r) {
			break
		}
		s.pos += sz
		s.col++
	}
	return s.src[start:s.pos], col, true
}
