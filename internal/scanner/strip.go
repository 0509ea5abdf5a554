// Package scanner converts raw bundle source into comment-free text while
// preserving string, template, and regex literal contents byte-for-byte.
//
// The scanner is deliberately heuristic: it tracks just enough lexical state
// to tell comments apart from literals, without parsing. A `/` is assumed to
// start a regex literal only when the preceding non-whitespace character is
// punctuation that cannot end an expression; adversarial division expressions
// can therefore be misread as regex starts. This is a documented limitation,
// not a bug.
package scanner

import "strings"

// mode is the scanner's current lexical state.
type mode int

const (
	modeCode mode = iota
	modeLineComment
	modeBlockComment
	modeSingleQuote
	modeDoubleQuote
	modeTemplate
	modeRegex
)

// regexPredecessors holds the punctuation characters after which a `/` is
// treated as the start of a regex literal rather than division.
const regexPredecessors = "=([{:;!&|?+-*/%^~<>,"

// Strip returns raw with comment bytes removed. String, template, and regex
// literal contents are copied through unchanged, so rules can still match
// text that happens to live inside a literal; filtering those matches is the
// rule layer's job, not the scanner's.
//
// Strip is pure and total: malformed or unterminated input never panics. An
// unterminated comment or literal fails open, emitting everything
// accumulated so far.
func Strip(raw string) string {
	cleaned, _ := StripWithMap(raw)
	return cleaned
}

// StripWithMap returns the cleaned text plus an offset index: offsets[i] is
// the position in raw of the byte that produced cleaned[i]. Callers that
// match against the cleaned text use the index to locate each hit in raw;
// searching raw for the matched bytes instead is not safe, because the same
// bytes may also occur inside a stripped comment.
func StripWithMap(raw string) (string, []int) {
	var out strings.Builder
	out.Grow(len(raw))
	offsets := make([]int, 0, len(raw))

	emit := func(c byte, at int) {
		out.WriteByte(c)
		offsets = append(offsets, at)
	}

	st := modeCode
	var lastCode byte // last non-whitespace byte seen in code mode; 0 = stream start

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch st {
		case modeCode:
			switch {
			case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
				st = modeBlockComment
				i++ // skip the '*' so "/*/" does not self-close
			case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
				st = modeLineComment
				i++
			case c == '\'':
				st = modeSingleQuote
				emit(c, i)
			case c == '"':
				st = modeDoubleQuote
				emit(c, i)
			case c == '`':
				st = modeTemplate
				emit(c, i)
			case c == '/' && regexCanFollow(lastCode):
				st = modeRegex
				emit(c, i)
			default:
				emit(c, i)
				if !isSpace(c) {
					lastCode = c
				}
			}
		case modeLineComment:
			if c == '\n' {
				st = modeCode
				emit(c, i)
			}
		case modeBlockComment:
			if c == '*' && i+1 < len(raw) && raw[i+1] == '/' {
				st = modeCode
				i++
			} else if c == '\n' {
				// A space, not a newline, keeps the tokens on either side of
				// a multi-line comment from concatenating.
				emit(' ', i)
			}
		case modeSingleQuote:
			emit(c, i)
			if c == '\'' && !escaped(raw, i) {
				st = modeCode
				lastCode = c
			}
		case modeDoubleQuote:
			emit(c, i)
			if c == '"' && !escaped(raw, i) {
				st = modeCode
				lastCode = c
			}
		case modeTemplate:
			emit(c, i)
			if c == '`' && !escaped(raw, i) {
				st = modeCode
				lastCode = c
			}
		case modeRegex:
			emit(c, i)
			if c == '/' && !escaped(raw, i) {
				st = modeCode
				lastCode = c
			} else if c == '\n' {
				// Regex literals cannot span lines; bail out so a misread
				// division does not swallow the rest of the file.
				st = modeCode
			}
		}
	}

	return out.String(), offsets
}

// regexCanFollow reports whether a regex literal may start after the given
// code byte. Zero means start of stream, which also permits one.
func regexCanFollow(last byte) bool {
	if last == 0 {
		return true
	}
	return strings.IndexByte(regexPredecessors, last) >= 0
}

// escaped reports whether the byte at index i is preceded by an odd number of
// consecutive backslashes (escape parity).
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
