package rules

import (
	"regexp"
	"strings"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/scanner"
)

// contextRadius is the number of raw characters inspected on each side of a
// match when deciding whether it is a documented safe usage.
const contextRadius = 200

// matchSite captures one pattern hit plus the surrounding raw text used for
// whitelist checks. The match itself is found in the cleaned text (so
// comments never trigger it), but line and window come from the raw text:
// a safe-usage marker sitting in a nearby comment still counts.
type matchSite struct {
	matched string
	line    string
	lineNum int
	window  string
}

// siteFinder locates pattern matches in the cleaned text and maps each one
// back to its exact raw position through the scanner's offset index.
// Searching raw for the matched bytes would be wrong: the same bytes can also
// occur inside a stripped comment anywhere earlier in the file, and locking
// onto that occurrence would put the line and context window arbitrarily far
// from the real match.
type siteFinder struct {
	raw     string
	cleaned string
	offsets []int // offsets[i] is the raw position of cleaned[i]
}

// newSiteFinder prepares one file's raw contents for site resolution.
func newSiteFinder(raw string) *siteFinder {
	cleaned, offsets := scanner.StripWithMap(raw)
	return &siteFinder{raw: raw, cleaned: cleaned, offsets: offsets}
}

// find returns every match of re in the cleaned text, each resolved to its
// raw position to build the line and context-window views.
func (f *siteFinder) find(re *regexp.Regexp) []matchSite {
	locs := re.FindAllStringIndex(f.cleaned, -1)
	if len(locs) == 0 {
		return nil
	}

	sites := make([]matchSite, 0, len(locs))
	for _, loc := range locs {
		if loc[1] == loc[0] {
			continue // zero-width match carries no position of its own
		}
		ri := f.offsets[loc[0]]
		// The raw span can be wider than the cleaned match when a comment sat
		// between the matched bytes.
		rn := f.offsets[loc[1]-1] + 1 - ri

		sites = append(sites, matchSite{
			matched: f.cleaned[loc[0]:loc[1]],
			line:    lineAt(f.raw, ri),
			lineNum: lineNumberAt(f.raw, ri),
			window:  contextWindow(f.raw, ri, rn),
		})
	}
	return sites
}

// whitelisted reports whether any of the given patterns matches either the
// site's immediate line or its surrounding context window.
func (s matchSite) whitelisted(patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s.line) || p.MatchString(s.window) {
			return true
		}
	}
	return false
}

// lineAt returns the full line of text containing index i.
func lineAt(text string, i int) string {
	start := strings.LastIndexByte(text[:i], '\n') + 1
	end := strings.IndexByte(text[i:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : i+end]
}

// lineNumberAt returns the 1-based line number of index i.
func lineNumberAt(text string, i int) int {
	return strings.Count(text[:i], "\n") + 1
}

// contextWindow returns up to contextRadius characters on each side of the
// match at index i with length n.
func contextWindow(text string, i, n int) string {
	start := i - contextRadius
	if start < 0 {
		start = 0
	}
	end := i + n + contextRadius
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// compileAll compiles a list of pattern strings, panicking on invalid ones.
// Rule pattern lists are fixed at build time, so a bad pattern is a
// programming error.
func compileAll(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}
