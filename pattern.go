package tagger

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// StringMatcher is an atomic pattern that could implement exact, substring,
// glob or regex matchers
type StringMatcher interface {
	// StringMatch implements StringMatcher
	StringMatch(string) bool
}

// newStringMatcher builds the atomic matcher behind a condition operator
// patterns are compiled once at load time, never per record
func newStringMatcher(op Token, pattern string) (StringMatcher, error) {
	switch op {
	case TokOpIs:
		return ContentPattern{Token: pattern}, nil
	case TokOpContains:
		return SubstringPattern{Token: pattern}, nil
	case TokOpMatches:
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, ErrInvalidGlob{Pattern: pattern, Err: err}
		}
		return GlobPattern{Glob: g}, nil
	case TokOpRegexp:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, ErrInvalidRegex{Pattern: pattern, Err: err}
		}
		return RegexPattern{Re: re}, nil
	}
	return nil, ErrUnsupportedToken{Msg: op.String()}
}

// ContentPattern is a token for literal content matching
// comparison is case-sensitive and exact
type ContentPattern struct {
	Token string
}

// StringMatch implements StringMatcher
func (c ContentPattern) StringMatch(msg string) bool {
	return msg == c.Token
}

// SubstringPattern matches the token anywhere in the message
type SubstringPattern struct {
	Token string
}

// StringMatch implements StringMatcher
func (s SubstringPattern) StringMatch(msg string) bool {
	return strings.Contains(msg, s.Token)
}

// GlobPattern matches messages against a shell-style wildcard expression
type GlobPattern struct {
	Glob glob.Glob
}

// StringMatch implements StringMatcher
func (g GlobPattern) StringMatch(msg string) bool {
	return g.Glob.Match(msg)
}

// RegexPattern matches messages against a compiled regular expression
type RegexPattern struct {
	Re *regexp.Regexp
}

// StringMatch implements StringMatcher
func (r RegexPattern) StringMatch(msg string) bool {
	return r.Re.MatchString(msg)
}
