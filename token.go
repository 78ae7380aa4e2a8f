package tagger

var eof = rune(0)

// Item is lexical token along with respective plaintext value
// Item is communicated between lexer and parser
type Item struct {
	T   Token
	Val string
}

// Token is a lexical token extracted from a tag rule expression line
type Token int

const (
	TokErr Token = iota

	// Helpers for internal stuff
	TokBegin
	TokNil

	// user-defined words
	TokField
	TokLiteral

	// Literals
	TokLitEof

	// Separators
	TokSepLpar
	TokSepRpar

	// Operators
	TokOpIs
	TokOpContains
	TokOpRegexp
	TokOpMatches

	// Keywords
	TokKeywordAnd
	TokKeywordOr
	TokKeywordNot
)

// String documents human readable textual value of token
// For visual debugging, so everything is uppercased
func (t Token) String() string {
	switch t {
	case TokField:
		return "FIELD"
	case TokLiteral:
		return "LITERAL"
	case TokSepLpar:
		return "LPAR"
	case TokSepRpar:
		return "RPAR"
	case TokOpIs:
		return "IS"
	case TokOpContains:
		return "CONTAINS"
	case TokOpRegexp:
		return "REGEXP"
	case TokOpMatches:
		return "MATCHES"
	case TokKeywordAnd:
		return "AND"
	case TokKeywordOr:
		return "OR"
	case TokKeywordNot:
		return "NOT"
	case TokLitEof:
		return "EOF"
	case TokErr:
		return "ERR"
	case TokBegin:
		return "BEGINNING"
	case TokNil:
		return "NIL"
	default:
		return "Unk"
	}
}

// Literal documents plaintext values of a token, as used in a rule file
func (t Token) Literal() string {
	switch t {
	case TokField:
		return "field"
	case TokLiteral:
		return "value"
	case TokSepLpar:
		return "("
	case TokSepRpar:
		return ")"
	case TokOpIs:
		return "is"
	case TokOpContains:
		return "contains"
	case TokOpRegexp:
		return "regexp"
	case TokOpMatches:
		return "matches"
	case TokKeywordAnd:
		return "AND"
	case TokKeywordOr:
		return "OR"
	case TokKeywordNot:
		return "NOT"
	case TokLitEof, TokNil:
		return ""
	default:
		return "Err"
	}
}

// Rune returns UTF-8 numeric value of symbol
func (t Token) Rune() rune {
	switch t {
	case TokSepLpar:
		return '('
	case TokSepRpar:
		return ')'
	default:
		return eof
	}
}

// IsOperator denotes tokens that separate a field name from a literal value
func (t Token) IsOperator() bool {
	switch t {
	case TokOpIs, TokOpContains, TokOpRegexp, TokOpMatches:
		return true
	}
	return false
}

// validTokenSequence detects invalid token sequences
// not meant to be a perfect validator, simply a quick check before parsing
func validTokenSequence(t1, t2 Token) bool {
	switch t2 {
	case TokField:
		switch t1 {
		case TokBegin, TokSepLpar, TokKeywordAnd, TokKeywordOr, TokKeywordNot:
			return true
		}
	case TokOpIs, TokOpContains, TokOpRegexp, TokOpMatches:
		switch t1 {
		case TokField:
			return true
		}
	case TokLiteral:
		if t1.IsOperator() {
			return true
		}
	case TokKeywordAnd, TokKeywordOr:
		switch t1 {
		case TokLiteral, TokSepRpar:
			return true
		}
	case TokKeywordNot:
		switch t1 {
		case TokBegin, TokKeywordAnd, TokKeywordOr, TokSepLpar:
			return true
		}
	case TokSepLpar:
		switch t1 {
		case TokBegin, TokKeywordAnd, TokKeywordOr, TokKeywordNot, TokSepLpar:
			return true
		}
	case TokSepRpar:
		switch t1 {
		case TokLiteral, TokSepRpar:
			return true
		}
	case TokLitEof:
		switch t1 {
		case TokLiteral, TokSepRpar:
			return true
		}
	}
	return false
}
