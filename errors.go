package tagger

import "fmt"

// ErrInvalidRegex contextualizes broken regular expressions presented by the user
type ErrInvalidRegex struct {
	Pattern string
	Err     error
}

// Error implements error
func (e ErrInvalidRegex) Error() string {
	return fmt.Sprintf("/%s/ %s", e.Pattern, e.Err)
}

// ErrInvalidGlob contextualizes broken glob patterns presented by the user
type ErrInvalidGlob struct {
	Pattern string
	Err     error
}

// Error implements error
func (e ErrInvalidGlob) Error() string {
	return fmt.Sprintf("glob [%s] %s", e.Pattern, e.Err)
}

// ErrParse is a load-time failure of a single rule expression
// carries file and line context so the user can locate the offending line
type ErrParse struct {
	Path string
	Line int
	Expr string
	Err  error
}

// Error implements error
func (e ErrParse) Error() string {
	return fmt.Sprintf("%s:%d: [%s] %s", e.Path, e.Line, e.Expr, e.Err)
}

// ErrBulkParse is a bulk error handler for dealing with broken tag files
// Individual errors are collected so lint tooling can report all of them
// Caller decides if they should be only reported or warrant a full exit
type ErrBulkParse struct {
	Errs []ErrParse
}

func (e ErrBulkParse) Error() string {
	return fmt.Sprintf("got %d broken tag rules", len(e.Errs))
}

// ErrMissingExpression indicates a condition that lacks an operator or a
// literal value, likely a truncated line
type ErrMissingExpression struct {
	Field string
	Last  Token
}

func (e ErrMissingExpression) Error() string {
	return fmt.Sprintf("field %s is missing operator or literal, last token %s",
		e.Field, e.Last)
}

// ErrUnsupportedToken is a parser error indicating lexical token that is not yet supported
// Meant to be used as informational warning, rather than application breaking error
type ErrUnsupportedToken struct{ Msg string }

func (e ErrUnsupportedToken) Error() string { return fmt.Sprintf("UNSUPPORTED TOKEN: %s", e.Msg) }

// ErrInvalidTokenSeq indicates expression syntax error from rule writer
// For example, two conditions have to be separated by a logical AND / OR operator
type ErrInvalidTokenSeq struct {
	Prev, Next Item
	Collected  []Item
}

func (e ErrInvalidTokenSeq) Error() string {
	return fmt.Sprintf(`seq error after collecting %d elements.`+
		` Invalid token sequence %s -> %s. Values: %s -> %s.`,
		len(e.Collected), e.Prev.T, e.Next.T, e.Prev.Val, e.Next.Val)
}

// ErrIncompleteTokenSeq is invoked when lex channel drain does not end with EOF
// thus indicating incomplete lexing sequence
type ErrIncompleteTokenSeq struct {
	Expression string
	Items      []Item
	Last       Item
}

func (e ErrIncompleteTokenSeq) Error() string {
	return fmt.Sprintf("last element should be EOF, got token %s with value %s",
		e.Last.T.String(), e.Last.Val)
}
