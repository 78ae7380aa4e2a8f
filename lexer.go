package tagger

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input    string    // we'll store the string being parsed
	start    int       // the position we started scanning
	position int       // the current position of our scan
	width    int       // we'll be using runes which can be double byte
	items    chan Item // the channel we'll use to communicate between the lexer and the parser
}

// lex creates a lexer and starts scanning the provided input.
func lex(input string) *lexer {
	l := &lexer{
		input: input,
		items: make(chan Item, 0),
	}
	go l.scan()
	return l
}

// ignore resets the start position to the current scan position effectively
// ignoring any input.
func (l *lexer) ignore() {
	l.start = l.position
}

// next advances the lexer state to the next rune.
func (l *lexer) next() (r rune) {
	if l.position >= len(l.input) {
		l.width = 0
		return eof
	}

	r, l.width = utf8.DecodeRuneInString(l.todo())
	l.position += l.width
	return r
}

// backup allows us to step back one rune which is helpful when you've crossed
// a boundary from one state to another.
func (l *lexer) backup() {
	l.position = l.position - 1
}

// scan will step through the provided text and execute state functions as
// state changes are observed in the provided input.
func (l *lexer) scan() {
	for fn := lexExpression; fn != nil; {
		fn = fn(l)
	}
	close(l.items)
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	msg := fmt.Sprintf(format, args...)
	l.items <- Item{T: TokErr, Val: msg}
	return nil
}

// emit sends a item over the channel so the parser can collect and manage
// each segment.
func (l *lexer) emit(k Token) {
	i := Item{T: k, Val: l.input[l.start:l.position]}
	l.items <- i
	l.ignore() // reset our scanner now that we've dispatched a segment
}

// emitQuoted sends a literal item with surrounding quote symbols stripped
func (l *lexer) emitQuoted() {
	i := Item{T: TokLiteral, Val: l.input[l.start+1 : l.position-1]}
	l.items <- i
	l.ignore()
}

func (l lexer) collected() string { return l.input[l.start:l.position] }
func (l lexer) todo() string      { return l.input[l.position:] }

// stateFn is a function that is specific to a state within the string.
type stateFn func(*lexer) stateFn

// lexExpression scans what is expected to be text.
func lexExpression(l *lexer) stateFn {
	for {
		switch r := l.next(); {
		case r == eof:
			return lexEOF
		case r == TokSepRpar.Rune():
			return lexRparWithTokens
		case r == TokSepLpar.Rune():
			return lexLpar
		case isQuote(r):
			// emit any text we've accumulated before the quote symbol
			if l.position-l.width > l.start {
				l.backup()
				l.emit(checkKeyWord(l.collected()))
				l.next()
			}
			return lexQuoted(r)
		case unicode.IsSpace(r):
			return lexAccumulateBeforeWhitespace
		}
	}
}

func isQuote(r rune) bool { return r == '\'' || r == '"' }

func lexEOF(l *lexer) stateFn {
	if l.position > l.start {
		l.emit(checkKeyWord(l.collected()))
	}
	l.emit(TokLitEof)
	return nil
}

func lexLpar(l *lexer) stateFn {
	l.emit(TokSepLpar)
	return lexExpression
}

func lexRparWithTokens(l *lexer) stateFn {
	// emit any text we've accumulated.
	if l.position > l.start {
		l.backup()

		if t := checkKeyWord(l.collected()); t != TokNil {
			l.emit(t)
		}

		for {
			switch r := l.next(); {
			case r == eof:
				return lexEOF
			case unicode.IsSpace(r):
				l.ignore()
			default:
				return lexRpar
			}
		}
	}
	return lexRpar
}

func lexRpar(l *lexer) stateFn {
	l.emit(TokSepRpar)
	return lexExpression
}

// lexQuoted scans a literal value between matching quote symbols
// opening quote has already been consumed
func lexQuoted(quote rune) stateFn {
	return func(l *lexer) stateFn {
		for {
			switch r := l.next(); {
			case r == eof:
				return l.errorf("unterminated quoted literal [%s]", l.input[l.start:])
			case r == quote:
				l.emitQuoted()
				return lexExpression
			}
		}
	}
}

func lexAccumulateBeforeWhitespace(l *lexer) stateFn {
	l.backup()
	// emit any text we've accumulated.
	if l.position > l.start {
		l.emit(checkKeyWord(l.collected()))
	}
	return lexWhitespace
}

// lexWhitespace scans what is expected to be whitespace.
func lexWhitespace(l *lexer) stateFn {
	for {
		switch r := l.next(); {
		case r == eof:
			return lexEOF
		case isQuote(r):
			return lexQuoted(r)
		case !unicode.IsSpace(r):
			l.backup()
			return lexExpression
		default:
			l.ignore()
		}
	}
}

// checkKeyWord resolves an accumulated word to operator and keyword tokens
// anything unrecognized is assumed to be a record field name
func checkKeyWord(in string) Token {
	if len(in) == 0 {
		return TokNil
	}
	switch strings.ToLower(in) {
	case "and":
		return TokKeywordAnd
	case "or":
		return TokKeywordOr
	case "not":
		return TokKeywordNot
	case TokOpIs.Literal():
		return TokOpIs
	case TokOpContains.Literal():
		return TokOpContains
	case TokOpRegexp.Literal():
		return TokOpRegexp
	case TokOpMatches.Literal():
		return TokOpMatches
	default:
		return TokField
	}
}
