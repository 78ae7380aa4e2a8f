package tagger

import "testing"

type LexTestCase struct {
	Expr   string
	Tokens []Token
}

var LexPosCases = []LexTestCase{
	{
		Expr:   "data_type is 'chrome:history:file_downloaded'",
		Tokens: []Token{TokField, TokOpIs, TokLiteral, TokLitEof},
	},
	{
		Expr: "filename contains 'LaunchAgents/' AND timestamp_desc is 'HFS_DETECT crtime'",
		Tokens: []Token{
			TokField,
			TokOpContains,
			TokLiteral,
			TokKeywordAnd,
			TokField,
			TokOpIs,
			TokLiteral,
			TokLitEof,
		},
	},
	{
		Expr: `(data_type is 'syslog:line' OR plugin is "firewall") AND NOT body contains 'Deny'`,
		Tokens: []Token{
			TokSepLpar,
			TokField,
			TokOpIs,
			TokLiteral,
			TokKeywordOr,
			TokField,
			TokOpIs,
			TokLiteral,
			TokSepRpar,
			TokKeywordAnd,
			TokKeywordNot,
			TokField,
			TokOpContains,
			TokLiteral,
			TokLitEof,
		},
	},
	{
		Expr: "body regexp 'IP: [0-9.]+' OR filename matches '*/LaunchDaemons/*.plist'",
		Tokens: []Token{
			TokField,
			TokOpRegexp,
			TokLiteral,
			TokKeywordOr,
			TokField,
			TokOpMatches,
			TokLiteral,
			TokLitEof,
		},
	},
}

func TestLex(t *testing.T) {
	for j, c := range LexPosCases {
		l := lex(c.Expr)
		var i int
		for item := range l.items {
			if item.T != c.Tokens[i] {
				t.Fatalf(
					"lex case %d expr %s failed on item %d expected %s got %s",
					j, c.Expr, i, c.Tokens[i].String(), item.T.String())
			}
			i++
		}
		if i != len(c.Tokens) {
			t.Fatalf("lex case %d expr %s got %d tokens, expected %d",
				j, c.Expr, i, len(c.Tokens))
		}
	}
}

func TestLexLiteralQuoteStrip(t *testing.T) {
	l := lex("timestamp_desc is 'HFS_DETECT crtime'")
	for item := range l.items {
		if item.T == TokLiteral && item.Val != "HFS_DETECT crtime" {
			t.Fatalf("literal quote strip failed, got [%s]", item.Val)
		}
	}
}

func TestLexUnterminatedQuote(t *testing.T) {
	l := lex("filename contains 'LaunchAgents/")
	var sawErr bool
	for item := range l.items {
		if item.T == TokErr {
			sawErr = true
		}
	}
	if !sawErr {
		t.Fatal("unterminated quote should emit an error token")
	}
}
