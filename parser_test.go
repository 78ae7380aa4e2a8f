package tagger

import (
	"strings"
	"testing"
)

var parseNegCases = []struct {
	ID    int
	Rules string
}{
	{
		// missing operator
		ID: 1,
		Rules: `Broken
  filename 'LaunchAgents/'
`,
	},
	{
		// missing literal
		ID: 2,
		Rules: `Broken
  filename contains
`,
	},
	{
		// dangling logical operator
		ID: 3,
		Rules: `Broken
  data_type is 'syslog:line' AND
`,
	},
	{
		// two conditions without a joining keyword
		ID: 4,
		Rules: `Broken
  data_type is 'syslog:line' filename contains 'auth'
`,
	},
	{
		// unterminated quote
		ID: 5,
		Rules: `Broken
  body contains 'Deny
`,
	},
	{
		// broken regular expression
		ID: 6,
		Rules: `Broken
  body regexp '[unclosed'
`,
	},
	{
		// unquoted literal
		ID: 7,
		Rules: `Broken
  data_type is syslog
`,
	},
}

func TestTreeParseNegative(t *testing.T) {
	for _, c := range parseNegCases {
		categories, err := readTagRules(strings.NewReader(c.Rules), "test")
		if err != nil {
			t.Fatalf("parse negative case %d failed to read raw categories, %s", c.ID, err)
		}
		_, err = NewTree(categories[0])
		if err == nil {
			t.Fatalf("parse negative case %d should have failed", c.ID)
		}
		pe, ok := err.(ErrParse)
		if !ok {
			t.Fatalf("parse negative case %d should return ErrParse, got %T", c.ID, err)
		}
		if pe.Line != 2 {
			t.Fatalf("parse negative case %d should point at line 2, got %d", c.ID, pe.Line)
		}
		if pe.Path != "test" {
			t.Fatalf("parse negative case %d lost file context, got %s", c.ID, pe.Path)
		}
	}
}

func TestTokenSequenceValidation(t *testing.T) {
	p := &parser{
		lex:        lex("AND data_type is 'x'"),
		expression: "AND data_type is 'x'",
	}
	err := p.run()
	if err == nil {
		t.Fatal("leading AND should fail sequence validation")
	}
	if _, ok := err.(ErrInvalidTokenSeq); !ok {
		t.Fatalf("expected ErrInvalidTokenSeq, got %T", err)
	}
}

func TestExtractGroup(t *testing.T) {
	expr := "(a is 'x' AND (b is 'y' OR c is 'z')) AND d is 'w'"
	p := &parser{
		lex:        lex(expr),
		expression: expr,
	}
	if err := p.run(); err != nil {
		t.Fatalf("nested grouping failed to parse, %s", err)
	}
	if p.result == nil {
		t.Fatal("parser did not produce a result branch")
	}
}
