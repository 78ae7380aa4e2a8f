package tagger

import "testing"

func TestStringMatchers(t *testing.T) {
	cases := []struct {
		op       Token
		pattern  string
		pos, neg []string
	}{
		{
			op:      TokOpIs,
			pattern: "chrome:history:file_downloaded",
			pos:     []string{"chrome:history:file_downloaded"},
			neg:     []string{"Chrome:History:File_Downloaded", "chrome:history", ""},
		},
		{
			op:      TokOpContains,
			pattern: "LaunchAgents/",
			pos:     []string{"/Users/bob/Library/LaunchAgents/x.plist", "LaunchAgents/"},
			neg:     []string{"/Users/bob/Library/LaunchDaemons/x.plist", "launchagents/"},
		},
		{
			op:      TokOpMatches,
			pattern: "*.plist",
			pos:     []string{"com.apple.FolderActions.plist", "/tmp/a.plist"},
			neg:     []string{"a.plist.bak", "plist"},
		},
		{
			op:      TokOpRegexp,
			pattern: "^HFS_DETECT (crtime|mtime)$",
			pos:     []string{"HFS_DETECT crtime", "HFS_DETECT mtime"},
			neg:     []string{"HFS_DETECT atime", "xHFS_DETECT crtime"},
		},
	}
	for i, c := range cases {
		m, err := newStringMatcher(c.op, c.pattern)
		if err != nil {
			t.Fatalf("matcher case %d failed to build, %s", i, err)
		}
		for j, msg := range c.pos {
			if !m.StringMatch(msg) {
				t.Fatalf("matcher case %d positive %d did not match [%s]", i, j, msg)
			}
		}
		for j, msg := range c.neg {
			if m.StringMatch(msg) {
				t.Fatalf("matcher case %d negative %d matched [%s]", i, j, msg)
			}
		}
	}
}

func TestStringMatcherErrors(t *testing.T) {
	if _, err := newStringMatcher(TokOpRegexp, "[unclosed"); err == nil {
		t.Fatal("broken regex should fail at load time")
	} else if _, ok := err.(ErrInvalidRegex); !ok {
		t.Fatalf("expected ErrInvalidRegex, got %T", err)
	}
	if _, err := newStringMatcher(TokOpMatches, "[unclosed"); err == nil {
		t.Fatal("broken glob should fail at load time")
	} else if _, ok := err.(ErrInvalidGlob); !ok {
		t.Fatalf("expected ErrInvalidGlob, got %T", err)
	}
}

func TestConditionValueCast(t *testing.T) {
	event := DynamicMap{
		"store_number": float64(42),
		"inreport":     true,
	}
	c := Condition{Field: "store_number", S: ContentPattern{Token: "42"}}
	if !c.Match(event) {
		t.Fatal("numeric field should compare through canonical string form")
	}
	c = Condition{Field: "inreport", S: ContentPattern{Token: "true"}}
	if !c.Match(event) {
		t.Fatal("boolean field should compare through canonical string form")
	}
}
