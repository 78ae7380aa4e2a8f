package tagger

import (
	"fmt"
	"os"
)

// Config is used as argument to creating a new ruleset
type Config struct {
	// root directories for recursive tag file search
	// rules must be readable files with "txt", "yml" or "yaml" suffix
	Directory []string
}

func (c Config) validate() error {
	if c.Directory == nil || len(c.Directory) == 0 {
		return fmt.Errorf("missing root directory for tag rules")
	}
	for _, dir := range c.Directory {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", dir)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	return nil
}

// Ruleset is a read-only collection of parsed categories
// safe to share between goroutines once constructed
type Ruleset struct {
	Rules []*Tree
	root  []string

	Files, Total, Ok int
}

// NewRuleset instanciates a Ruleset object
// Any malformed expression aborts the load, the caller never gets a
// partially loaded rule set
func NewRuleset(c Config) (*Ruleset, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	files, err := NewRuleFileList(c.Directory)
	if err != nil {
		return nil, err
	}
	categories, err := NewCategoryList(files, false)
	if err != nil {
		return nil, err
	}
	set := make([]*Tree, 0, len(categories))
	for _, raw := range categories {
		tree, err := NewTree(raw)
		if err != nil {
			return nil, err
		}
		set = append(set, tree)
	}
	return &Ruleset{
		root:  c.Directory,
		Rules: set,
		Files: len(files),
		Total: len(categories),
		Ok:    len(set),
	}, nil
}

// EvalAll matches a single record against all categories
func (r Ruleset) EvalAll(e Event) (Results, bool) {
	results := make(Results, 0)
	for _, rule := range r.Rules {
		if res, match := rule.Eval(e); match {
			results = append(results, *res)
		}
	}
	if len(results) > 0 {
		return results, true
	}
	return nil, false
}

// Tags returns plain category labels for a matched record
func (r Ruleset) Tags(e Event) []string {
	results, ok := r.EvalAll(e)
	if !ok {
		return nil
	}
	return results.Tags()
}
