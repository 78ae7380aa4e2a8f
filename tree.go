package tagger

// Tree represents the full AST for a single category
type Tree struct {
	Root     Branch
	Category *CategoryHandle
}

// Match implements Matcher
// A category with no expressions never matches
func (t Tree) Match(e Event) bool {
	if t.Root == nil {
		return false
	}
	return t.Root.Match(e)
}

// Eval returns a Result on positive match
func (t Tree) Eval(e Event) (*Result, bool) {
	if !t.Match(e) {
		return nil, false
	}
	if t.Category == nil {
		return &Result{}, true
	}
	return &Result{
		Name: t.Category.Name,
		Path: t.Category.Path,
	}, true
}

// NewTree parses a raw category into an abstract syntax tree
// Each expression line becomes a separate branch, lines are joined with
// logical disjunction
func NewTree(c CategoryHandle) (*Tree, error) {
	or := make(NodeSimpleOr, 0, len(c.Expressions))
	for _, expr := range c.Expressions {
		p := &parser{
			lex:        lex(expr.Raw),
			expression: expr.Raw,
		}
		if err := p.run(); err != nil {
			return nil, ErrParse{
				Path: c.Path,
				Line: expr.Line,
				Expr: expr.Raw,
				Err:  err,
			}
		}
		or = append(or, p.result)
	}
	t := &Tree{Category: &c}
	if len(or) > 0 {
		t.Root = or.Reduce()
	}
	return t, nil
}
