package tagger

import (
	"errors"
	"fmt"
)

type parser struct {
	// lexer that tokenizes input string
	lex *lexer

	tokens []Item
	// memorize last token to validate proper sequence
	// for example, two conditions have to be joined via logical AND or OR,
	// otherwise the sequence is invalid
	previous Item

	// for debug
	expression string

	// resulting branch that can be collected later
	result Branch
}

func (p *parser) run() error {
	if p.lex == nil {
		return fmt.Errorf("cannot run expression parser, lexer not initialized")
	}
	// Pass 1: collect tokens and do basic sequence validation
	if err := p.collect(); err != nil {
		return err
	}
	// Pass 2: build the tree
	b, err := newBranch(p.tokens, 0)
	if err != nil {
		return err
	}
	p.result = b
	return nil
}

// collect gathers all items from lexer and does preliminary sequence validation
func (p *parser) collect() error {
	p.previous = Item{T: TokBegin}
	for item := range p.lex.items {
		if item.T == TokErr {
			return errors.New(item.Val)
		}
		if !validTokenSequence(p.previous.T, item.T) {
			return ErrInvalidTokenSeq{
				Prev:      p.previous,
				Next:      item,
				Collected: p.tokens,
			}
		}
		if item.T != TokLitEof {
			p.tokens = append(p.tokens, item)
		}
		p.previous = item
	}
	if p.previous.T != TokLitEof {
		return ErrIncompleteTokenSeq{
			Expression: p.expression,
			Items:      p.tokens,
			Last:       p.previous,
		}
	}
	return nil
}

// genItems feeds a collected token list to tree builders one item at a time
func genItems(t []Item) <-chan Item {
	tx := make(chan Item, 0)
	go func(rx []Item) {
		for _, item := range rx {
			tx <- item
		}
		close(tx)
	}(t)
	return tx
}

// newBranch builds a binary tree from token list
// sequence and group validation should be done before invoking newBranch
func newBranch(t []Item, depth int) (Branch, error) {
	rx := genItems(t)

	and := make(NodeSimpleAnd, 0)
	or := make(NodeSimpleOr, 0)
	var negated bool

	for item := range rx {
		switch item.T {
		case TokField:
			op, ok := <-rx
			if !ok || !op.T.IsOperator() {
				return nil, ErrMissingExpression{Field: item.Val, Last: op.T}
			}
			lit, ok := <-rx
			if !ok || lit.T != TokLiteral {
				return nil, ErrMissingExpression{Field: item.Val, Last: lit.T}
			}
			b, err := newCondition(item.Val, op.T, lit.Val)
			if err != nil {
				return nil, err
			}
			and = append(and, newNodeNotIfNegated(b, negated))
			negated = false
		case TokKeywordAnd:
			// no need to do anything special here
		case TokKeywordOr:
			// fill OR gate with collected AND nodes
			// reduce will strip AND logic if only one token has been collected
			or = append(or, and.Reduce())
			// reset existing AND collector
			and = make(NodeSimpleAnd, 0)
		case TokKeywordNot:
			negated = true
		case TokSepLpar:
			// recursively create new branch and append to existing list
			// then skip to next token after grouping
			b, err := newBranch(extractGroup(rx), depth+1)
			if err != nil {
				return nil, err
			}
			and = append(and, newNodeNotIfNegated(b, negated))
			negated = false
		case TokSepRpar:
			return nil, fmt.Errorf("parser error, should not see %s",
				TokSepRpar)
		default:
			return nil, ErrUnsupportedToken{
				Msg: fmt.Sprintf("%s | %s", item.T, item.T.Literal()),
			}
		}
	}
	or = append(or, newNodeNotIfNegated(and.Reduce(), negated))

	return or.Reduce(), nil
}

func extractGroup(rx <-chan Item) []Item {
	// fn is called when newBranch hits TokSepLpar
	// it will be consumed, so balance is already 1
	balance := 1
	group := make([]Item, 0)
	for item := range rx {
		if balance > 0 {
			group = append(group, item)
		}
		switch item.T {
		case TokSepLpar:
			balance++
		case TokSepRpar:
			balance--
			if balance == 0 {
				return group[:len(group)-1]
			}
		default:
		}
	}
	return group
}
