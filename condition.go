package tagger

import (
	"fmt"
	"strconv"
)

// Condition is the atomic field/operator/value test of the rule language
// It is a leaf node in the expression tree
type Condition struct {
	Field string
	S     StringMatcher
}

// Match implements Matcher
// Records from heterogeneous sources may lack fields, so an unknown field
// simply evaluates the condition to false rather than erroring
func (c Condition) Match(e Event) bool {
	val, ok := e.Select(c.Field)
	if !ok {
		return false
	}
	str, ok := castEventValue(val)
	if !ok {
		return false
	}
	return c.S.StringMatch(str)
}

// newCondition builds a leaf matcher from a lexed field/operator/literal triplet
func newCondition(field string, op Token, value string) (Branch, error) {
	m, err := newStringMatcher(op, value)
	if err != nil {
		return nil, err
	}
	return Condition{Field: field, S: m}, nil
}

// castEventValue formats a selected field value for string comparison
// all comparisons in the rule language are on string values, but JSON decoders
// hand out numbers and booleans as distinct types
func castEventValue(val interface{}) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		// JSON numbers are all by spec float64 values
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
