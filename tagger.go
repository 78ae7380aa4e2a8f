package tagger

// Selector provides access to named fields of an arbitrary event
// Used by conditions to extract values for comparison
type Selector interface {
	// Select implements Selector
	Select(string) (interface{}, bool)
}

// Event is any structured record that can be classified
// The engine never reads files or parses logs itself, callers adapt their
// record types by implementing field lookup
type Event interface {
	Selector
}

// Matcher is used for implementing Abstract Syntax Tree for the tag engine
type Matcher interface {
	// Match implements Matcher
	Match(Event) bool
}

// Branch implements Matcher with room for additional methods for walking and
// debugging the tree
type Branch interface {
	Matcher
}
