package grammar

import "fmt"

// ErrGrammarMalformed is the sentinel wrapped by every construction
// error this package returns (a name registered as both a terminal and
// a non-terminal, a production with a bad LHS or a nil RHS symbol, a
// duplicate production, a start symbol that is missing or does not
// have exactly one production).
// It corresponds to the GrammarMalformed diagnostic kind; callers that
// need a rendered location wrap it into a coolerr.SpecError themselves.
var ErrGrammarMalformed = fmt.Errorf("malformed grammar")
