package dfa

// Runner drives an Automaton one byte at a time, tracking the current
// state and whether that state is a dead end. It is grounded on
// _examples/nihei9-vartan/driver/lexer/lexer.go's single-state-plus-
// "stuck" bookkeeping, generalized so a caller (the scanner) can run
// several Runners over the same input in lockstep.
type Runner struct {
	automaton *Automaton
	state     State
	errored   bool
}

// NewRunner returns a Runner positioned at automaton's initial state.
func NewRunner(automaton *Automaton) *Runner {
	r := &Runner{automaton: automaton}
	r.Reset()
	return r
}

// Reset returns the runner to the automaton's initial state and clears
// the errored flag.
func (r *Runner) Reset() {
	r.state = r.automaton.Initial
	r.errored = false
}

// Step advances the runner by one input byte. Once a runner has
// entered the error state, Step is a no-op; it only ever leaves the
// error state via Reset.
func (r *Runner) Step(b byte) {
	if r.errored {
		return
	}
	next := r.automaton.Step(r.state, b)
	if next == Invalid {
		r.errored = true
		return
	}
	r.state = next
}

// Errored reports whether the runner has no valid transition for some
// byte it was given and cannot make further progress.
func (r *Runner) Errored() bool {
	return r.errored
}

// Accepting reports whether the runner's current state accepts, and if
// so the leaf position recorded for that state. scanner.go uses only
// the boolean; it breaks ties between DFAs by declaration order.
func (r *Runner) Accepting() (int, bool) {
	if r.errored {
		return 0, false
	}
	return r.automaton.Accepting(r.state)
}

// Run resets the runner and feeds it every byte of input in order,
// stopping early if the runner errors. It reports whether input was
// accepted as a complete match.
func (r *Runner) Run(input []byte) bool {
	r.Reset()
	for _, b := range input {
		r.Step(b)
		if r.errored {
			return false
		}
	}
	_, ok := r.Accepting()
	return ok
}
