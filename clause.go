package lidrup

// Clause is an immutable-after-creation record (spec §3): once allocated,
// its literal sequence and Tautological flag never change. Weakened is the
// one mutable field, toggled by Store.Weaken/Restore.
type Clause struct {
	ID           ClauseID
	Line         int // originating line number, for diagnostics
	Input        bool
	Weakened     bool
	Tautological bool
	Literals     []Literal
}

// newClause allocates a Clause, computing its Tautological flag once at
// creation time (spec §3).
func newClause(id ClauseID, line int, input bool, lits []Literal, marks *markSet) *Clause {
	return &Clause{
		ID:           id,
		Line:         line,
		Input:        input,
		Tautological: marks.isTautological(lits),
		Literals:     lits,
	}
}
