package lidrup

// Store owns every Clause ever allocated and indexes them by id into the
// active and inactive (weakened) maps of spec §3/§4.2.
//
// The spec's design notes (§9) prescribe an open-addressed table with
// tombstones, 50% load factor, doubling on rehash — a translation of a
// hand-rolled C hash table. Go's built-in map already gives amortized O(1)
// insert/lookup/delete with the same identity semantics, so this is
// implemented with plain maps: the open-addressing structure is a
// mechanism, not an observable behavior, and idiomatic Go reaches for the
// language's own hash map instead of hand-rolling one. See DESIGN.md.
type Store struct {
	vt    *VarTable
	marks *markSet

	active   map[ClauseID]*Clause
	inactive map[ClauseID]*Clause
	inputs   []*Clause // ordered list, retained until teardown, for model checks

	noReuse bool
	used    map[ClauseID]bool // "ever introduced", only populated when noReuse
}

// NewStore returns an empty clause store. vt supplies the shared variable
// table used to test tautology at allocation time.
func NewStore(vt *VarTable, noReuse bool) *Store {
	s := &Store{
		vt:       vt,
		marks:    newMarkSet(vt),
		active:   make(map[ClauseID]*Clause),
		inactive: make(map[ClauseID]*Clause),
		noReuse:  noReuse,
	}
	if noReuse {
		s.used = make(map[ClauseID]bool)
	}
	return s
}

func (s *Store) FindActive(id ClauseID) (*Clause, bool) {
	c, ok := s.active[id]
	return c, ok
}

func (s *Store) FindInactive(id ClauseID) (*Clause, bool) {
	c, ok := s.inactive[id]
	return c, ok
}

// checkFreshID applies the id reuse policy of spec §4.2 before a clause
// carrying id is introduced.
func (s *Store) checkFreshID(id ClauseID, pos Position, raw string) error {
	if s.noReuse {
		if s.used[id] {
			return lineErrorf(pos, raw, "clause id %d reused (no-reuse is set)", id)
		}
		return nil
	}
	if _, ok := s.active[id]; ok {
		return lineErrorf(pos, raw, "clause id %d already active", id)
	}
	if _, ok := s.inactive[id]; ok {
		return lineErrorf(pos, raw, "clause id %d already weakened", id)
	}
	return nil
}

// Insert allocates and inserts a clause into the active set, enforcing the
// id-reuse policy of spec §4.2.
func (s *Store) Insert(id ClauseID, line int, input bool, lits []Literal, pos Position, raw string) (*Clause, error) {
	if err := s.checkFreshID(id, pos, raw); err != nil {
		return nil, err
	}
	c := newClause(id, line, input, lits, s.marks)
	s.active[id] = c
	if s.noReuse {
		s.used[id] = true
	}
	if input {
		s.inputs = append(s.inputs, c)
	}
	return c, nil
}

// Delete removes c from the active set. Input clauses are retained (spec
// §3 invariant: "input clauses are never freed until global teardown");
// learned clauses are simply dropped, Go's GC reclaiming them once
// unreferenced.
func (s *Store) Delete(c *Clause) {
	delete(s.active, c.ID)
}

// Weaken moves c from active to inactive.
func (s *Store) Weaken(c *Clause) {
	delete(s.active, c.ID)
	c.Weakened = true
	s.inactive[c.ID] = c
}

// Restore moves c from inactive back to active.
func (s *Store) Restore(c *Clause) {
	delete(s.inactive, c.ID)
	c.Weakened = false
	s.active[c.ID] = c
}

// Inputs returns the ordered list of every input clause ever introduced,
// for model verification (spec §4.6).
func (s *Store) Inputs() []*Clause { return s.inputs }
