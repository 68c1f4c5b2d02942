package lidrup

// markSet implements the shared-marks-array set utilities of spec §4.3 on
// top of VarTable.marks. It is used for equality/subset/tautology tests
// outside the propagator (saved-line comparisons, input-clause tautology
// detection at allocation); the RUP propagator works on VarTable.values
// and never touches the marks. Every markSet operation balances mark with
// unmark, so the array is clean again when it returns (§4.3, §9).
type markSet struct {
	vt *VarTable
}

func newMarkSet(vt *VarTable) *markSet { return &markSet{vt: vt} }

func (m *markSet) mark(seq []Literal) {
	for _, l := range seq {
		m.vt.Grow(l.Variable())
		m.vt.marks[valueIndex(l)] = true
	}
}

func (m *markSet) unmark(seq []Literal) {
	for _, l := range seq {
		m.vt.marks[valueIndex(l)] = false
	}
}

func (m *markSet) marked(l Literal) bool {
	idx := valueIndex(l)
	if idx >= len(m.vt.marks) {
		return false
	}
	return m.vt.marks[idx]
}

// subset reports whether every literal of a is marked by b.
func (m *markSet) subset(a, b []Literal) bool {
	m.mark(b)
	ok := true
	for _, l := range a {
		if !m.marked(l) {
			ok = false
			break
		}
	}
	m.unmark(b)
	return ok
}

// equal reports set equality of a and b via two subset tests (spec §4.3).
func (m *markSet) equal(a, b []Literal) bool {
	return m.subset(a, b) && m.subset(b, a)
}

// isTautological reports whether seq contains some variable with both
// polarities.
func (m *markSet) isTautological(seq []Literal) bool {
	m.mark(seq)
	taut := false
	for _, l := range seq {
		if m.marked(l.Negate()) {
			taut = true
			break
		}
	}
	m.unmark(seq)
	return taut
}

// isConsistent reports whether no variable appears with both polarities.
func (m *markSet) isConsistent(seq []Literal) bool {
	return !m.isTautological(seq)
}

// isConsistentWithSaved reports whether no literal of seq clashes (appears
// negated) in saved.
func (m *markSet) isConsistentWithSaved(seq, saved []Literal) bool {
	m.mark(saved)
	ok := true
	for _, l := range seq {
		if m.marked(l.Negate()) {
			ok = false
			break
		}
	}
	m.unmark(saved)
	return ok
}
