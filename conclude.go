package lidrup

// This file implements the conclusion checks of spec §4.6: verifying that a
// SATISFIABLE or UNSATISFIABLE verdict is actually justified by the model,
// values, core, or failed-assumption lines that accompany it.

// modelSatisfiesQuery reports whether every assumption literal of query
// appears positively in model (spec §4.6, interaction `m`).
func modelSatisfiesQuery(m *markSet, model, query []Literal) bool {
	m.mark(model)
	ok := true
	for _, l := range query {
		if !m.marked(l) {
			ok = false
			break
		}
	}
	m.unmark(model)
	return ok
}

// modelSatisfiesInputs reports whether every non-tautological input clause
// has some literal appearing in model (spec §4.6).
func modelSatisfiesInputs(m *markSet, model []Literal, inputs []*Clause) (bool, *Clause) {
	m.mark(model)
	defer m.unmark(model)
	for _, c := range inputs {
		if c.Tautological {
			continue
		}
		satisfied := false
		for _, l := range c.Literals {
			if m.marked(l) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false, c
		}
	}
	return true, nil
}

// CheckInteractionModel verifies an interaction `m` line (spec §4.6):
// consistent, satisfies the current query's assumptions, and satisfies
// every input clause.
func CheckInteractionModel(m *markSet, store *Store, query, model []Literal, pos Position, raw string) error {
	if !m.isConsistent(model) {
		return checkErrorf(pos, "model is inconsistent")
	}
	if !modelSatisfiesQuery(m, model, query) {
		return checkErrorf(pos, "model does not satisfy query assumptions")
	}
	if ok, bad := modelSatisfiesInputs(m, model, store.Inputs()); !ok {
		return checkErrorf(pos, "model does not satisfy input clause %d (line %d)", bad.ID, bad.Line)
	}
	return nil
}

// CheckInteractionValues verifies an interaction `v` line: consistency
// only (spec §4.6).
func CheckInteractionValues(m *markSet, values []Literal, pos Position) error {
	if !m.isConsistent(values) {
		return checkErrorf(pos, "values are inconsistent")
	}
	return nil
}

// CheckProofModel verifies a proof `m` line equals the saved interaction
// line by set equality (spec §4.6).
func CheckProofModel(m *markSet, saved, proofModel []Literal, pos Position) error {
	if !m.equal(saved, proofModel) {
		return checkErrorf(pos, "proof model does not match interaction model %s", literalSetDiff(saved, proofModel))
	}
	return nil
}

// CheckInteractionCore verifies an interaction `u` line: consistent, and a
// subset of the current query (spec §4.6).
func CheckInteractionCore(m *markSet, query, core []Literal, pos Position) error {
	if !m.isConsistent(core) {
		return checkErrorf(pos, "core is inconsistent")
	}
	if !m.subset(core, query) {
		return checkErrorf(pos, "core is not a subset of the query")
	}
	return nil
}

// CheckInteractionFailed verifies an interaction `f` line: consistent, and
// every literal's *variable* belongs to the query, though not necessarily
// with the matching polarity (spec §4.6).
func CheckInteractionFailed(m *markSet, query, failed []Literal, pos Position) error {
	if !m.isConsistent(failed) {
		return checkErrorf(pos, "failed-assumption set is inconsistent")
	}
	for _, l := range failed {
		found := false
		for _, q := range query {
			if q.Variable() == l.Variable() {
				found = true
				break
			}
		}
		if !found {
			return checkErrorf(pos, "failed literal %d is not a query variable", l)
		}
	}
	return nil
}

// ProofCoreCheck bundles the inputs to CheckProofCore, since the exact
// comparisons it runs depend on what was saved on the interaction side
// (spec §4.6).
type ProofCoreCheck struct {
	Query       []Literal
	Core        []Literal
	Antecedents []int64
	// SavedType is the type of the most recent interaction conclusion
	// line for this query: LineUnsatCore ('u') or LineFailed ('f').
	SavedType LineType
	Saved     []Literal
}

// CheckProofCore verifies a proof `u` line per spec §4.6: the core is a
// subset of the query; if the interaction saved a `u`, set equality with
// it; if it saved an `f`, the "failed literals match core" rule; and
// finally a RUP check with σ = -1 must derive a conflict from the listed
// antecedents.
func CheckProofCore(store *Store, vt *VarTable, m *markSet, c ProofCoreCheck, pos Position, raw string, alreadyInconsistent bool) error {
	if !m.subset(c.Core, c.Query) {
		return checkErrorf(pos, "proof core is not a subset of the query")
	}

	switch c.SavedType {
	case LineUnsatCore:
		if !m.equal(c.Core, c.Saved) {
			return checkErrorf(pos, "proof core does not match interaction core %s", literalSetDiff(c.Saved, c.Core))
		}
	case LineFailed:
		// "a literal of the proof's core must not appear with the
		// opposite sign in the f line" (spec §4.6, §9: conservative by
		// the spec's own admission).
		m.mark(c.Saved)
		clash := false
		for _, l := range c.Core {
			if m.marked(l.Negate()) {
				clash = true
				break
			}
		}
		m.unmark(c.Saved)
		if clash {
			return checkErrorf(pos, "proof core conflicts with failed-assumption set")
		}
	}

	return CheckImplied(store, vt, c.Core, c.Antecedents, -1, pos, raw, alreadyInconsistent)
}
