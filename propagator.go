package lidrup

// CheckImplied is the RUP propagator of spec §4.4 ("check_implied"). It
// assumes the negation of lits (scaled by sign) and replays antecedents in
// the exact order given, looking for a conflict.
//
//   - sign == +1 assigns -ℓ for each ℓ in lits (lemma / learned-clause
//     check): the candidate clause itself is negated.
//   - sign == -1 assigns +ℓ for each ℓ in lits (unsat-core check, spec
//     §4.6: "σ = -1, each core literal is assigned positively").
//
// alreadyInconsistent short-circuits to success per step 1 ("If the formula
// is already inconsistent, return success without work") — set once an
// empty clause has been derived (see Checker.formulaInconsistent).
//
// Upon return, every assignment CheckImplied made is unwound: the trail is
// restored to the length it had on entry (spec invariant 5), on every
// return path including errors. The propagator never uses watched
// literals: the antecedent list fixes the replay order, and every
// antecedent is visited exactly once (spec §4.4).
func CheckImplied(store *Store, vt *VarTable, lits []Literal, antecedents []int64, sign int8, pos Position, raw string, alreadyInconsistent bool) error {
	if alreadyInconsistent {
		return nil
	}

	trailStart := vt.TrailLen()
	defer vt.UndoTo(trailStart)

	for _, l := range lits {
		target := l
		if sign > 0 {
			target = l.Negate()
		}
		vt.Grow(target.Variable())
		if vt.Satisfied(target) {
			continue // duplicate literal already assigned, no-op
		}
		if vt.Falsified(target) {
			// Conflict with an already-true literal: the candidate line
			// is tautological and trivially implied (spec §4.4 step 2).
			return nil
		}
		vt.Assign(target)
	}

	for _, raw64 := range antecedents {
		if raw64 <= 0 {
			return lineErrorf(pos, raw, "antecedent id %d is non-positive", raw64)
		}
		id := ClauseID(raw64)

		ante, ok := store.FindActive(id)
		if !ok {
			if _, inactive := store.FindInactive(id); inactive {
				return lineErrorf(pos, raw, "antecedent %d weakened", id)
			}
			return lineErrorf(pos, raw, "could not find antecedent %d", id)
		}

		var unit Literal
		haveUnit := false
		conflict := true
		for _, l := range ante.Literals {
			if vt.Falsified(l) {
				continue
			}
			conflict = false
			if haveUnit && l != unit {
				return lineErrorf(pos, raw, "antecedent %d not resolvable", id)
			}
			unit = l
			haveUnit = true
		}

		if conflict {
			// Antecedent fully falsified: RUP check succeeded.
			return nil
		}

		if !vt.Satisfied(unit) {
			vt.Assign(unit)
		}
	}

	return lineErrorf(pos, raw, "resolution check failed")
}
