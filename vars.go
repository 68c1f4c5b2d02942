package lidrup

// VarTable holds the per-variable and per-literal bookkeeping of spec §3:
// imported flags, assignment values, scratch marks, and the trail. The
// three arrays grow on demand as larger variables are imported: imported
// is indexed by variable, values and marks by signed literal via
// valueIndex below (spec §9's "ℓ → 2|ℓ| + [ℓ<0]" mapping).
type VarTable struct {
	maxVar   int32
	imported []bool // indexed by variable
	values   []int8 // indexed by valueIndex(literal)
	marks    []bool // indexed by valueIndex(literal)
	trail    []Literal
}

// NewVarTable returns an empty table.
func NewVarTable() *VarTable {
	return &VarTable{}
}

// valueIndex maps a literal to a dense non-negative index: ℓ → 2|ℓ| + [ℓ<0].
func valueIndex(l Literal) int {
	v := int(l.Variable())
	if l < 0 {
		return 2*v + 1
	}
	return 2 * v
}

// Grow ensures the tables can address variable v.
func (vt *VarTable) Grow(v int32) {
	if v <= vt.maxVar {
		return
	}
	vt.maxVar = v
	if int(v)+1 > len(vt.imported) {
		imported := make([]bool, v+1)
		copy(imported, vt.imported)
		vt.imported = imported
	}
	need := 2*(int(v)+1) + 2
	if need > len(vt.values) {
		values := make([]int8, need)
		copy(values, vt.values)
		vt.values = values
		marks := make([]bool, need)
		copy(marks, vt.marks)
		vt.marks = marks
	}
}

// Import marks v's variable as having been announced through some literal
// mention, growing the tables if necessary.
func (vt *VarTable) Import(l Literal) {
	v := l.Variable()
	vt.Grow(v)
	vt.imported[v] = true
}

// Imported reports whether variable v has been imported.
func (vt *VarTable) Imported(v int32) bool {
	if int(v) >= len(vt.imported) {
		return false
	}
	return vt.imported[v]
}

// Value returns the assignment of literal l: -1, 0, or +1.
func (vt *VarTable) Value(l Literal) int8 {
	idx := valueIndex(l)
	if idx >= len(vt.values) {
		return 0
	}
	return vt.values[idx]
}

// Satisfied reports whether l is currently assigned true.
func (vt *VarTable) Satisfied(l Literal) bool { return vt.Value(l) > 0 }

// Falsified reports whether l is currently assigned false.
func (vt *VarTable) Falsified(l Literal) bool { return vt.Value(l) < 0 }

// Assigned reports whether l has any assignment.
func (vt *VarTable) Assigned(l Literal) bool { return vt.Value(l) != 0 }

// Assign sets l true (and -l false), pushing l onto the trail. The caller
// must ensure l is not already assigned.
func (vt *VarTable) Assign(l Literal) {
	vt.Grow(l.Variable())
	vt.values[valueIndex(l)] = 1
	vt.values[valueIndex(l.Negate())] = -1
	vt.trail = append(vt.trail, l)
}

// TrailLen returns the number of currently assigned literals.
func (vt *VarTable) TrailLen() int { return len(vt.trail) }

// UndoTo truncates the trail back to length n, unassigning everything
// after it. CheckImplied undoes to the trail length it found on entry,
// which is zero in the checker, so the trail is empty after it returns
// (spec invariant 5).
func (vt *VarTable) UndoTo(n int) {
	for len(vt.trail) > n {
		l := vt.trail[len(vt.trail)-1]
		vt.trail = vt.trail[:len(vt.trail)-1]
		vt.values[valueIndex(l)] = 0
		vt.values[valueIndex(l.Negate())] = 0
	}
}
