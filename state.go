package lidrup

// This file implements the checker state machine of spec §4.5: a finite
// state machine that selects a stream, reads one line, matches its type,
// and transitions. Unexpected types, or premature EOF, are parse-errors
// naming the expected types.

var interactionCtx = StreamContext{InputHasID: false, CoreHasAntecedents: false}
var proofCtx = StreamContext{InputHasID: true, CoreHasAntecedents: true}

// csState enumerates the two-stream state graph of spec §4.5.
type csState int

const (
	stInteractionInput csState = iota
	stProofInput
	stProofQuery
	stProofCheck
	stInteractionPropagate
	stInteractionStatus
	stInteractionSatisfied
	stInteractionUnsatisfied
	stProofModel
	stProofCore
	stEnd
)

// Checker drives the parser state machine, the clause store, and the RUP
// propagator over one or two synchronized input streams (spec §4.5, §5).
// It owns every process-wide singleton the spec calls for: the clause
// store, the variable table, the saved-line and query buffers, and the
// statistics counters.
type Checker struct {
	vt    *VarTable
	marks *markSet
	store *Store
	stats *Stats
	opts  Options

	interaction *Lexer // nil in single-file mode
	proof       *Lexer

	savedInteraction Line // most recent interaction i/q line
	query            []Literal
	queryOpen        bool

	lastConclType LineType // LineModel/LineValues/LineUnsatCore/LineFailed
	lastConclLits []Literal

	pendingProofInput Line   // saved mid-query proof `i` awaiting interaction confirmation
	pendingStatus     Status // saved proof status awaiting interaction confirmation

	// proofLookahead holds a proof line already read and classified by a
	// relaxed-mode conclusion step that turned out not to be the m/u line
	// it was hoping for, so the next readProof call must return it instead
	// of consuming a fresh line from the lexer (spec §4.5 relaxed mode).
	proofLookahead *Line

	formulaInconsistent bool
}

// NewChecker constructs a Checker. proof must be non-nil; interaction is
// nil for single-file mode.
func NewChecker(interaction, proof *Lexer, opts Options, stats *Stats) *Checker {
	vt := NewVarTable()
	return &Checker{
		vt:          vt,
		marks:       newMarkSet(vt),
		store:       NewStore(vt, opts.NoReuse),
		stats:       stats,
		opts:        opts,
		interaction: interaction,
		proof:       proof,
	}
}

func (c *Checker) readInteraction(defaultType LineType, ctx StreamContext) (Line, error) {
	line, err := c.interaction.ReadLine(defaultType, ctx)
	if err != nil {
		return Line{}, err
	}
	c.stats.countLine("interaction")
	c.vt.importLine(line)
	return line, nil
}

func (c *Checker) readProof(defaultType LineType, ctx StreamContext) (Line, error) {
	if c.proofLookahead != nil {
		line := *c.proofLookahead
		c.proofLookahead = nil
		return line, nil
	}
	line, err := c.proof.ReadLine(defaultType, ctx)
	if err != nil {
		return Line{}, err
	}
	c.stats.countLine("proof")
	c.vt.importLine(line)
	return line, nil
}

// importLine imports every variable mentioned by line's literals, so later
// lookups (Grow/Imported) never need an extra pass.
func (vt *VarTable) importLine(l Line) {
	for _, lit := range l.Literals {
		vt.Import(lit)
	}
}

// Run executes the checker end to end: header negotiation, the main
// two-stream (or single-file) loop, and the final idle-query check.
func (c *Checker) Run() error {
	if c.interaction == nil {
		return c.runSingleFile()
	}
	return c.runTwoStream()
}

// peekIsHeader reports whether the next byte of lx begins a `p` header
// line, without consuming anything (headers are optional in strict mode,
// so the caller must be able to skip straight to data lines).
func peekIsHeader(lx *Lexer) (bool, error) {
	c, err := lx.peekByte()
	if err != nil {
		return false, err
	}
	return c == 'p', nil
}

func (c *Checker) maybeReadHeader(lx *Lexer, ctx StreamContext, stream string, want HeaderKind) error {
	isHeader, err := peekIsHeader(lx)
	if err != nil {
		return err
	}
	if !isHeader {
		if c.opts.Mode == ModePedantic {
			return parseErrorf(lx.pos(), "%s stream missing required header", stream)
		}
		return nil
	}
	line, err := lx.ReadLine(0, ctx)
	if err != nil {
		return err
	}
	c.stats.countLine(stream)
	if line.Header != want {
		return parseErrorf(line.Pos, "%s stream has wrong header kind", stream)
	}
	return nil
}

func (c *Checker) runTwoStream() error {
	if err := c.maybeReadHeader(c.interaction, interactionCtx, "interaction", HeaderICNF); err != nil {
		return err
	}
	if err := c.maybeReadHeader(c.proof, proofCtx, "proof", HeaderLIDRUP); err != nil {
		return err
	}

	state := stInteractionInput
	for {
		switch state {
		case stInteractionInput:
			next, err := c.stepInteractionInput()
			if err != nil {
				return err
			}
			state = next

		case stProofInput:
			next, err := c.stepProofInput()
			if err != nil {
				return err
			}
			state = next

		case stProofQuery:
			next, err := c.stepProofQuery()
			if err != nil {
				return err
			}
			state = next

		case stProofCheck:
			next, err := c.stepProofCheck()
			if err != nil {
				return err
			}
			state = next

		case stInteractionPropagate:
			next, err := c.stepInteractionPropagate()
			if err != nil {
				return err
			}
			state = next

		case stInteractionStatus:
			next, err := c.stepInteractionStatus()
			if err != nil {
				return err
			}
			state = next

		case stInteractionSatisfied:
			next, err := c.stepInteractionSatisfied()
			if err != nil {
				return err
			}
			state = next

		case stInteractionUnsatisfied:
			next, err := c.stepInteractionUnsatisfied()
			if err != nil {
				return err
			}
			state = next

		case stProofModel:
			next, err := c.stepProofModel()
			if err != nil {
				return err
			}
			state = next

		case stProofCore:
			next, err := c.stepProofCore()
			if err != nil {
				return err
			}
			state = next

		case stEnd:
			if c.queryOpen {
				return fatalErrorf(Position{}, "interaction stream ended with an open query")
			}
			return nil

		default:
			return fatalErrorf(Position{}, "state machine fell through")
		}
	}
}

func (c *Checker) stepInteractionInput() (csState, error) {
	line, err := c.readInteraction(LineInput, interactionCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineInput:
		c.savedInteraction = line
		return stProofInput, nil
	case LineQuery:
		c.savedInteraction = line
		c.query = line.Literals
		c.queryOpen = true
		c.stats.Queries++
		return stProofQuery, nil
	case LineEOF:
		return stEnd, nil
	default:
		return 0, parseErrorf(line.Pos, "expected i, q, or EOF in interaction, got %q", line.Type)
	}
}

func (c *Checker) stepProofInput() (csState, error) {
	line, err := c.readProof(LineInput, proofCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineInput:
		if !c.marks.equal(line.Literals, c.savedInteraction.Literals) {
			return 0, checkErrorf(line.Pos, "proof input clause does not match interaction input %s",
				literalSetDiff(c.savedInteraction.Literals, line.Literals))
		}
		if _, err := c.store.Insert(line.ID, line.Pos.Line, true, line.Literals, line.Pos, line.Raw); err != nil {
			return 0, err
		}
		c.stats.InputClauses++
		return stInteractionInput, nil
	case LineLemma, LineDelete, LineWeaken, LineRestore:
		if err := c.processProofLine(line); err != nil {
			return 0, err
		}
		return stProofInput, nil
	default:
		return 0, parseErrorf(line.Pos, "expected i, l, d, w, or r in proof, got %q", line.Type)
	}
}

func (c *Checker) stepProofQuery() (csState, error) {
	line, err := c.readProof(LineLemma, proofCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineQuery:
		if !c.marks.equal(line.Literals, c.query) {
			return 0, checkErrorf(line.Pos, "proof query does not match interaction query %s",
				literalSetDiff(c.query, line.Literals))
		}
		c.query = line.Literals
		return stProofCheck, nil
	case LineLemma, LineDelete, LineWeaken, LineRestore:
		if err := c.processProofLine(line); err != nil {
			return 0, err
		}
		return stProofQuery, nil
	default:
		return 0, parseErrorf(line.Pos, "expected q, l, d, w, or r in proof, got %q", line.Type)
	}
}

func (c *Checker) stepProofCheck() (csState, error) {
	line, err := c.readProof(LineLemma, proofCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineLemma, LineDelete, LineWeaken, LineRestore:
		if err := c.processProofLine(line); err != nil {
			return 0, err
		}
		return stProofCheck, nil
	case LineInput:
		c.pendingProofInput = line
		return stInteractionPropagate, nil
	case LineStatus:
		switch line.Status {
		case StatusSatisfiable, StatusUnsatisfiable, StatusUnknown:
			c.pendingStatus = line.Status
			return stInteractionStatus, nil
		default:
			return 0, parseErrorf(line.Pos, "unknown status")
		}
	default:
		return 0, parseErrorf(line.Pos, "expected l, d, w, r, i, or s in proof, got %q", line.Type)
	}
}

func (c *Checker) stepInteractionPropagate() (csState, error) {
	line, err := c.readInteraction(LineInput, interactionCtx)
	if err != nil {
		return 0, err
	}
	if line.Type != LineInput {
		return 0, parseErrorf(line.Pos, "expected i in interaction, got %q", line.Type)
	}
	if !c.marks.equal(line.Literals, c.pendingProofInput.Literals) {
		return 0, checkErrorf(line.Pos, "interaction input clause does not match proof input %s",
			literalSetDiff(c.pendingProofInput.Literals, line.Literals))
	}
	if _, err := c.store.Insert(c.pendingProofInput.ID, c.pendingProofInput.Pos.Line, true, c.pendingProofInput.Literals,
		c.pendingProofInput.Pos, c.pendingProofInput.Raw); err != nil {
		return 0, err
	}
	c.stats.InputClauses++
	return stProofCheck, nil
}

func (c *Checker) stepInteractionStatus() (csState, error) {
	line, err := c.readInteraction(0, interactionCtx)
	if err != nil {
		return 0, err
	}
	if line.Type != LineStatus || line.Status != c.pendingStatus {
		return 0, checkErrorf(line.Pos, "interaction status does not match proof status %s", c.pendingStatus)
	}
	switch c.pendingStatus {
	case StatusSatisfiable:
		return stInteractionSatisfied, nil
	case StatusUnsatisfiable:
		return stInteractionUnsatisfied, nil
	case StatusUnknown:
		c.closeQuery()
		return stInteractionInput, nil
	default:
		return 0, fatalErrorf(line.Pos, "unreachable status")
	}
}

func (c *Checker) stepInteractionSatisfied() (csState, error) {
	line, err := c.readInteraction(0, interactionCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineModel:
		if err := CheckInteractionModel(c.marks, c.store, c.query, line.Literals, line.Pos, line.Raw); err != nil {
			return 0, err
		}
	case LineValues:
		if err := CheckInteractionValues(c.marks, line.Literals, line.Pos); err != nil {
			return 0, err
		}
	default:
		return 0, parseErrorf(line.Pos, "expected m or v in interaction, got %q", line.Type)
	}
	c.lastConclType = line.Type
	c.lastConclLits = line.Literals
	return stProofModel, nil
}

func (c *Checker) stepInteractionUnsatisfied() (csState, error) {
	line, err := c.readInteraction(0, interactionCtx)
	if err != nil {
		return 0, err
	}
	switch line.Type {
	case LineUnsatCore:
		if err := CheckInteractionCore(c.marks, c.query, line.Literals, line.Pos); err != nil {
			return 0, err
		}
	case LineFailed:
		if err := CheckInteractionFailed(c.marks, c.query, line.Literals, line.Pos); err != nil {
			return 0, err
		}
	default:
		return 0, parseErrorf(line.Pos, "expected u or f in interaction, got %q", line.Type)
	}
	c.lastConclType = line.Type
	c.lastConclLits = line.Literals
	return stProofCore, nil
}

func (c *Checker) stepProofModel() (csState, error) {
	line, err := c.readProof(0, proofCtx)
	if err != nil {
		return 0, err
	}
	if line.Type != LineModel {
		if c.opts.Mode == ModeRelaxed {
			c.stats.RelaxedSkips++
			c.proofLookahead = &line
			c.closeQuery()
			return stInteractionInput, nil
		}
		return 0, parseErrorf(line.Pos, "expected m in proof, got %q", line.Type)
	}
	if err := CheckProofModel(c.marks, c.lastConclLits, line.Literals, line.Pos); err != nil {
		return 0, err
	}
	c.closeQuery()
	return stInteractionInput, nil
}

func (c *Checker) stepProofCore() (csState, error) {
	line, err := c.readProof(0, proofCtx)
	if err != nil {
		return 0, err
	}
	if line.Type != LineUnsatCore {
		if c.opts.Mode == ModeRelaxed {
			c.stats.RelaxedSkips++
			c.proofLookahead = &line
			c.closeQuery()
			return stInteractionInput, nil
		}
		return 0, parseErrorf(line.Pos, "expected u in proof, got %q", line.Type)
	}
	check := ProofCoreCheck{
		Query:       c.query,
		Core:        line.Literals,
		Antecedents: line.Antecedents,
		SavedType:   c.lastConclType,
		Saved:       c.lastConclLits,
	}
	if err := CheckProofCore(c.store, c.vt, c.marks, check, line.Pos, line.Raw, c.formulaInconsistent); err != nil {
		return 0, err
	}
	c.stats.RUPChecks++
	c.stats.Antecedents += len(line.Antecedents)
	c.closeQuery()
	return stInteractionInput, nil
}

func (c *Checker) closeQuery() {
	c.queryOpen = false
	c.query = nil
	c.lastConclType = 0
	c.lastConclLits = nil
}

// processProofLine handles the lemma/delete/weaken/restore lines that may
// occur in any of the PROOF_* states (spec §4.2, §4.4).
func (c *Checker) processProofLine(line Line) error {
	switch line.Type {
	case LineLemma:
		return c.processLemma(line)
	case LineDelete:
		return c.processDelete(line)
	case LineWeaken:
		return c.processWeaken(line)
	case LineRestore:
		return c.processRestore(line)
	default:
		return fatalErrorf(line.Pos, "processProofLine called with non-lemma line type %q", line.Type)
	}
}

func (c *Checker) processLemma(line Line) error {
	if err := CheckImplied(c.store, c.vt, line.Literals, line.Antecedents, +1, line.Pos, line.Raw, c.formulaInconsistent); err != nil {
		return err
	}
	if _, err := c.store.Insert(line.ID, line.Pos.Line, false, line.Literals, line.Pos, line.Raw); err != nil {
		return err
	}
	c.stats.LearnedClauses++
	c.stats.RUPChecks++
	c.stats.Antecedents += len(line.Antecedents)
	if len(line.Literals) == 0 {
		c.formulaInconsistent = true
	}
	return nil
}

func (c *Checker) findByID(id ClauseID) (*Clause, bool, error) {
	if cl, ok := c.store.FindActive(id); ok {
		return cl, true, nil
	}
	if cl, ok := c.store.FindInactive(id); ok {
		return cl, false, nil
	}
	return nil, false, nil
}

func (c *Checker) processDelete(line Line) error {
	for _, raw64 := range line.Antecedents {
		if raw64 <= 0 {
			return lineErrorf(line.Pos, line.Raw, "clause id %d is non-positive", raw64)
		}
		id := ClauseID(raw64)
		cl, active, err := c.findByID(id)
		if err != nil {
			return err
		}
		if cl == nil {
			return lineErrorf(line.Pos, line.Raw, "could not find clause %d to delete", id)
		}
		if !active {
			return lineErrorf(line.Pos, line.Raw, "clause %d already weakened, cannot delete", id)
		}
		if cl.Input {
			return lineErrorf(line.Pos, line.Raw, "input clause %d cannot be deleted", id)
		}
		c.store.Delete(cl)
		c.stats.Deleted++
	}
	return nil
}

func (c *Checker) processWeaken(line Line) error {
	for _, raw64 := range line.Antecedents {
		if raw64 <= 0 {
			return lineErrorf(line.Pos, line.Raw, "clause id %d is non-positive", raw64)
		}
		id := ClauseID(raw64)
		cl, ok := c.store.FindActive(id)
		if !ok {
			return lineErrorf(line.Pos, line.Raw, "could not find active clause %d to weaken", id)
		}
		c.store.Weaken(cl)
		c.stats.Weakened++
	}
	return nil
}

func (c *Checker) processRestore(line Line) error {
	for _, raw64 := range line.Antecedents {
		if raw64 <= 0 {
			return lineErrorf(line.Pos, line.Raw, "clause id %d is non-positive", raw64)
		}
		id := ClauseID(raw64)
		cl, ok := c.store.FindInactive(id)
		if !ok {
			return lineErrorf(line.Pos, line.Raw, "could not find inactive clause %d to restore", id)
		}
		c.store.Restore(cl)
		c.stats.Restored++
	}
	return nil
}

// runSingleFile drives the proof-only mode of spec §4.5: the proof's own
// i/q/m/u lines are treated as the user's inputs, with no cross-stream
// matching.
func (c *Checker) runSingleFile() error {
	if err := c.maybeReadHeader(c.proof, proofCtx, "proof", HeaderLIDRUP); err != nil {
		return err
	}

	for {
		if c.queryOpen {
			line, err := c.readProof(LineLemma, proofCtx)
			if err != nil {
				return err
			}
			switch line.Type {
			case LineLemma, LineDelete, LineWeaken, LineRestore:
				if err := c.processProofLine(line); err != nil {
					return err
				}
			case LineStatus:
				if err := c.concludeSingleFile(line); err != nil {
					return err
				}
			default:
				return parseErrorf(line.Pos, "expected l, d, w, r, or s, got %q", line.Type)
			}
			continue
		}

		line, err := c.readProof(LineInput, proofCtx)
		if err != nil {
			return err
		}
		switch line.Type {
		case LineInput:
			if _, err := c.store.Insert(line.ID, line.Pos.Line, true, line.Literals, line.Pos, line.Raw); err != nil {
				return err
			}
			c.stats.InputClauses++
		case LineQuery:
			c.query = line.Literals
			c.queryOpen = true
			c.stats.Queries++
		case LineEOF:
			if c.queryOpen {
				return fatalErrorf(line.Pos, "stream ended with an open query")
			}
			return nil
		default:
			return parseErrorf(line.Pos, "expected i, q, or EOF, got %q", line.Type)
		}
	}
}

func (c *Checker) concludeSingleFile(status Line) error {
	switch status.Status {
	case StatusUnknown:
		c.closeQuery()
		return nil
	case StatusSatisfiable:
		line, err := c.readProof(0, proofCtx)
		if err != nil {
			return err
		}
		if line.Type != LineModel {
			return parseErrorf(line.Pos, "expected m after s SATISFIABLE, got %q", line.Type)
		}
		if err := CheckInteractionModel(c.marks, c.store, c.query, line.Literals, line.Pos, line.Raw); err != nil {
			return err
		}
		c.closeQuery()
		return nil
	case StatusUnsatisfiable:
		line, err := c.readProof(0, proofCtx)
		if err != nil {
			return err
		}
		if line.Type != LineUnsatCore {
			return parseErrorf(line.Pos, "expected u after s UNSATISFIABLE, got %q", line.Type)
		}
		if !c.marks.subset(line.Literals, c.query) {
			return checkErrorf(line.Pos, "core is not a subset of the query")
		}
		if err := CheckImplied(c.store, c.vt, line.Literals, line.Antecedents, -1, line.Pos, line.Raw, c.formulaInconsistent); err != nil {
			return err
		}
		c.stats.RUPChecks++
		c.stats.Antecedents += len(line.Antecedents)
		c.closeQuery()
		return nil
	default:
		return parseErrorf(status.Pos, "unknown status")
	}
}
