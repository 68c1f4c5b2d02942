package lidrup

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// literalSetDiff renders a short go-cmp diff between two literal sets,
// ignoring order, for inclusion in check-error messages (spec §7 wants
// diagnostics detailed enough to locate a mismatch without re-running the
// checker).
func literalSetDiff(a, b []Literal) string {
	less := func(x, y Literal) bool { return x < y }
	d := cmp.Diff(a, b, cmpopts.SortSlices(less))
	if d == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", compact(d))
}

// compact collapses go-cmp's multi-line output into a single line suitable
// for appending to a one-line error message.
func compact(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
