package lidrup

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Stats accumulates the run-wide counters the checker reports on exit,
// mirroring the teacher's habit of keeping one flat counters struct rather
// than scattering increments across packages.
type Stats struct {
	InputClauses   int
	LearnedClauses int
	Deleted        int
	Weakened       int
	Restored       int
	Queries        int
	RUPChecks      int
	Antecedents    int // total antecedents visited across all RUP checks
	LinesRead      map[string]int
	RelaxedSkips   int // conclusions skipped under --relaxed

	start time.Time
}

// NewStats returns a zeroed Stats with its clock started.
func NewStats() *Stats {
	return &Stats{LinesRead: make(map[string]int), start: time.Now()}
}

func (s *Stats) countLine(stream string) {
	s.LinesRead[stream]++
}

// Elapsed returns wall-clock time since the Stats was created.
func (s *Stats) Elapsed() time.Duration { return time.Since(s.start) }

// WriteSummary prints a human-readable summary to w. Colors are enabled
// only when w is a terminal (go-isatty); otherwise the renderer is forced
// to ascii, matching the teacher's non-interactive lipgloss usage.
func (s *Stats) WriteSummary(w io.Writer) {
	renderer := lipgloss.NewRenderer(w)
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		renderer.SetColorProfile(termenv.Ascii)
	}
	label := renderer.NewStyle().Foreground(lipgloss.Color("244"))
	value := renderer.NewStyle().Bold(true)

	row := func(name string, v any) string {
		return fmt.Sprintf("%s %s", label.Render(name+":"), value.Render(fmt.Sprint(v)))
	}
	fmt.Fprintln(w, row("input clauses", s.InputClauses))
	fmt.Fprintln(w, row("learned clauses", s.LearnedClauses))
	fmt.Fprintln(w, row("deleted", s.Deleted))
	fmt.Fprintln(w, row("weakened", s.Weakened))
	fmt.Fprintln(w, row("restored", s.Restored))
	fmt.Fprintln(w, row("queries", s.Queries))
	fmt.Fprintln(w, row("RUP checks", s.RUPChecks))
	fmt.Fprintln(w, row("antecedents visited", s.Antecedents))
	if s.RelaxedSkips > 0 {
		fmt.Fprintln(w, row("relaxed skips", s.RelaxedSkips))
	}
	for stream, n := range s.LinesRead {
		fmt.Fprintln(w, row(fmt.Sprintf("lines read (%s)", stream), n))
	}
	fmt.Fprintln(w, row("elapsed", s.Elapsed().Round(time.Millisecond)))
}
