package scoring

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spigell/fitscore/internal/matching"
)

const reportRule = "============================================================"

// WriteText prints a human readable report of a rule-based evaluation.
func WriteText(w io.Writer, r Report) error {
	return writeReport(w, r.Outcome, func(p *printer) {
		p.line("  Resume degs : %s", joinOrDash(r.ResumeFeatures.Education.Sorted()))
		p.line("  JD degs     : %s", joinOrDash(r.JobFeatures.Education.Sorted()))
	})
}

// WriteOutcome prints the same report for an outcome kept without its feature sets.
// Degrees are listed from the education result instead.
func WriteOutcome(w io.Writer, o Outcome) error {
	return writeReport(w, o, func(p *printer) {
		p.line("  Matched     : %s", joinOrDash(o.Education.Matched))
		p.line("  Missing     : %s", joinOrDash(o.Education.Missing))
		p.line("  Extra       : %s", joinOrDash(o.Education.Extra))
	})
}

func writeReport(w io.Writer, r Outcome, degrees func(p *printer)) error {
	p := &printer{w: w}

	p.line(reportRule)
	p.line("JOB FIT SCORE: %s%% (%s)", formatScore(r.OverallScore), r.Category)
	p.line(reportRule)

	p.line("\n[SKILLS]")
	p.line("  Match %%     : %s%%", formatScore(r.Skills.Score))
	p.line("  Status      : %s", r.Skills.Status)
	p.line("  Matched     : %s", joinOrDash(r.Skills.Matched))
	p.line("  Missing     : %s", joinOrDash(r.Skills.Missing))
	p.line("  Extra       : %s", joinOrDash(r.Skills.Extra))

	p.line("\n[EXPERIENCE]")
	p.line("  Resume years: %s", formatYears(r.Experience.ResumeYears))
	p.line("  JD years    : %s", formatYears(r.Experience.JobYears))
	p.line("  Status      : %s", r.Experience.Status)
	p.line("  Score       : %s%%", formatScore(r.Experience.Score))

	p.line("\n[EDUCATION]")
	degrees(p)
	p.line("  Status      : %s", r.Education.Status)
	p.line("  Score       : %s%%", formatScore(r.Education.Score))

	p.line("\n[KEYWORDS]")
	p.line("  Match %%     : %s%%", formatScore(r.Keywords.Score))
	p.line("  Matched     : %s", joinOrDash(r.Keywords.Matched))
	p.line("  Missing     : %s", joinOrDash(r.Keywords.Missing))

	p.line("\n[REASONING]")
	for _, point := range r.ReasoningPoints {
		p.line("  - %s", point)
	}
	p.line("  Confidence  : %s", formatScore(r.Confidence))

	return p.err
}

// printer remembers the first write error so the report body stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(matching.Round2(v), 'f', -1, 64)
}

func formatYears(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
