package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const ruleWidth = 60

// Styles holds the text report styling. Colors degrade to plain text when
// the writer is not a terminal.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Total   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates the style set for the given renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")),
		Heading: r.NewStyle().
			Bold(true),
		Total: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// TextRenderer writes the human-readable report.
type TextRenderer struct {
	w      io.Writer
	styles Styles
	err    error
}

// NewTextRenderer returns a renderer whose color profile is detected from w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// RenderText writes c to w as a text report.
func RenderText(w io.Writer, c *Comparison) error {
	return NewTextRenderer(w).Render(c)
}

// Render writes the full report. The first write error is returned.
func (r *TextRenderer) Render(c *Comparison) error {
	r.assumptions(c)
	for i, res := range c.Results {
		r.strategy(i+1, res, c.Cadence.String())
	}
	r.savings(c)
	r.recommendations(c)
	r.nextSteps(c)
	return r.err
}

func (r *TextRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *TextRenderer) println(s string) {
	r.printf("%s\n", s)
}

func (r *TextRenderer) banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	r.printf("\n%s\n%s\n%s\n", rule, r.styles.Heading.Render(title), rule)
}

func (r *TextRenderer) assumptions(c *Comparison) {
	r.printf("\n%s\n", r.styles.Title.Render("Model Routing Cost Calculator"))
	r.println("\nAssumptions:")
	r.printf("  - Tasks per month: %s\n", formatCount(c.Tasks))
	if c.Cadence.Schedule != "" {
		r.printf("  - Heartbeat schedule: %s\n", c.Cadence.Schedule)
	} else {
		r.printf("  - Heartbeat interval: %s minutes\n", formatCount(c.Cadence.IntervalMinutes))
	}
	r.printf("  - Distribution: %s\n", c.Distribution)
	if c.Normalized {
		r.println(r.styles.Muted.Render("    (normalized to sum to 1.0)"))
	}
}

func (r *TextRenderer) strategy(n int, res StrategyResult, cadence string) {
	r.banner(fmt.Sprintf("STRATEGY %d: %s", n, res.Label))

	for _, e := range res.Breakdown.Entries {
		r.printf("\n%s\n", strings.ToUpper(e.TaskType))
		r.printf("  Count: %.0f tasks\n", e.Count)
		r.printf("  Model: %s\n", e.Model)
		r.printf("  Cost per task: $%.4f\n", e.UnitCost)
		r.printf("  Total: %s\n", money(e.Cost))
	}

	r.printf("\n%s\n", strings.Repeat("─", ruleWidth))
	r.printf("TOTAL MONTHLY COST: %s\n", money(res.Breakdown.Total))
	r.printf("TOTAL ANNUAL COST: %s\n", money(res.Breakdown.Annual()))

	r.printf("\n  + Heartbeat cost (%s, %s): %s\n", res.Heartbeat.Model, cadence, money(res.Heartbeat.MonthlyCost))
	r.printf("  = %s\n", r.styles.Total.Render(fmt.Sprintf("TOTAL WITH HEARTBEATS: %s/month (%s/year)", money(res.Monthly), money(res.Annual))))

	if res.Strategy.Warning != "" {
		r.println("")
		for _, line := range strings.Split(res.Strategy.Warning, "\n") {
			r.printf("  %s\n", r.styles.Warning.Render(line))
		}
	}
}

func (r *TextRenderer) savings(c *Comparison) {
	r.banner("SAVINGS COMPARISON")

	for _, sv := range c.Savings {
		res, _ := c.Result(sv.Strategy)
		against, _ := c.Result(sv.Against)
		r.printf("\n%s vs %s:\n", shortLabel(res.Label), shortLabel(against.Label))
		r.printf("  Monthly: %s (%s)\n", money(sv.Monthly), percent(sv, 1))
		r.printf("  Annual: %s\n", money(sv.Annual))
		if res.Strategy.Caveat != "" {
			r.printf("  %s\n", r.styles.Warning.Render(res.Strategy.Caveat))
		}
	}
}

func (r *TextRenderer) recommendations(c *Comparison) {
	r.banner("RECOMMENDATIONS")

	if len(c.Savings) > 0 {
		best, _ := c.Result(c.Savings[0].Strategy)
		sv := c.Savings[0]
		r.printf("\n1. Start with %s\n", shortLabel(best.Label))
		r.println("   - Saves money without sacrificing quality")
		r.printf("   - Annual savings: %s (%s)\n", dollars(sv.Annual), percent(sv, 0))
	}

	rec := c.Recommendations
	r.println("\n2. Optimize heartbeats FIRST")
	r.printf("   - Switch heartbeats to %s: %s/mo savings\n", rec.HeartbeatModel, money(rec.HeartbeatMonthlySavings))
	r.printf("   - That's %s/year for 5 minutes of work\n", dollars(rec.HeartbeatAnnualSavings))
	r.printf("   - ROI: %s/hour\n", dollars(rec.HeartbeatROIPerHour))

	r.println("\n3. Audit your task types")
	r.println("   - Measure the real share of each task type before routing")
	r.println("   - Don't assume 80% can use Haiku (real number: 25-33%)")

	r.println("\n4. Monitor quality, not just cost")
	r.println("   - Track rejection rate (how often you edit/reject AI output)")
	r.println("   - If >30% rejection rate → upgrade model for that task type")
}

func (r *TextRenderer) nextSteps(c *Comparison) {
	r.printf("\n%s\n", strings.Repeat("=", ruleWidth))
	r.println("\nNext steps:")
	r.printf("  1. Configure heartbeats to use the %s model\n", c.Recommendations.HeartbeatModel)
	r.printf("  2. Implement model routing rules (see `clawcost strategies`)\n")
	r.println("  3. Monitor costs for 2 weeks")
	r.println("  4. Adjust routing based on quality + cost data")
	r.println("")
}

// shortLabel drops a trailing parenthetical: "SONNET EVERYWHERE (Baseline)"
// becomes "SONNET EVERYWHERE".
func shortLabel(label string) string {
	if i := strings.Index(label, " ("); i > 0 {
		return label[:i]
	}
	return label
}

// money formats a dollar amount with thousands separators and two decimals.
func money(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// dollars formats a whole-dollar amount with thousands separators.
func dollars(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

func percent(sv Savings, decimals int) string {
	if !sv.PercentApplicable() {
		return "n/a"
	}
	return fmt.Sprintf("%.*f%%", decimals, *sv.Percent)
}

// formatCount prints whole numbers without a decimal point.
func formatCount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
