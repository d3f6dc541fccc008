package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jarwatch/jarwatch/internal/chart"
	"github.com/jarwatch/jarwatch/internal/models"
)

// BuildMessage formats one poll cycle as a plain-text report suitable for a
// chat message or an email body
func BuildMessage(reports []models.JarReport, when time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Jar balances for %s\n", when.Format("2006-01-02"))

	for _, r := range reports {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s\n", r.Name)
		if r.Goal != nil && *r.Goal > 0 {
			percent := math.Round(float64(r.Amount) / float64(*r.Goal) * 100)
			fmt.Fprintf(&b, "  %s / %s (%.0f%%)\n", chart.FormatAmount(r.Amount), chart.FormatAmount(*r.Goal), percent)
		} else {
			fmt.Fprintf(&b, "  %s\n", chart.FormatAmount(r.Amount))
		}
		if r.HasPrevious {
			fmt.Fprintf(&b, "  today: %s\n", chart.FormatDelta(r.Delta))
		} else {
			b.WriteString("  today: first record\n")
		}
	}
	return b.String()
}
