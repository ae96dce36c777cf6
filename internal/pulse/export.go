// Package pulse implements the text-first Pulse export: a deterministic
// formatter that turns submission fields into the shareable text block
// offered by the landing page's copy-to-clipboard action.
package pulse

import (
	"fmt"
	"strings"
)

// Fields holds the form values the export is built from.
type Fields struct {
	Commodity     string
	QuantityMin   *float64
	QuantityMax   *float64
	Location      string
	ReadinessDate string
	FreeText      string
}

// Export formats the fields into the fixed Pulse template. The output is a
// pure function of the input: identical fields always produce an identical
// string, and no I/O happens here.
func Export(f Fields) string {
	var b strings.Builder

	b.WriteString("TRADEFLOW PULSE\n")
	b.WriteString("Commodity: " + orDash(f.Commodity) + "\n")
	b.WriteString("Quantity: " + quantityRange(f.QuantityMin, f.QuantityMax) + "\n")
	b.WriteString("Location: " + orDash(f.Location) + "\n")
	b.WriteString("Ready: " + orDash(f.ReadinessDate) + "\n")
	b.WriteString("---\n")
	b.WriteString(strings.TrimSpace(f.FreeText) + "\n")
	b.WriteString("Posted via TradeFlow Pulse")

	return b.String()
}

// quantityRange renders the min/max pair as a single range value
func quantityRange(min, max *float64) string {
	switch {
	case min == nil && max == nil:
		return "-"
	case min != nil && max == nil:
		return fmt.Sprintf("from %s", trimFloat(*min))
	case min == nil && max != nil:
		return fmt.Sprintf("up to %s", trimFloat(*max))
	default:
		return fmt.Sprintf("%s - %s", trimFloat(*min), trimFloat(*max))
	}
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	return s
}
