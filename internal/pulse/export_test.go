package pulse

import (
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestExport(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		expected string
	}{
		{
			name: "all fields",
			fields: Fields{
				Commodity:     "Hard red wheat",
				QuantityMin:   floatPtr(10),
				QuantityMax:   floatPtr(25),
				Location:      "Odesa",
				ReadinessDate: "2026-09-15",
				FreeText:      "Looking for buyers, FOB terms preferred.",
			},
			expected: "TRADEFLOW PULSE\n" +
				"Commodity: Hard red wheat\n" +
				"Quantity: 10 - 25\n" +
				"Location: Odesa\n" +
				"Ready: 2026-09-15\n" +
				"---\n" +
				"Looking for buyers, FOB terms preferred.\n" +
				"Posted via TradeFlow Pulse",
		},
		{
			name: "empty optionals collapse to dashes",
			fields: Fields{
				FreeText: "Free text only.",
			},
			expected: "TRADEFLOW PULSE\n" +
				"Commodity: -\n" +
				"Quantity: -\n" +
				"Location: -\n" +
				"Ready: -\n" +
				"---\n" +
				"Free text only.\n" +
				"Posted via TradeFlow Pulse",
		},
		{
			name: "minimum only",
			fields: Fields{
				Commodity:   "Sunflower oil",
				QuantityMin: floatPtr(5.5),
				FreeText:    "Spot offer.",
			},
			expected: "TRADEFLOW PULSE\n" +
				"Commodity: Sunflower oil\n" +
				"Quantity: from 5.5\n" +
				"Location: -\n" +
				"Ready: -\n" +
				"---\n" +
				"Spot offer.\n" +
				"Posted via TradeFlow Pulse",
		},
		{
			name: "maximum only",
			fields: Fields{
				QuantityMax: floatPtr(100),
				FreeText:    "Up to a hundred.",
			},
			expected: "TRADEFLOW PULSE\n" +
				"Commodity: -\n" +
				"Quantity: up to 100\n" +
				"Location: -\n" +
				"Ready: -\n" +
				"---\n" +
				"Up to a hundred.\n" +
				"Posted via TradeFlow Pulse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Export(tt.fields); got != tt.expected {
				t.Errorf("Export() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExportIdempotent(t *testing.T) {
	fields := Fields{
		Commodity:     "Barley",
		QuantityMin:   floatPtr(12),
		QuantityMax:   floatPtr(40),
		Location:      "Constanta",
		ReadinessDate: "2026-10-01",
		FreeText:      "Repeatable output expected.",
	}

	first := Export(fields)
	for i := 0; i < 10; i++ {
		if got := Export(fields); got != first {
			t.Fatalf("Export() not idempotent: iteration %d produced %q, want %q", i, got, first)
		}
	}
}
