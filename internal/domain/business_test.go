package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateBusinessImpact(t *testing.T) {
	tests := []struct {
		name            string
		assumptions     BusinessAssumptions
		wantSavedPerTkt float64
		wantDailyHours  float64
		wantDailyUSD    float64
		wantAnnualUSD   float64
	}{
		{
			name:            "default help desk assumptions",
			assumptions:     DefaultBusinessAssumptions(),
			wantSavedPerTkt: 4.5,
			wantDailyHours:  75,
			wantDailyUSD:    2250,
			wantAnnualUSD:   821250,
		},
		{
			name: "small desk",
			assumptions: BusinessAssumptions{
				TicketsPerDay:          120,
				MinutesPerTicketBefore: 10,
				MinutesPerTicketAfter:  4,
				HourlyRateUSD:          25,
			},
			wantSavedPerTkt: 6,
			wantDailyHours:  12,
			wantDailyUSD:    300,
			wantAnnualUSD:   109500,
		},
		{
			name: "no tickets means no savings",
			assumptions: BusinessAssumptions{
				TicketsPerDay:          0,
				MinutesPerTicketBefore: 5,
				MinutesPerTicketAfter:  1,
				HourlyRateUSD:          30,
			},
			wantSavedPerTkt: 4,
			wantDailyHours:  0,
			wantDailyUSD:    0,
			wantAnnualUSD:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := EstimateBusinessImpact(tt.assumptions)

			assert.Equal(t, tt.assumptions.TicketsPerDay, impact.TicketsPerDay)
			assert.InDelta(t, tt.wantSavedPerTkt, impact.TimeSavedPerTicketMinutes, 1e-9)
			assert.InDelta(t, tt.wantDailyHours, impact.TotalHoursSavedPerDay, 1e-9)
			assert.InDelta(t, tt.wantDailyUSD, impact.DailyCostSavingsUSD, 1e-9)
			assert.InDelta(t, tt.wantAnnualUSD, impact.AnnualCostSavingsUSD, 1e-9)
		})
	}
}

func TestEstimateBusinessImpactIgnoresQuality(t *testing.T) {
	// The projection depends only on the assumptions, never on any
	// measured evaluation result.
	a := DefaultBusinessAssumptions()
	first := EstimateBusinessImpact(a)
	second := EstimateBusinessImpact(a)
	assert.Equal(t, first, second)
}
