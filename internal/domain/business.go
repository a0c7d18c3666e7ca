package domain

// BusinessAssumptions are the fixed throughput and cost inputs used to
// project savings from faster ticket handling. They are configuration,
// not measurements, and the projection is independent of quality scores.
type BusinessAssumptions struct {
	// TicketsPerDay is the support desk's daily ticket volume.
	TicketsPerDay int `json:"tickets_per_day" yaml:"tickets_per_day" validate:"gte=0"`

	// MinutesPerTicketBefore is the handling time without the agent.
	MinutesPerTicketBefore float64 `json:"minutes_per_ticket_before" yaml:"minutes_per_ticket_before" validate:"gte=0"`

	// MinutesPerTicketAfter is the handling time with the agent.
	MinutesPerTicketAfter float64 `json:"minutes_per_ticket_after" yaml:"minutes_per_ticket_after" validate:"gte=0"`

	// HourlyRateUSD is the loaded cost of one support-agent hour.
	HourlyRateUSD float64 `json:"hourly_rate_usd" yaml:"hourly_rate_usd" validate:"gte=0"`
}

// DefaultBusinessAssumptions returns the airline help desk's standing
// planning figures: one thousand tickets a day, five minutes down to
// thirty seconds per ticket, at thirty dollars an hour.
func DefaultBusinessAssumptions() BusinessAssumptions {
	return BusinessAssumptions{
		TicketsPerDay:          1000,
		MinutesPerTicketBefore: 5.0,
		MinutesPerTicketAfter:  0.5,
		HourlyRateUSD:          30.0,
	}
}

// BusinessImpact is the projected savings derived from BusinessAssumptions.
type BusinessImpact struct {
	TicketsPerDay             int     `json:"tickets_per_day"`
	TimeSavedPerTicketMinutes float64 `json:"time_saved_per_ticket_minutes"`
	TotalHoursSavedPerDay     float64 `json:"total_hours_saved_per_day"`
	DailyCostSavingsUSD       float64 `json:"daily_cost_savings_usd"`
	AnnualCostSavingsUSD      float64 `json:"annual_cost_savings_usd"`
}

// EstimateBusinessImpact projects savings with plain arithmetic:
// minutes saved per ticket scales to daily hours, daily hours to daily
// dollars at the hourly rate, and daily dollars to a 365-day year.
func EstimateBusinessImpact(a BusinessAssumptions) BusinessImpact {
	savedPerTicket := a.MinutesPerTicketBefore - a.MinutesPerTicketAfter
	dailyHours := float64(a.TicketsPerDay) * savedPerTicket / 60
	daily := dailyHours * a.HourlyRateUSD
	return BusinessImpact{
		TicketsPerDay:             a.TicketsPerDay,
		TimeSavedPerTicketMinutes: savedPerTicket,
		TotalHoursSavedPerDay:     dailyHours,
		DailyCostSavingsUSD:       daily,
		AnnualCostSavingsUSD:      daily * 365,
	}
}
