package session

// QueryCategory groups example queries shown in the chat UI so a
// customer can start from a realistic question.
type QueryCategory struct {
	Name    string   `json:"name"`
	Queries []string `json:"queries"`
}

// ExampleQueries returns the standing catalog of sample questions,
// grouped by topic and in display order.
func ExampleQueries() []QueryCategory {
	return []QueryCategory{
		{
			Name: "Booking & Reservations",
			Queries: []string{
				"How do I change the date of my flight?",
				"Can I correct a misspelled passenger name on my booking?",
				"How do I add a checked bag to an existing booking?",
			},
		},
		{
			Name: "Baggage",
			Queries: []string{
				"What is the fee for 25kg of checked baggage?",
				"My baggage was damaged on arrival, what should I do?",
				"What are the cabin baggage size limits?",
			},
		},
		{
			Name: "Check-in & Boarding",
			Queries: []string{
				"How early can I check in online?",
				"I missed my check-in window, can I still board?",
			},
		},
		{
			Name: "Refunds & Cancellations",
			Queries: []string{
				"My flight was cancelled, how do I get a refund?",
				"How long does a refund take to process?",
				"Can I get a travel voucher instead of a refund?",
			},
		},
		{
			Name: "Special Assistance",
			Queries: []string{
				"Can I bring a small dog in the cabin?",
				"How do I request wheelchair assistance?",
			},
		},
	}
}
