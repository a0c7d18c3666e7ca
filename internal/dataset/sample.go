package dataset

import (
	"fmt"
	"math/rand"

	"github.com/flightline-ai/supportbench/internal/domain"
)

// sampleTickets are the templates the generator draws from. Each pair
// is a realistic airline support exchange; the resolution text is
// written to satisfy the quality scorer's indicators so generated sets
// produce non-degenerate score distributions.
var sampleTickets = []domain.Example{
	{
		Query:  "How do I change the date of my flight booked for %s?",
		Answer: "Step 1: Open Manage Booking and retrieve your reservation. Step 2: Select the new travel date; a rebooking fee of $50 plus any fare difference applies. Step 3: Confirm and pay. You will receive an updated itinerary by email. Thank you for flying with us, and contact support@airline.example if anything looks wrong.",
	},
	{
		Query:  "What is the fee for %skg of checked baggage?",
		Answer: "Step 1: Check your fare type in Manage Booking. Step 2: Prepaid baggage up to 20kg costs $25; each additional 5kg block costs $15 when purchased online. Step 3: Add the allowance before check-in to avoid higher airport rates. We appreciate your business; reach our contact center for corporate rates.",
	},
	{
		Query:  "My flight %s was cancelled, how do I get a refund?",
		Answer: "Step 1: Locate the cancellation notice in your email. Step 2: Open the refund form and enter your booking reference; the full fare including fees is refundable for airline-initiated cancellations. Step 3: Submit and keep the reference number. Refunds post within 7 business days. Thank you for your patience; call our support line for status updates.",
	},
	{
		Query:  "Can I bring my %s as cabin baggage?",
		Answer: "Step 1: Measure the item; cabin baggage must fit within 56x36x23cm and weigh at most 7kg. Step 2: Items over the limit must be checked, with fees from $30 at the airport. Step 3: Tag the bag at the kiosk before security. Thanks for checking ahead; our contact center can pre-approve special items.",
	},
	{
		Query:  "I was charged twice for booking %s, what should I do?",
		Answer: "Step 1: Check your bank statement for a pending authorization, which usually releases in 3 days. Step 2: If both charges posted, reply with your booking reference and the last four card digits. Step 3: We will reverse the duplicate within 5 business days at no cost to you. We appreciate you flagging this; email billing@airline.example to follow up.",
	},
	{
		Query:  "How early should I arrive for my %s departure?",
		Answer: "Step 1: For domestic flights arrive 2 hours before departure; for international arrive 3 hours. Step 2: Check in online up to 24 hours ahead to skip the counter, free of charge. Step 3: Be at the gate 45 minutes before departure. Have a pleasant flight, and contact the airport desk if you are running late.",
	},
}

// sampleFills vary the query templates so generated sets are not
// six identical strings repeated.
var sampleFills = []string{
	"next Friday", "5J-112", "December 12", "a guitar", "FL-2048",
	"the morning", "25", "an extra seat", "tomorrow", "10",
}

// GenerateSample produces n synthetic support tickets from a fixed
// template pool. The same seed always yields the same examples.
func GenerateSample(n int, seed int64) []domain.Example {
	rng := rand.New(rand.NewSource(seed))

	examples := make([]domain.Example, 0, n)
	for i := 0; i < n; i++ {
		ticket := sampleTickets[rng.Intn(len(sampleTickets))]
		fill := sampleFills[rng.Intn(len(sampleFills))]
		examples = append(examples, domain.Example{
			Query:  fmt.Sprintf(ticket.Query, fill),
			Answer: ticket.Answer,
		})
	}
	return examples
}
