package search

import "inmobot/internal/model"

// Outcome is the result of a listing search. Either the provider answered
// (Found) or the adapter substituted the built-in listings (Degraded), in
// which case Reason says why.
type Outcome struct {
	Listings []model.Listing
	Reason   string
	degraded bool
}

// Found wraps listings returned by the provider
func Found(listings []model.Listing) Outcome {
	if listings == nil {
		listings = []model.Listing{}
	}
	return Outcome{Listings: listings}
}

// Degrade wraps fallback listings together with the failure reason
func Degrade(listings []model.Listing, reason string) Outcome {
	return Outcome{Listings: listings, Reason: reason, degraded: true}
}

// Degraded reports whether the listings are synthetic
func (o Outcome) Degraded() bool {
	return o.degraded
}
