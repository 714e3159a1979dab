package domain

import "time"

// Identity is the authenticated user asserted by an identity token.
// Subject is the owner id that scopes every document listing.
type Identity struct {
	Subject   string
	Email     string
	Issuer    string
	ExpiresAt time.Time
}
