package domain

type MembershipTier string

const (
	TierGuest    MembershipTier = "guest"
	TierSilver   MembershipTier = "silver"
	TierGold     MembershipTier = "gold"
	TierPlatinum MembershipTier = "platinum"
)

// Visitor is an authenticated park guest.
type Visitor struct {
	ID             string
	Email          string
	Name           string
	Avatar         string
	MembershipTier MembershipTier
}
