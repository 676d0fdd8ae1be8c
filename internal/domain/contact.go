package domain

import "strings"

// =============================================================================
// Address
// =============================================================================

// Place is one level of the administrative address hierarchy.
type Place struct {
	ID   string
	Name string
}

// Address is the nested location composite used by leads, properties and
// site visits. Any selector level the backend did not send is nil.
type Address struct {
	Province *Place
	District *Place
	Commune  *Place
	Village  *Place
	Line1    string
	Line2    string
}

// Display renders the populated levels as a single comma-joined line.
func (a Address) Display() string {
	parts := make([]string, 0, 6)
	if a.Line1 != "" {
		parts = append(parts, a.Line1)
	}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	for _, p := range []*Place{a.Village, a.Commune, a.District, a.Province} {
		if p != nil && p.Name != "" {
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// Contact Channels
// =============================================================================

// ContactValue is a single reachable number/handle within a channel.
type ContactValue struct {
	Number    string
	Remark    string
	IsPrimary bool
}

// ContactChannel groups contact values under a channel type
// (phone, telegram, email, ...).
type ContactChannel struct {
	Type   string
	Values []ContactValue
}

// PrimaryContact flattens the channel groups and picks the number to
// display: the first value flagged primary with a non-empty number, else
// the first non-empty number, else the NoContact placeholder.
func PrimaryContact(channels []ContactChannel) string {
	for _, ch := range channels {
		for _, v := range ch.Values {
			if v.IsPrimary && v.Number != "" {
				return v.Number
			}
		}
	}
	for _, ch := range channels {
		for _, v := range ch.Values {
			if v.Number != "" {
				return v.Number
			}
		}
	}
	return NoContact
}

// ValidateContactChannels enforces the one-primary-per-channel invariant
// the backend leaves to convention: at most one value in each channel may
// be flagged primary.
func ValidateContactChannels(op string, channels []ContactChannel) error {
	for _, ch := range channels {
		primaries := 0
		for _, v := range ch.Values {
			if v.IsPrimary {
				primaries++
			}
		}
		if primaries > 1 {
			return Invalid(op, "channel "+ch.Type+" has more than one primary contact")
		}
	}
	return nil
}
