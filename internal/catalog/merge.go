package catalog

import (
	"time"

	"github.com/google/uuid"
)

// MergeContact folds an offer into the supplier directory entry for its
// phone number. existing is the current entry for that number, or nil on
// first contact. The offer's phone must already be normalized; the caller
// owns that because the same normalized key selects existing.
//
// Merge rules:
//   - Name is last-offer-wins.
//   - Location text, lat and lng each update only when the offer carries a
//     value; a known location is never cleared by an absent one.
//   - Makes/Models/Years grow by set union with the car's uppercased
//     values. Re-merging the same car adds nothing.
//   - LastUsedAt is always refreshed to now.
//   - ID is retained from existing, freshly generated on first contact.
//   - Media (the gallery) is carried over untouched.
//
// Idempotent with respect to set membership, intentionally not idempotent
// for Name and LastUsedAt: the directory reflects the latest interaction.
func MergeContact(existing *Contact, offer Offer, car Car, now time.Time) Contact {
	merged := Contact{ID: uuid.NewString()}
	if existing != nil {
		merged = *existing
	}

	merged.Name = offer.ShopName
	merged.Phone = offer.Phone
	if offer.LocationText != "" {
		merged.LastLocationText = offer.LocationText
	}
	if offer.Lat != nil {
		merged.LastLat = offer.Lat
	}
	if offer.Lng != nil {
		merged.LastLng = offer.Lng
	}
	merged.LastUsedAt = now
	merged.Makes = AppendTag(merged.Makes, car.Make)
	merged.Models = AppendTag(merged.Models, car.Model)
	merged.Years = AppendTag(merged.Years, car.Year)

	return merged
}
