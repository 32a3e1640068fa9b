package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/neyron357-boop/spares/internal/catalog"
)

// SaveOffer is the single write path for new supplier quotes. It persists
// the offer and updates the derived directory entry for the supplier's
// phone number as one SQL transaction: either both writes commit or
// neither is visible.
//
// The offer's phone is normalized to digits-only first and that key
// selects the contact to merge into (catalog.MergeContact holds the merge
// rules). An offer whose phone has no digits at all is rejected with
// ErrMissingPhone before anything is written.
//
// Offers without an ID get a generated one. The car is the vehicle the
// quoted part belongs to; its make/model/year feed the contact's affinity
// sets.
//
// Safe to retry in full after a failure: set membership is idempotent,
// and a failed transaction leaves no partial state behind.
func (s *Store) SaveOffer(ctx context.Context, offer catalog.Offer, car catalog.Car) (catalog.Offer, error) {
	if err := s.ready(); err != nil {
		return catalog.Offer{}, err
	}

	offer.Phone = catalog.NormalizePhone(offer.Phone)
	if offer.Phone == "" {
		return catalog.Offer{}, fmt.Errorf("save offer: %w", ErrMissingPhone)
	}
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Offer{}, fmt.Errorf("save offer: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := putOffer(ctx, tx, offer); err != nil {
		return catalog.Offer{}, fmt.Errorf("save offer: %w", err)
	}

	existing, err := getContact(ctx, tx, offer.Phone)
	if err != nil {
		return catalog.Offer{}, fmt.Errorf("save offer: %w", err)
	}

	merged := catalog.MergeContact(existing, offer, car, s.now())
	if err := putContact(ctx, tx, merged); err != nil {
		return catalog.Offer{}, fmt.Errorf("save offer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return catalog.Offer{}, fmt.Errorf("save offer: commit: %w", err)
	}

	return offer, nil
}
