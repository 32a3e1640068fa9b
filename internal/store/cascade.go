package store

import (
	"context"
	"fmt"
)

// DeleteCar removes a car together with every part that belongs to it and
// every offer under those parts. Descendants go first: each part's offers,
// then the part, and the car record only after all parts are gone. A crash
// or storage failure mid-cascade therefore leaves at most orphaned
// children, never a surviving child whose parent has vanished.
//
// No transaction spans the whole cascade. If an individual delete fails
// the cascade aborts at that point and earlier deletions stay deleted;
// the remaining orphans are keyed by their own ids and can be removed by
// re-running the delete.
func (s *Store) DeleteCar(ctx context.Context, carID string) error {
	if err := s.ready(); err != nil {
		return err
	}

	parts, err := s.ListPartsByCar(ctx, carID)
	if err != nil {
		return fmt.Errorf("delete car %s: %w", carID, err)
	}
	for _, part := range parts {
		if err := s.DeletePart(ctx, part.ID); err != nil {
			return fmt.Errorf("delete car %s: %w", carID, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, carID); err != nil {
		return fmt.Errorf("delete car %s: %w", carID, err)
	}
	return nil
}

// DeletePart removes a part and every offer quoted for it, offers first.
// Contacts derived from those offers are untouched; the directory has an
// independent lifecycle.
func (s *Store) DeletePart(ctx context.Context, partID string) error {
	if err := s.ready(); err != nil {
		return err
	}

	offers, err := s.ListOffersByPart(ctx, partID)
	if err != nil {
		return fmt.Errorf("delete part %s: %w", partID, err)
	}
	for _, offer := range offers {
		if err := s.DeleteOffer(ctx, offer.ID); err != nil {
			return fmt.Errorf("delete part %s: %w", partID, err)
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM parts WHERE id = ?`, partID); err != nil {
		return fmt.Errorf("delete part %s: %w", partID, err)
	}
	return nil
}
