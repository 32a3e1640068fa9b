package store

import (
	"context"
	"fmt"

	"github.com/neyron357-boop/spares/internal/catalog"
)

// PutCar inserts or fully overwrites a car record. Last write wins; there
// is no optimistic concurrency check anywhere in this store.
func (s *Store) PutCar(ctx context.Context, car catalog.Car) error {
	if err := s.ready(); err != nil {
		return err
	}

	media, err := marshalStrings(car.Media)
	if err != nil {
		return fmt.Errorf("put car: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cars (id, make, model, year, vin, media, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			make = excluded.make,
			model = excluded.model,
			year = excluded.year,
			vin = excluded.vin,
			media = excluded.media,
			created_at = excluded.created_at
	`, car.ID, car.Make, car.Model, car.Year, car.VIN, media, timeToMillis(car.CreatedAt))
	if err != nil {
		return fmt.Errorf("put car: %w", err)
	}
	return nil
}

// PutPart inserts or fully overwrites a part record.
func (s *Store) PutPart(ctx context.Context, part catalog.Part) error {
	if err := s.ready(); err != nil {
		return err
	}

	media, err := marshalStrings(part.ReferenceMedia)
	if err != nil {
		return fmt.Errorf("put part: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO parts (id, car_id, name, status, reference_media)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			car_id = excluded.car_id,
			name = excluded.name,
			status = excluded.status,
			reference_media = excluded.reference_media
	`, part.ID, part.CarID, part.Name, string(part.Status), media)
	if err != nil {
		return fmt.Errorf("put part: %w", err)
	}
	return nil
}

// PutOffer inserts or fully overwrites an offer record. The phone is
// normalized on the way in; SaveOffer is the usual entry point, this
// exists for plain record edits.
func (s *Store) PutOffer(ctx context.Context, offer catalog.Offer) error {
	if err := s.ready(); err != nil {
		return err
	}
	offer.Phone = catalog.NormalizePhone(offer.Phone)
	return putOffer(ctx, s.db, offer)
}

func putOffer(ctx context.Context, q dbtx, offer catalog.Offer) error {
	media, err := marshalStrings(offer.Media)
	if err != nil {
		return fmt.Errorf("put offer: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO offers (id, part_id, media, cost_price, shop_name, phone, location_text, lat, lng, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			part_id = excluded.part_id,
			media = excluded.media,
			cost_price = excluded.cost_price,
			shop_name = excluded.shop_name,
			phone = excluded.phone,
			location_text = excluded.location_text,
			lat = excluded.lat,
			lng = excluded.lng,
			created_at = excluded.created_at
	`, offer.ID, offer.PartID, media, offer.CostPrice, offer.ShopName, offer.Phone,
		offer.LocationText, nullFloat(offer.Lat), nullFloat(offer.Lng), timeToMillis(offer.CreatedAt))
	if err != nil {
		return fmt.Errorf("put offer: %w", err)
	}
	return nil
}

// PutContact inserts or fully overwrites a directory entry. Used by the
// presentation layer for gallery edits; offer-driven updates go through
// SaveOffer instead.
func (s *Store) PutContact(ctx context.Context, contact catalog.Contact) error {
	if err := s.ready(); err != nil {
		return err
	}
	contact.Phone = catalog.NormalizePhone(contact.Phone)
	return putContact(ctx, s.db, contact)
}

func putContact(ctx context.Context, q dbtx, contact catalog.Contact) error {
	makes, err := marshalStrings(contact.Makes)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	models, err := marshalStrings(contact.Models)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	years, err := marshalStrings(contact.Years)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	media, err := marshalStrings(contact.Media)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO contacts (phone, id, name, last_location_text, last_lat, last_lng, last_used_at, makes, models, years, media)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phone) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			last_location_text = excluded.last_location_text,
			last_lat = excluded.last_lat,
			last_lng = excluded.last_lng,
			last_used_at = excluded.last_used_at,
			makes = excluded.makes,
			models = excluded.models,
			years = excluded.years,
			media = excluded.media
	`, contact.Phone, contact.ID, contact.Name, contact.LastLocationText,
		nullFloat(contact.LastLat), nullFloat(contact.LastLng), timeToMillis(contact.LastUsedAt),
		makes, models, years, media)
	if err != nil {
		return fmt.Errorf("put contact: %w", err)
	}
	return nil
}

// DeleteOffer removes an offer if present. Deleting an absent id is a
// no-op, not an error.
func (s *Store) DeleteOffer(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM offers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	return nil
}

// DeleteContact removes a directory entry by phone number. Contacts have
// an independent lifecycle: no cascade ever removes them, only this
// explicit call does.
func (s *Store) DeleteContact(ctx context.Context, phone string) error {
	if err := s.ready(); err != nil {
		return err
	}
	key := catalog.NormalizePhone(phone)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE phone = ?`, key); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
