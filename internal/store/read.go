package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neyron357-boop/spares/internal/catalog"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ListCars returns every car, ordered oldest first by creation time with
// id as tiebreak. Returns an empty slice, not nil, when the collection is
// empty.
func (s *Store) ListCars(ctx context.Context) ([]catalog.Car, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, make, model, year, vin, media, created_at
		FROM cars
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query cars: %w", err)
	}
	defer rows.Close()

	cars := []catalog.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars: %w", err)
	}
	return cars, nil
}

// GetCar retrieves a single car by id. Absence is not an error: the
// result is nil when no such record exists.
func (s *Store) GetCar(ctx context.Context, id string) (*catalog.Car, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, make, model, year, vin, media, created_at
		FROM cars
		WHERE id = ?
	`, id)

	car, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

// ListParts returns every part, ordered by id.
func (s *Store) ListParts(ctx context.Context) ([]catalog.Part, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryParts(ctx, `
		SELECT id, car_id, name, status, reference_media
		FROM parts
		ORDER BY id ASC
	`)
}

// ListPartsByCar returns the parts owned by a car, ordered by id.
func (s *Store) ListPartsByCar(ctx context.Context, carID string) ([]catalog.Part, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.queryParts(ctx, `
		SELECT id, car_id, name, status, reference_media
		FROM parts
		WHERE car_id = ?
		ORDER BY id ASC
	`, carID)
}

func (s *Store) queryParts(ctx context.Context, query string, args ...any) ([]catalog.Part, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}
	defer rows.Close()

	parts := []catalog.Part{}
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return parts, nil
}

// GetPart retrieves a single part by id, nil when absent.
func (s *Store) GetPart(ctx context.Context, id string) (*catalog.Part, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, car_id, name, status, reference_media
		FROM parts
		WHERE id = ?
	`, id)

	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// ListOffers returns every offer, ordered oldest first.
func (s *Store) ListOffers(ctx context.Context) ([]catalog.Offer, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return queryOffers(ctx, s.db, `
		SELECT id, part_id, media, cost_price, shop_name, phone, location_text, lat, lng, created_at
		FROM offers
		ORDER BY created_at ASC, id ASC
	`)
}

// ListOffersByPart returns the offers quoted for a part, oldest first.
func (s *Store) ListOffersByPart(ctx context.Context, partID string) ([]catalog.Offer, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return queryOffers(ctx, s.db, `
		SELECT id, part_id, media, cost_price, shop_name, phone, location_text, lat, lng, created_at
		FROM offers
		WHERE part_id = ?
		ORDER BY created_at ASC, id ASC
	`, partID)
}

func queryOffers(ctx context.Context, q dbtx, query string, args ...any) ([]catalog.Offer, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	offers := []catalog.Offer{}
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}
	return offers, nil
}

// GetOffer retrieves a single offer by id, nil when absent.
func (s *Store) GetOffer(ctx context.Context, id string) (*catalog.Offer, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, part_id, media, cost_price, shop_name, phone, location_text, lat, lng, created_at
		FROM offers
		WHERE id = ?
	`, id)

	offer, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// ListContacts returns the whole supplier directory, ordered by phone for
// determinism. Recency ordering is the directory service's concern.
func (s *Store) ListContacts(ctx context.Context) ([]catalog.Contact, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT phone, id, name, last_location_text, last_lat, last_lng, last_used_at, makes, models, years, media
		FROM contacts
		ORDER BY phone ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []catalog.Contact{}
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

// GetContact retrieves the directory entry for a phone number, nil when
// absent. The number is normalized before lookup so raw UI input works as
// a key.
func (s *Store) GetContact(ctx context.Context, phone string) (*catalog.Contact, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return getContact(ctx, s.db, catalog.NormalizePhone(phone))
}

func getContact(ctx context.Context, q dbtx, phone string) (*catalog.Contact, error) {
	row := q.QueryRowContext(ctx, `
		SELECT phone, id, name, last_location_text, last_lat, last_lng, last_used_at, makes, models, years, media
		FROM contacts
		WHERE phone = ?
	`, phone)

	contact, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func scanCar(r rowScanner) (catalog.Car, error) {
	var car catalog.Car
	var media string
	var createdAt int64
	if err := r.Scan(&car.ID, &car.Make, &car.Model, &car.Year, &car.VIN, &media, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Car{}, err
		}
		return catalog.Car{}, fmt.Errorf("scan car: %w", err)
	}
	list, err := unmarshalStrings(media)
	if err != nil {
		return catalog.Car{}, fmt.Errorf("scan car: %w", err)
	}
	car.Media = list
	car.CreatedAt = millisToTime(createdAt)
	return car, nil
}

func scanPart(r rowScanner) (catalog.Part, error) {
	var part catalog.Part
	var media string
	if err := r.Scan(&part.ID, &part.CarID, &part.Name, &part.Status, &media); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Part{}, err
		}
		return catalog.Part{}, fmt.Errorf("scan part: %w", err)
	}
	list, err := unmarshalStrings(media)
	if err != nil {
		return catalog.Part{}, fmt.Errorf("scan part: %w", err)
	}
	part.ReferenceMedia = list
	return part, nil
}

func scanOffer(r rowScanner) (catalog.Offer, error) {
	var offer catalog.Offer
	var media string
	var lat, lng sql.NullFloat64
	var createdAt int64
	err := r.Scan(&offer.ID, &offer.PartID, &media, &offer.CostPrice, &offer.ShopName,
		&offer.Phone, &offer.LocationText, &lat, &lng, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Offer{}, err
		}
		return catalog.Offer{}, fmt.Errorf("scan offer: %w", err)
	}
	list, err := unmarshalStrings(media)
	if err != nil {
		return catalog.Offer{}, fmt.Errorf("scan offer: %w", err)
	}
	offer.Media = list
	offer.Lat = floatPtr(lat)
	offer.Lng = floatPtr(lng)
	offer.CreatedAt = millisToTime(createdAt)
	return offer, nil
}

func scanContact(r rowScanner) (catalog.Contact, error) {
	var contact catalog.Contact
	var makes, models, years, media string
	var lat, lng sql.NullFloat64
	var lastUsedAt int64
	err := r.Scan(&contact.Phone, &contact.ID, &contact.Name, &contact.LastLocationText,
		&lat, &lng, &lastUsedAt, &makes, &models, &years, &media)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Contact{}, err
		}
		return catalog.Contact{}, fmt.Errorf("scan contact: %w", err)
	}
	contact.LastLat = floatPtr(lat)
	contact.LastLng = floatPtr(lng)
	contact.LastUsedAt = millisToTime(lastUsedAt)
	for _, col := range []struct {
		raw  string
		dest *[]string
	}{
		{makes, &contact.Makes},
		{models, &contact.Models},
		{years, &contact.Years},
		{media, &contact.Media},
	} {
		list, err := unmarshalStrings(col.raw)
		if err != nil {
			return catalog.Contact{}, fmt.Errorf("scan contact: %w", err)
		}
		*col.dest = list
	}
	return contact, nil
}
