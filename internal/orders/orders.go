package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/neyron357-boop/spares/internal/catalog"
	"github.com/neyron357-boop/spares/internal/store"
)

// ErrCarNotFound indicates an operation against a car id with no record.
var ErrCarNotFound = errors.New("car not found")

// ErrPartNotFound indicates an operation against a part id with no record.
var ErrPartNotFound = errors.New("part not found")

// Service wraps the store with order-level operations.
type Service struct {
	store *store.Store

	// now stamps newly created records. Overridden in tests.
	now func() time.Time
}

// NewService creates an order service over an opened store.
func NewService(s *store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

// IntakeInput describes a new repair order: one car and the names of the
// parts to source for it.
type IntakeInput struct {
	Make      string
	Model     string
	Year      string
	VIN       string
	Media     []string
	PartNames []string
}

// Intake creates the car and its parts. Part names are uppercased and
// every part starts active. Blank part names are skipped rather than
// rejected; an order with no parts is legal (parts can be added later).
func (s *Service) Intake(ctx context.Context, in IntakeInput) (catalog.Car, []catalog.Part, error) {
	if in.Make == "" || in.Model == "" {
		return catalog.Car{}, nil, errors.New("intake: make and model are required")
	}

	car := catalog.Car{
		ID:        uuid.NewString(),
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		VIN:       in.VIN,
		Media:     in.Media,
		CreatedAt: s.now(),
	}
	if err := s.store.PutCar(ctx, car); err != nil {
		return catalog.Car{}, nil, fmt.Errorf("intake: %w", err)
	}

	parts := []catalog.Part{}
	for _, name := range in.PartNames {
		name = catalog.NormalizeTag(name)
		if name == "" {
			continue
		}
		part := catalog.Part{
			ID:     uuid.NewString(),
			CarID:  car.ID,
			Name:   name,
			Status: catalog.PartActive,
		}
		if err := s.store.PutPart(ctx, part); err != nil {
			return catalog.Car{}, nil, fmt.Errorf("intake: %w", err)
		}
		parts = append(parts, part)
	}
	return car, parts, nil
}

// AddPart adds one part to an existing car.
func (s *Service) AddPart(ctx context.Context, carID, name string) (catalog.Part, error) {
	car, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return catalog.Part{}, fmt.Errorf("add part: %w", err)
	}
	if car == nil {
		return catalog.Part{}, fmt.Errorf("add part: %w: %s", ErrCarNotFound, carID)
	}

	name = catalog.NormalizeTag(name)
	if name == "" {
		return catalog.Part{}, errors.New("add part: name is required")
	}
	part := catalog.Part{
		ID:     uuid.NewString(),
		CarID:  carID,
		Name:   name,
		Status: catalog.PartActive,
	}
	if err := s.store.PutPart(ctx, part); err != nil {
		return catalog.Part{}, fmt.Errorf("add part: %w", err)
	}
	return part, nil
}

// MarkFound flips a part's status to found. This is a plain record
// overwrite; no other operation in the system transitions the field.
func (s *Service) MarkFound(ctx context.Context, partID string) error {
	part, err := s.store.GetPart(ctx, partID)
	if err != nil {
		return fmt.Errorf("mark found: %w", err)
	}
	if part == nil {
		return fmt.Errorf("mark found: %w: %s", ErrPartNotFound, partID)
	}
	part.Status = catalog.PartFound
	if err := s.store.PutPart(ctx, *part); err != nil {
		return fmt.Errorf("mark found: %w", err)
	}
	return nil
}

// Summary is one row of the orders overview.
type Summary struct {
	Car        catalog.Car
	PartsCount int
}

// Overview lists every order newest first with its part count.
func (s *Service) Overview(ctx context.Context) ([]Summary, error) {
	cars, err := s.store.ListCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	parts, err := s.store.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	counts := map[string]int{}
	for _, p := range parts {
		counts[p.CarID]++
	}

	summaries := make([]Summary, 0, len(cars))
	for _, car := range cars {
		summaries = append(summaries, Summary{Car: car, PartsCount: counts[car.ID]})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Car.CreatedAt.After(summaries[j].Car.CreatedAt)
	})
	return summaries, nil
}

// PartSummary is one part row in a car's detail view.
type PartSummary struct {
	Part       catalog.Part
	OfferCount int
}

// Detail describes one order: the car and its parts with offer counts.
type Detail struct {
	Car   catalog.Car
	Parts []PartSummary
}

// Detail returns a car's detail view, or nil when the car is absent.
func (s *Service) Detail(ctx context.Context, carID string) (*Detail, error) {
	car, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("detail: %w", err)
	}
	if car == nil {
		return nil, nil
	}

	parts, err := s.store.ListPartsByCar(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("detail: %w", err)
	}

	detail := &Detail{Car: *car, Parts: make([]PartSummary, 0, len(parts))}
	for _, part := range parts {
		offers, err := s.store.ListOffersByPart(ctx, part.ID)
		if err != nil {
			return nil, fmt.Errorf("detail: %w", err)
		}
		detail.Parts = append(detail.Parts, PartSummary{Part: part, OfferCount: len(offers)})
	}
	return detail, nil
}

// PartOffers returns a part's quote history, newest first.
func (s *Service) PartOffers(ctx context.Context, partID string) ([]catalog.Offer, error) {
	offers, err := s.store.ListOffersByPart(ctx, partID)
	if err != nil {
		return nil, fmt.Errorf("part offers: %w", err)
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
	return offers, nil
}
