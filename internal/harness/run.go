package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neyron357-boop/spares/internal/catalog"
	"github.com/neyron357-boop/spares/internal/store"
)

// Run executes a scenario against a fresh database and checks the
// expected final state.
func Run(t *testing.T, scenario *Scenario) {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "spares.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	cars := map[string]catalog.Car{}

	for i, step := range scenario.Steps {
		err := runStep(ctx, s, cars, step)
		switch step.ExpectError {
		case "":
			require.NoError(t, err, "steps[%d] %s", i, step.Op)
		case "missing_phone":
			require.ErrorIs(t, err, store.ErrMissingPhone, "steps[%d] %s", i, step.Op)
		}
	}

	checkExpect(ctx, t, s, scenario.Expect)
}

// RunFile loads and executes one scenario file.
func RunFile(t *testing.T, path string) {
	t.Helper()
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	Run(t, scenario)
}

func runStep(ctx context.Context, s *store.Store, cars map[string]catalog.Car, step Step) error {
	switch step.Op {
	case OpPutCar:
		car := catalog.Car{
			ID:    step.Car.ID,
			Make:  step.Car.Make,
			Model: step.Car.Model,
			Year:  step.Car.Year,
			VIN:   step.Car.VIN,
			Media: step.Car.Media,
		}
		cars[car.ID] = car
		return s.PutCar(ctx, car)
	case OpPutPart:
		return s.PutPart(ctx, catalog.Part{
			ID:     step.Part.ID,
			CarID:  step.Part.CarID,
			Name:   catalog.NormalizeTag(step.Part.Name),
			Status: catalog.PartActive,
		})
	case OpSaveOffer:
		offer := catalog.Offer{
			ID:           step.Offer.ID,
			PartID:       step.Offer.PartID,
			ShopName:     step.Offer.Shop,
			Phone:        step.Offer.Phone,
			CostPrice:    step.Offer.Price,
			LocationText: step.Offer.Location,
		}
		_, err := s.SaveOffer(ctx, offer, cars[step.ForCar])
		return err
	case OpDeleteCar:
		return s.DeleteCar(ctx, step.ID)
	case OpDeletePart:
		return s.DeletePart(ctx, step.ID)
	case OpDeleteOffer:
		return s.DeleteOffer(ctx, step.ID)
	case OpDeleteContact:
		return s.DeleteContact(ctx, step.Phone)
	}
	return nil // validateStep rejects unknown ops before we get here
}

func checkExpect(ctx context.Context, t *testing.T, s *store.Store, expect Expect) {
	t.Helper()

	cars, err := s.ListCars(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, expect.Cars, carIDs(cars), "remaining cars")

	parts, err := s.ListParts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, expect.Parts, partIDs(parts), "remaining parts")

	offers, err := s.ListOffers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, expect.Offers, offerIDs(offers), "remaining offers")

	contacts, err := s.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, len(expect.Contacts), "remaining contacts")
	for _, want := range expect.Contacts {
		checkContact(t, contacts, want)
	}
}

func checkContact(t *testing.T, contacts []catalog.Contact, want ContactExpect) {
	t.Helper()
	for _, c := range contacts {
		if c.Phone != want.Phone {
			continue
		}
		if want.Name != "" {
			assert.Equal(t, want.Name, c.Name, "contact %s name", want.Phone)
		}
		if want.Makes != nil {
			assert.Equal(t, want.Makes, c.Makes, "contact %s makes", want.Phone)
		}
		if want.Models != nil {
			assert.Equal(t, want.Models, c.Models, "contact %s models", want.Phone)
		}
		if want.Years != nil {
			assert.Equal(t, want.Years, c.Years, "contact %s years", want.Phone)
		}
		if want.Location != "" {
			assert.Equal(t, want.Location, c.LastLocationText, "contact %s location", want.Phone)
		}
		return
	}
	t.Errorf("contact %s not found in final state", want.Phone)
}

func carIDs(cars []catalog.Car) []string {
	ids := []string{}
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	return ids
}

func partIDs(parts []catalog.Part) []string {
	ids := []string{}
	for _, p := range parts {
		ids = append(ids, p.ID)
	}
	return ids
}

func offerIDs(offers []catalog.Offer) []string {
	ids := []string{}
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}
