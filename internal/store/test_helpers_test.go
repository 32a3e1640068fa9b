package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/neyron357-boop/spares/internal/catalog"
)

// createTestStore creates a store backed by a fresh temp database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spares.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedTime is a stable timestamp for deterministic records.
var fixedTime = time.UnixMilli(1700000000000)

func testCar(id string) catalog.Car {
	return catalog.Car{
		ID:        id,
		Make:      "TOYOTA",
		Model:     "CAMRY",
		Year:      "2019",
		CreatedAt: fixedTime,
	}
}

func testPart(id, carID string) catalog.Part {
	return catalog.Part{
		ID:     id,
		CarID:  carID,
		Name:   "BUMPER",
		Status: catalog.PartActive,
	}
}

func testOffer(id, partID, phone string) catalog.Offer {
	return catalog.Offer{
		ID:        id,
		PartID:    partID,
		CostPrice: "450",
		ShopName:  "Al Futtaim",
		Phone:     phone,
		CreatedAt: fixedTime,
	}
}
