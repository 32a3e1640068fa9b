package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// Scenario: first offer for a supplier creates the directory entry.
func TestSaveOffer_CreatesContact(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	offer := testOffer("o1", "p1", "+971501234567")
	saved, err := s.SaveOffer(ctx, offer, testCar("c1"))
	if err != nil {
		t.Fatalf("SaveOffer() failed: %v", err)
	}
	if saved.Phone != "971501234567" {
		t.Errorf("saved offer phone = %q, want normalized", saved.Phone)
	}

	contact, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatalf("GetContact() failed: %v", err)
	}
	if contact == nil {
		t.Fatal("no contact derived from offer")
	}
	if contact.Name != "Al Futtaim" {
		t.Errorf("Name = %q", contact.Name)
	}
	if contact.ID == "" {
		t.Error("contact has no internal id")
	}
	if !reflect.DeepEqual(contact.Makes, []string{"TOYOTA"}) {
		t.Errorf("Makes = %v", contact.Makes)
	}
	if !reflect.DeepEqual(contact.Models, []string{"CAMRY"}) {
		t.Errorf("Models = %v", contact.Models)
	}
	if !reflect.DeepEqual(contact.Years, []string{"2019"}) {
		t.Errorf("Years = %v", contact.Years)
	}
}

// Scenario: a second offer for the same number merges, never duplicates.
func TestSaveOffer_SecondOfferMergesContact(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveOffer(ctx, testOffer("o1", "p1", "+971501234567"), testCar("c1")); err != nil {
		t.Fatalf("first SaveOffer() failed: %v", err)
	}

	second := testOffer("o2", "p1", "971 50 123 45 67")
	second.ShopName = "Al Futtaim Spares"
	car2 := testCar("c2")
	car2.Model = "COROLLA"
	car2.Year = "2020"
	if _, err := s.SaveOffer(ctx, second, car2); err != nil {
		t.Fatalf("second SaveOffer() failed: %v", err)
	}

	contacts, err := s.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts() failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("directory has %d entries, want 1", len(contacts))
	}
	c := contacts[0]
	if c.Name != "Al Futtaim Spares" {
		t.Errorf("Name = %q, want last offer to win", c.Name)
	}
	if !reflect.DeepEqual(c.Makes, []string{"TOYOTA"}) {
		t.Errorf("Makes = %v, want still one entry", c.Makes)
	}
	if !reflect.DeepEqual(c.Models, []string{"CAMRY", "COROLLA"}) {
		t.Errorf("Models = %v", c.Models)
	}
	if !reflect.DeepEqual(c.Years, []string{"2019", "2020"}) {
		t.Errorf("Years = %v", c.Years)
	}
}

// Same digit sequence under different raw formatting is one contact.
func TestSaveOffer_DedupAcrossFormatting(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, raw := range []string{"+971 50 123 4567", "971-50-123-45-67", "9 7 1 5 0 1 2 3 4 5 6 7"} {
		offer := testOffer("", "p1", raw) // empty id exercises generation too
		if _, err := s.SaveOffer(ctx, offer, testCar("c1")); err != nil {
			t.Fatalf("SaveOffer() %d failed: %v", i, err)
		}
	}

	contacts, err := s.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts() failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("directory has %d entries, want 1", len(contacts))
	}
	if contacts[0].Phone != "971501234567" {
		t.Errorf("Phone = %q", contacts[0].Phone)
	}
}

// Repeating the same save N times leaves set membership unchanged.
func TestSaveOffer_RepeatedSaveIsSetIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		offer := testOffer("", "p1", "971501234567")
		if _, err := s.SaveOffer(ctx, offer, testCar("c1")); err != nil {
			t.Fatalf("SaveOffer() iteration %d failed: %v", i, err)
		}
	}

	contact, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatalf("GetContact() failed: %v", err)
	}
	if len(contact.Makes) != 1 || len(contact.Models) != 1 || len(contact.Years) != 1 {
		t.Errorf("repeated saves grew sets: makes=%v models=%v years=%v",
			contact.Makes, contact.Models, contact.Years)
	}
}

func TestSaveOffer_RefreshesLastUsedAt(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := time.UnixMilli(1700000000000)
	second := first.Add(2 * time.Hour)

	s.now = func() time.Time { return first }
	if _, err := s.SaveOffer(ctx, testOffer("o1", "p1", "971501234567"), testCar("c1")); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return second }
	if _, err := s.SaveOffer(ctx, testOffer("o2", "p1", "971501234567"), testCar("c1")); err != nil {
		t.Fatal(err)
	}

	contact, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatal(err)
	}
	if !contact.LastUsedAt.Equal(second) {
		t.Errorf("LastUsedAt = %v, want refreshed to %v", contact.LastUsedAt, second)
	}
}

func TestSaveOffer_RetainsContactIDAndGallery(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveOffer(ctx, testOffer("o1", "p1", "971501234567"), testCar("c1")); err != nil {
		t.Fatal(err)
	}
	before, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatal(err)
	}

	// Presentation layer attaches business-card photos via plain put.
	before.Media = []string{"card-1"}
	if err := s.PutContact(ctx, *before); err != nil {
		t.Fatal(err)
	}

	if _, err := s.SaveOffer(ctx, testOffer("o2", "p1", "971501234567"), testCar("c1")); err != nil {
		t.Fatal(err)
	}
	after, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatal(err)
	}
	if after.ID != before.ID {
		t.Errorf("internal id changed: %q != %q", after.ID, before.ID)
	}
	if !reflect.DeepEqual(after.Media, []string{"card-1"}) {
		t.Errorf("gallery touched by offer save: %v", after.Media)
	}
}

func TestSaveOffer_LocationRetainedWhenAbsent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	lat, lng := 25.2048, 55.2708
	located := testOffer("o1", "p1", "971501234567")
	located.LocationText = "Deira, Dubai"
	located.Lat = &lat
	located.Lng = &lng
	if _, err := s.SaveOffer(ctx, located, testCar("c1")); err != nil {
		t.Fatal(err)
	}

	if _, err := s.SaveOffer(ctx, testOffer("o2", "p1", "971501234567"), testCar("c1")); err != nil {
		t.Fatal(err)
	}

	contact, err := s.GetContact(ctx, "971501234567")
	if err != nil {
		t.Fatal(err)
	}
	if contact.LastLocationText != "Deira, Dubai" {
		t.Errorf("LastLocationText = %q, want retained", contact.LastLocationText)
	}
	if contact.LastLat == nil || *contact.LastLat != lat {
		t.Errorf("LastLat = %v, want retained", contact.LastLat)
	}
	if contact.LastLng == nil || *contact.LastLng != lng {
		t.Errorf("LastLng = %v, want retained", contact.LastLng)
	}
}

func TestSaveOffer_RejectsDigitlessPhone(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.SaveOffer(ctx, testOffer("o1", "p1", "no digits here"), testCar("c1"))
	if !errors.Is(err, ErrMissingPhone) {
		t.Fatalf("SaveOffer() = %v, want ErrMissingPhone", err)
	}

	offers, err := s.ListOffers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 0 {
		t.Errorf("rejected save left an offer behind: %v", offers)
	}
}

// A failing transaction leaves neither the offer nor the contact visible.
func TestSaveOffer_AtomicOnFailure(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// Break the directory half of the transaction after the offer write.
	if _, err := s.db.Exec("DROP TABLE contacts"); err != nil {
		t.Fatalf("drop contacts: %v", err)
	}

	_, err := s.SaveOffer(ctx, testOffer("o1", "p1", "971501234567"), testCar("c1"))
	if err == nil {
		t.Fatal("SaveOffer() succeeded without a contacts collection")
	}

	offers, err := s.ListOffers(ctx)
	if err != nil {
		t.Fatalf("ListOffers() failed: %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("offer visible despite failed transaction: %v", offers)
	}
}
