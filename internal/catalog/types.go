package catalog

import "time"

// PartStatus tracks whether a part is still being sourced.
type PartStatus string

const (
	// PartActive is the status every part is created with.
	PartActive PartStatus = "active"
	// PartFound marks a part whose sourcing is done. Nothing in the core
	// sets this; it is flipped only by an explicit record overwrite.
	PartFound PartStatus = "found"
)

// Car is a repair order's root entity. Deleting a car cascades to its
// parts and their offers.
type Car struct {
	ID        string    `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      string    `json:"year"` // free-form, not necessarily numeric
	VIN       string    `json:"vin,omitempty"`
	Media     []string  `json:"media,omitempty"` // ordered reference photos, opaque blobs
	CreatedAt time.Time `json:"created_at"`
}

// Part is a component needed for a car. CarID is a foreign key in name
// only: the storage layer enforces nothing, the cascade coordinator does.
type Part struct {
	ID             string     `json:"id"`
	CarID          string     `json:"car_id"`
	Name           string     `json:"name"`
	Status         PartStatus `json:"status"`
	ReferenceMedia []string   `json:"reference_media,omitempty"`
}

// Offer is a supplier's quoted price for a part. Phone is stored
// digits-only; NormalizePhone runs on every write path.
type Offer struct {
	ID           string    `json:"id"`
	PartID       string    `json:"part_id"`
	Media        []string  `json:"media,omitempty"`
	CostPrice    string    `json:"cost_price"` // decimal kept as text
	ShopName     string    `json:"shop_name"`
	Phone        string    `json:"phone"`
	LocationText string    `json:"location_text,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact is a derived supplier directory entry. Phone is the natural key:
// globally unique, digits-only. ID is an internal identifier that stays
// stable across merges so external references survive renames.
//
// Makes, Models and Years are uppercase sets recording which vehicles this
// supplier has quoted for. Media is a gallery managed by the presentation
// layer; offer saves never touch it.
type Contact struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"` // supplier shop name, last offer wins
	Phone            string    `json:"phone"`
	LastLocationText string    `json:"last_location_text,omitempty"`
	LastLat          *float64  `json:"last_lat,omitempty"`
	LastLng          *float64  `json:"last_lng,omitempty"`
	LastUsedAt       time.Time `json:"last_used_at"`
	Makes            []string  `json:"makes"`
	Models           []string  `json:"models"`
	Years            []string  `json:"years"`
	Media            []string  `json:"media,omitempty"`
}
