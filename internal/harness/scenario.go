// Package harness runs YAML-described scenarios against a real catalog
// store. A scenario is a sequence of write operations followed by an
// expectation over the final database state; it exists so that the
// multi-record behaviors (cascade deletes, offer/contact merging) are
// pinned by readable fixtures instead of pages of test code.
package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one scripted flow and its expected final state.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Steps run in order against a fresh database.
	Steps []Step `yaml:"steps"`

	// Expect describes the database after the last step.
	Expect Expect `yaml:"expect"`
}

// Step is a single store operation. Op selects which of the remaining
// fields apply.
type Step struct {
	// Op is one of: put_car, put_part, save_offer, delete_car,
	// delete_part, delete_offer, delete_contact.
	Op string `yaml:"op"`

	Car   *CarDoc   `yaml:"car,omitempty"`   // put_car
	Part  *PartDoc  `yaml:"part,omitempty"`  // put_part
	Offer *OfferDoc `yaml:"offer,omitempty"` // save_offer

	// ForCar names the car whose make/model/year merge into the
	// supplier contact on save_offer.
	ForCar string `yaml:"for_car,omitempty"`

	ID    string `yaml:"id,omitempty"`    // delete_car, delete_part, delete_offer
	Phone string `yaml:"phone,omitempty"` // delete_contact

	// ExpectError, when set, requires the step to fail. The only
	// recognized value is "missing_phone".
	ExpectError string `yaml:"expect_error,omitempty"`
}

// CarDoc is the YAML shape of a car record.
type CarDoc struct {
	ID    string   `yaml:"id"`
	Make  string   `yaml:"make"`
	Model string   `yaml:"model"`
	Year  string   `yaml:"year,omitempty"`
	VIN   string   `yaml:"vin,omitempty"`
	Media []string `yaml:"media,omitempty"`
}

// PartDoc is the YAML shape of a part record.
type PartDoc struct {
	ID    string `yaml:"id"`
	CarID string `yaml:"car_id"`
	Name  string `yaml:"name"`
}

// OfferDoc is the YAML shape of an offer record.
type OfferDoc struct {
	ID       string `yaml:"id,omitempty"`
	PartID   string `yaml:"part_id"`
	Shop     string `yaml:"shop"`
	Phone    string `yaml:"phone"`
	Price    string `yaml:"price,omitempty"`
	Location string `yaml:"location,omitempty"`
}

// Expect describes the final database state. The id lists are exact:
// exactly these records remain, in any order.
type Expect struct {
	Cars     []string        `yaml:"cars"`
	Parts    []string        `yaml:"parts"`
	Offers   []string        `yaml:"offers"`
	Contacts []ContactExpect `yaml:"contacts"`
}

// ContactExpect matches one directory entry by phone. Unset fields are
// not checked.
type ContactExpect struct {
	Phone    string   `yaml:"phone"`
	Name     string   `yaml:"name,omitempty"`
	Makes    []string `yaml:"makes,omitempty"`
	Models   []string `yaml:"models,omitempty"`
	Years    []string `yaml:"years,omitempty"`
	Location string   `yaml:"location,omitempty"`
}

// Step op constants.
const (
	OpPutCar        = "put_car"
	OpPutPart       = "put_part"
	OpSaveOffer     = "save_offer"
	OpDeleteCar     = "delete_car"
	OpDeletePart    = "delete_part"
	OpDeleteOffer   = "delete_offer"
	OpDeleteContact = "delete_contact"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently skipping a
// check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := validateStep(&step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(s *Step) error {
	switch s.Op {
	case OpPutCar:
		if s.Car == nil || s.Car.ID == "" {
			return fmt.Errorf("put_car requires car with id")
		}
	case OpPutPart:
		if s.Part == nil || s.Part.ID == "" || s.Part.CarID == "" {
			return fmt.Errorf("put_part requires part with id and car_id")
		}
	case OpSaveOffer:
		if s.Offer == nil || s.Offer.PartID == "" {
			return fmt.Errorf("save_offer requires offer with part_id")
		}
		if s.ForCar == "" {
			return fmt.Errorf("save_offer requires for_car")
		}
	case OpDeleteCar, OpDeletePart, OpDeleteOffer:
		if s.ID == "" {
			return fmt.Errorf("%s requires id", s.Op)
		}
	case OpDeleteContact:
		if s.Phone == "" {
			return fmt.Errorf("delete_contact requires phone")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	if s.ExpectError != "" && s.ExpectError != "missing_phone" {
		return fmt.Errorf("unknown expect_error %q", s.ExpectError)
	}
	return nil
}
