package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/neyron357-boop/spares/internal/orders"
)

//go:embed sheet_schema.cue
var sheetSchema string

// OrderSheet is a batch of repair orders written by hand in YAML. The
// shape is validated against the embedded CUE schema before anything is
// written, so a bad sheet never half-imports.
type OrderSheet struct {
	Orders []SheetOrder `yaml:"orders" json:"orders"`
}

// SheetOrder is one order in a sheet: a car plus its part names.
type SheetOrder struct {
	Make  string   `yaml:"make" json:"make"`
	Model string   `yaml:"model" json:"model"`
	Year  string   `yaml:"year,omitempty" json:"year,omitempty"`
	VIN   string   `yaml:"vin,omitempty" json:"vin,omitempty"`
	Parts []string `yaml:"parts,omitempty" json:"parts,omitempty"`
}

// SheetError reports where a sheet failed validation.
type SheetError struct {
	Path    string // file path
	Message string
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// LoadOrderSheet reads a YAML order sheet, validates it against the
// schema, and returns the typed sheet.
func LoadOrderSheet(path string) (*OrderSheet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &SheetError{Path: path, Message: fmt.Sprintf("reading sheet: %v", err)}
	}

	// Decode to a generic value first so CUE sees the actual document,
	// not what Go's struct decoding silently dropped.
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &SheetError{Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}
	if doc == nil {
		return nil, &SheetError{Path: path, Message: "empty sheet"}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(sheetSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling sheet schema: %w", err)
	}
	schema = schema.LookupPath(cue.ParsePath("#Sheet"))

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return nil, &SheetError{Path: path, Message: fmt.Sprintf("encoding sheet: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &SheetError{Path: path, Message: fmt.Sprintf("invalid sheet: %v", err)}
	}

	var sheet OrderSheet
	if err := yaml.Unmarshal(raw, &sheet); err != nil {
		return nil, &SheetError{Path: path, Message: fmt.Sprintf("decoding sheet: %v", err)}
	}
	return &sheet, nil
}

// IntakeInputs converts the sheet into intake inputs in sheet order.
func (s *OrderSheet) IntakeInputs() []orders.IntakeInput {
	inputs := make([]orders.IntakeInput, 0, len(s.Orders))
	for _, o := range s.Orders {
		inputs = append(inputs, orders.IntakeInput{
			Make:      o.Make,
			Model:     o.Model,
			Year:      o.Year,
			VIN:       o.VIN,
			PartNames: o.Parts,
		})
	}
	return inputs
}
