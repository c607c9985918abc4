// Package species holds the pure domain of the seed generator: prepared
// checklist records, categorical codes of the species table, the keyword
// rules that derive these codes from free-text descriptions, and the SQL
// encoding of the resulting rows.
//
// The package does no I/O.
package species

import "strings"

// Columns is the header of the prepared table, in output order.
var Columns = []string{
	"family",
	"genus",
	"species",
	"geographic_area",
	"lifeform_description",
	"climate_description",
}

// PreparedRecord is one row of the prepared table. All fields are
// lower-cased and trimmed by the extractor.
type PreparedRecord struct {
	Family              string
	Genus               string
	Species             string
	GeographicArea      string
	LifeformDescription string
	ClimateDescription  string
}

// Values returns fields of the record in the order of Columns.
func (r PreparedRecord) Values() []string {
	return []string{
		r.Family,
		r.Genus,
		r.Species,
		r.GeographicArea,
		r.LifeformDescription,
		r.ClimateDescription,
	}
}

// NewPreparedRecord creates a record from fields given in the order of
// Columns. Missing trailing fields are left empty.
func NewPreparedRecord(vals []string) PreparedRecord {
	get := func(i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}
	return PreparedRecord{
		Family:              get(0),
		Genus:               get(1),
		Species:             get(2),
		GeographicArea:      get(3),
		LifeformDescription: get(4),
		ClimateDescription:  get(5),
	}
}

// Norm trims white space and lower-cases a field value.
func Norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Row is one tuple of the species table.
type Row struct {
	// ID is the sequential number of the row, starting from 0.
	ID   int
	Slug string
	// Name is the specific epithet.
	Name   string
	Family string
	Genus  string
	// GeographicOrigin is always Region 0, it is not derived yet.
	GeographicOrigin int
	Shape            Shape
	LifeTime         LifeTime
	ClimateZone      ClimateZone
	Moisture         Moisture
}

// ClimateZone of a species.
type ClimateZone int

const (
	UnknownClimate ClimateZone = iota
	Temperate
	Tropical
	Montane
	Desert
	Subarctic
)

func (c ClimateZone) String() string {
	switch c {
	case Temperate:
		return "temperate"
	case Tropical:
		return "tropical"
	case Montane:
		return "montane"
	case Desert:
		return "desert"
	case Subarctic:
		return "subarctic"
	default:
		return "unknown"
	}
}

// Moisture preferred by a species.
type Moisture int

const (
	Moderate Moisture = iota
	Wet
	Dry
	SeasonallyWet
	SeasonallyDry
)

func (m Moisture) String() string {
	switch m {
	case Wet:
		return "wet"
	case Dry:
		return "dry"
	case SeasonallyWet:
		return "seasonally wet"
	case SeasonallyDry:
		return "seasonally dry"
	default:
		return "moderate"
	}
}

// LifeTime of a plant.
type LifeTime int

const (
	UnknownLifeTime LifeTime = iota
	Annual
	Biennial
	Perennial
	Monocarpic
)

func (l LifeTime) String() string {
	switch l {
	case Annual:
		return "annual"
	case Biennial:
		return "biennial"
	case Perennial:
		return "perennial"
	case Monocarpic:
		return "monocarpic"
	default:
		return "unknown"
	}
}

// Shape is the growth form of a plant.
type Shape int

const (
	UnknownShape Shape = iota
	Bamboo
	Bulbous
	Caudiciform
	Climber
	Herb
	Rhizomatous
	SemiSucculent
	Succulent
	Shrub
	Tree
	Tuberous
)

var shapeNames = []string{
	"unknown",
	"bamboo",
	"bulbous",
	"caudiciform",
	"climber",
	"herb",
	"rhizomatous",
	"semisucculent",
	"succulent",
	"shrub",
	"tree",
	"tuberous",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return shapeNames[0]
	}
	return shapeNames[s]
}
