package species

import (
	"fmt"
	"strings"
)

// rule assigns code to a description that contains any of keywords.
type rule[T any] struct {
	keywords []string
	code     T
}

// firstMatch walks rules in order and returns the code of the first rule
// matching desc. Keywords are substrings, not whole words.
func firstMatch[T any](desc string, rules []rule[T]) (T, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.code, true
			}
		}
	}
	var zero T
	return zero, false
}

// Order of the rules matters, the first match wins.
var (
	climateRules = []rule[ClimateZone]{
		{[]string{"temperate"}, Temperate},
		{[]string{"tropical"}, Tropical},
		{[]string{"alpine", "montane"}, Montane},
		{[]string{"desert"}, Desert},
		{[]string{"subarctic"}, Subarctic},
	}

	// "seasonally dry" has to go before "dry".
	moistureRules = []rule[Moisture]{
		{[]string{"seasonally dry"}, SeasonallyDry},
		{[]string{"seasonally wet"}, SeasonallyWet},
		{[]string{"dry"}, Dry},
		{[]string{"wet"}, Wet},
	}

	lifeTimeRules = []rule[LifeTime]{
		{[]string{"annual"}, Annual},
		{[]string{"biennial"}, Biennial},
		{[]string{"perennial"}, Perennial},
		{[]string{"monocarpic"}, Monocarpic},
	}

	// Climbing forms are checked before "herb", "semisucculent" before
	// "succulent".
	shapeRules = []rule[Shape]{
		{[]string{"scrambling", "liana", "climbing", "climber"}, Climber},
		{[]string{"herb"}, Herb},
		{[]string{"bulb"}, Bulbous},
		{[]string{"tree"}, Tree},
		{[]string{"semisucculent"}, SemiSucculent},
		{[]string{"succulent"}, Succulent},
		{[]string{"shrub"}, Shrub},
		{[]string{"tuberous"}, Tuberous},
		{[]string{"rhizomatous"}, Rhizomatous},
		{[]string{"caudex"}, Caudiciform},
		{[]string{"bamboo"}, Bamboo},
	}
)

// ClimateZoneOf derives the climate zone from a climate description.
// An empty description gives UnknownClimate. A non-empty description
// that matches no rule is a data defect and returns an error.
func ClimateZoneOf(desc string) (ClimateZone, error) {
	desc = Norm(desc)
	if desc == "" {
		return UnknownClimate, nil
	}
	if res, ok := firstMatch(desc, climateRules); ok {
		return res, nil
	}
	return UnknownClimate, UnknownClimateError(desc)
}

// MoistureOf derives moisture from a climate description.
func MoistureOf(desc string) Moisture {
	res, _ := firstMatch(Norm(desc), moistureRules)
	return res
}

// LifeTimeOf derives the life time from a lifeform description.
func LifeTimeOf(desc string) LifeTime {
	res, _ := firstMatch(Norm(desc), lifeTimeRules)
	return res
}

// ShapeOf derives the shape from a lifeform description.
func ShapeOf(desc string) Shape {
	res, _ := firstMatch(Norm(desc), shapeRules)
	return res
}

// Classify converts a prepared record into a row of the species table
// with the given id.
//
// It fails if the climate description is not recognized, or if a
// lifeform description that is neither empty nor in the ignore list
// yields neither a shape nor a life time.
func Classify(rec PreparedRecord, id int) (Row, error) {
	var res Row
	family := Norm(rec.Family)
	genus := Norm(rec.Genus)
	name := Norm(rec.Species)

	climate := Norm(rec.ClimateDescription)
	zone, err := ClimateZoneOf(climate)
	if err != nil {
		return res, err
	}

	lifeform := Norm(rec.LifeformDescription)
	shape := ShapeOf(lifeform)
	lifeTime := LifeTimeOf(lifeform)
	if lifeform != "" && !IsIgnoredLifeform(lifeform) &&
		shape == UnknownShape && lifeTime == UnknownLifeTime {
		return res, UnclassifiedLifeformError(lifeform)
	}

	res = Row{
		ID:          id,
		Slug:        fmt.Sprintf("%s %s %s", family, genus, name),
		Name:        name,
		Family:      family,
		Genus:       genus,
		Shape:       shape,
		LifeTime:    lifeTime,
		ClimateZone: zone,
		Moisture:    MoistureOf(climate),
	}
	return res, nil
}
