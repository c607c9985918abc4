package species

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed ignored_lifeforms.yaml
var ignoredLifeformsYAML []byte

var ignoredLifeforms = mustLoadIgnored(ignoredLifeformsYAML)

type ignoreList struct {
	IgnoredLifeforms []string `yaml:"ignored_lifeforms"`
}

func loadIgnored(data []byte) (map[string]struct{}, error) {
	var list ignoreList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("cannot parse ignored lifeforms: %w", err)
	}
	res := make(map[string]struct{}, len(list.IgnoredLifeforms))
	for _, v := range list.IgnoredLifeforms {
		res[Norm(v)] = struct{}{}
	}
	return res, nil
}

// embedded data is fixed at build time, a parsing failure is a bug.
func mustLoadIgnored(data []byte) map[string]struct{} {
	res, err := loadIgnored(data)
	if err != nil {
		panic(err)
	}
	return res
}

// IsIgnoredLifeform returns true if the lifeform description is known to
// have neither shape nor life time. The match is exact.
func IsIgnoredLifeform(desc string) bool {
	_, ok := ignoredLifeforms[desc]
	return ok
}

// IgnoredLifeforms returns the sorted ignore list.
func IgnoredLifeforms() []string {
	return slices.Sorted(maps.Keys(ignoredLifeforms))
}
