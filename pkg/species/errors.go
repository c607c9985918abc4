package species

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// UnknownClimateError is returned when a non-empty climate description
// does not match any climate zone rule.
func UnknownClimateError(desc string) error {
	msg := `Invalid climate description <em>'%s'</em>

Every non-empty climate description must map to a climate zone.
Fix the source data or extend the climate rules.`
	vars := []any{desc}

	return &gn.Error{
		Code: errcode.UnknownClimateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid climate description '%s'", desc),
	}
}

// UnclassifiedLifeformError is returned when a lifeform description
// gives neither shape nor life time and is not in the ignore list.
func UnclassifiedLifeformError(desc string) error {
	msg := `Invalid lifeform <em>'%s'</em>

The description gives neither shape nor life time.
Extend the shape or life time rules, or add it to the ignore list.`
	vars := []any{desc}

	return &gn.Error{
		Code: errcode.UnclassifiedLifeformError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid lifeform '%s'", desc),
	}
}
