// Package cost - Proposed group changes
package cost

import (
	"math"
	"strconv"
	"strings"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

// Kind identifies a change variant
type Kind string

const (
	KindTables   Kind = "tables"
	KindPower    Kind = "power"
	KindPowerFee Kind = "power_fee"
	KindBadges   Kind = "badges"
	KindGeneric  Kind = "generic"
)

// Change is a proposed single-field edit to a group.
// The set of implementations is closed; see PreviewChange.
type Change interface {
	// Kind returns the variant
	Kind() Kind

	// Field returns the group attribute the change touches
	Field() string

	apply(g *types.Group)
}

// TableCountChange sets the number of tables
type TableCountChange struct {
	Tables int
}

// PowerTierChange sets the power tier
type PowerTierChange struct {
	Tier int
}

// PowerFeeOverride sets a custom power fee in whole currency units
type PowerFeeOverride struct {
	Fee int64
}

// BadgeCountChange sets the number of badges
type BadgeCountChange struct {
	Badges int
}

// GenericChange edits any other attribute. It is priced by comparing the
// whole-group default cost before and after Apply.
type GenericChange struct {
	Name  string
	Apply func(g *types.Group)
}

func (TableCountChange) Kind() Kind { return KindTables }
func (PowerTierChange) Kind() Kind { return KindPower }
func (PowerFeeOverride) Kind() Kind { return KindPowerFee }
func (BadgeCountChange) Kind() Kind { return KindBadges }
func (GenericChange) Kind() Kind { return KindGeneric }
func (TableCountChange) Field() string { return "tables" }
func (PowerTierChange) Field() string { return "power" }
func (PowerFeeOverride) Field() string { return "power_fee" }
func (BadgeCountChange) Field() string { return "badges" }
func (c GenericChange) Field() string { return c.Name }

func (c TableCountChange) apply(g *types.Group) { g.Tables = c.Tables }
func (c PowerTierChange) apply(g *types.Group) { g.Power = c.Tier }
func (c PowerFeeOverride) apply(g *types.Group) { g.PowerFee = types.Fee(c.Fee) }
func (c BadgeCountChange) apply(g *types.Group) { g.Badges = c.Badges }

func (c GenericChange) apply(g *types.Group) {
	if c.Apply != nil {
		c.Apply(g)
	}
}

// AsGeneric returns change as a GenericChange on the same field, priced by
// the whole-group receipt difference instead of its own rule
func AsGeneric(change Change) GenericChange {
	if g, ok := change.(GenericChange); ok {
		return g
	}
	return GenericChange{Name: change.Field(), Apply: change.apply}
}

// ParseChange maps a field name and its submitted value to a Change.
// Fields without a pricing rule of their own become a GenericChange that
// leaves the group as it is; only unparseable values for known fields are
// rejected.
func ParseChange(field, value string) (Change, error) {
	value = strings.TrimSpace(value)

	switch field {
	case "tables":
		n, err := parseCount(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return TableCountChange{Tables: n}, nil

	case "power":
		n, err := parseCount(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return PowerTierChange{Tier: n}, nil

	case "power_fee":
		fee, err := parseFee(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return PowerFeeOverride{Fee: fee}, nil

	case "badges":
		n, err := parseCount(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return BadgeCountChange{Badges: n}, nil

	case "table_fee":
		fee, err := parseFee(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return GenericChange{Name: field, Apply: func(g *types.Group) { g.TableFee = types.Fee(fee) }}, nil

	case "auto_recalc":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return GenericChange{Name: field, Apply: func(g *types.Group) { g.AutoRecalc = b }}, nil

	case "is_dealer":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, invalidValue(field, value, err)
		}
		return GenericChange{Name: field, Apply: func(g *types.Group) { g.IsDealer = b }}, nil
	}

	return GenericChange{Name: field}, nil
}

// parseCount accepts integers and whole-number floats such as "2.0", which
// legacy forms submit for numeric selects. Fractions are truncated.
func parseCount(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return int(math.Trunc(f)), nil
}

// parseFee accepts an empty value as "no fee"
func parseFee(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

func invalidValue(field, value string, cause error) error {
	return errors.Wrap(errors.TypeInput, "invalid value "+strconv.Quote(value)+" for "+field, cause).
		WithContext("field", field)
}
