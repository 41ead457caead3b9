// Package diff provides receipt-level cost diffing.
// Compares two snapshots of the same group and explains the cost change
// as an ordered list of adjustments.
package diff

import (
	"sort"
	"strings"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
)

// Result is the complete diff between two group snapshots
type Result struct {
	// Overall summary
	TotalBefore types.Cents `json:"total_before"`
	TotalAfter  types.Cents `json:"total_after"`
	Delta       types.Cents `json:"delta"`

	// Adjustments in the order they were priced
	Adjustments []Adjustment `json:"adjustments"`
}

// Adjustment is one priced field change
type Adjustment struct {
	Field   string      `json:"field"`
	Kind    cost.Kind   `json:"kind"`
	Label   string      `json:"label"`
	OldCost types.Cents `json:"old_cost"`
	Delta   types.Cents `json:"delta"`
}

// Differ computes diffs between group snapshots
type Differ struct {
	engine *cost.Engine
}

// NewDiffer creates a new differ
func NewDiffer(engine *cost.Engine) *Differ {
	if engine == nil {
		engine = cost.NewEngine(nil)
	}
	return &Differ{engine: engine}
}

// Diff prices every field that differs between before and after. Each
// change is previewed against the result of the previous one. A change whose
// own pricing rule disagrees with the receipt (custom table fees, manual
// fees, dealer badges) is priced by the receipt difference instead, so the
// adjustments always add up to Delta.
func (d *Differ) Diff(before, after types.Group) (*Result, error) {
	totalBefore, err := d.engine.DefaultCost(before)
	if err != nil {
		return nil, err
	}
	totalAfter, err := d.engine.DefaultCost(after)
	if err != nil {
		return nil, err
	}

	result := &Result{
		TotalBefore: totalBefore,
		TotalAfter:  totalAfter,
		Delta:       totalAfter - totalBefore,
		Adjustments: []Adjustment{},
	}

	current := d.engine.Normalize(before)
	target := d.engine.Normalize(after)

	for _, next := range steps(target) {
		change := next(current)
		if change == nil {
			continue
		}

		p, err := d.preview(current, change)
		if err != nil {
			return nil, err
		}
		current = p.Group

		if p.Delta == 0 && p.Label == "" {
			continue
		}
		result.Adjustments = append(result.Adjustments, Adjustment{
			Field:   p.Field,
			Kind:    p.Kind,
			Label:   p.Label,
			OldCost: p.OldCost,
			Delta:   p.Delta,
		})
	}

	return result, nil
}

// preview prices change on g, falling back to the receipt difference when
// the change's own rule does not match it
func (d *Differ) preview(g types.Group, change cost.Change) (*cost.Preview, error) {
	p, err := d.engine.PreviewChange(g, change)
	if err != nil {
		return nil, err
	}
	if p.Kind == cost.KindGeneric {
		return p, nil
	}

	oldTotal, err := d.engine.DefaultCost(g)
	if err != nil {
		return nil, err
	}
	newTotal, err := d.engine.DefaultCost(p.Group)
	if err != nil {
		return nil, err
	}
	if newTotal-oldTotal == p.Delta {
		return p, nil
	}
	return d.engine.PreviewChange(g, cost.AsGeneric(change))
}

// step returns the edit that moves g toward the target, or nil
type step func(g types.Group) cost.Change

// steps lists the edits that turn a group into target, in pricing order.
// Each step looks at the group as the previous steps left it.
func steps(target types.Group) []step {
	return []step{
		func(g types.Group) cost.Change {
			if g.Tables == target.Tables {
				return nil
			}
			return cost.TableCountChange{Tables: target.Tables}
		},
		func(g types.Group) cost.Change {
			if g.Power == target.Power {
				return nil
			}
			return cost.PowerTierChange{Tier: target.Power}
		},
		func(g types.Group) cost.Change {
			if g.Power != target.Power || g.PowerFeeValue() == target.PowerFeeValue() {
				return nil
			}
			return cost.PowerFeeOverride{Fee: target.PowerFeeValue()}
		},
		func(g types.Group) cost.Change {
			if g.Badges == target.Badges {
				return nil
			}
			return cost.BadgeCountChange{Badges: target.Badges}
		},
		func(g types.Group) cost.Change {
			if g.TableFeeValue() == target.TableFeeValue() {
				return nil
			}
			fee := target.TableFeeValue()
			return cost.GenericChange{
				Name:  "table_fee",
				Apply: func(g *types.Group) { g.TableFee = types.Fee(fee) },
			}
		},
		func(g types.Group) cost.Change {
			if g.AutoRecalc == target.AutoRecalc {
				return nil
			}
			// Recalculation rewrites the power fee, so the target fee comes along.
			fee := target.PowerFeeValue()
			return cost.GenericChange{
				Name: "auto_recalc",
				Apply: func(g *types.Group) {
					g.AutoRecalc = target.AutoRecalc
					g.PowerFee = types.Fee(fee)
				},
			}
		},
		// Power is dropped for non-dealers, so a dealer flag change carries the
		// target power selection with it.
		func(g types.Group) cost.Change {
			if g.IsDealer == target.IsDealer {
				return nil
			}
			power, fee := target.Power, target.PowerFeeValue()
			return cost.GenericChange{
				Name: "is_dealer",
				Apply: func(g *types.Group) {
					g.IsDealer = target.IsDealer
					g.Power = power
					g.PowerFee = types.Fee(fee)
				},
			}
		},
	}
}

// AdjustedTotal returns the sum of all adjustment deltas
func (r *Result) AdjustedTotal() types.Cents {
	var total types.Cents
	for _, a := range r.Adjustments {
		total += a.Delta
	}
	return total
}

// Summary provides a human-readable summary
func (r *Result) Summary() string {
	var b strings.Builder

	switch {
	case r.Delta == 0:
		b.WriteString("No cost change\n")
	case r.Delta < 0:
		b.WriteString("Cost decreased by " + (-r.Delta).String() + "\n")
	default:
		b.WriteString("Cost increased by " + r.Delta.String() + "\n")
	}

	for _, a := range r.Adjustments {
		b.WriteString("  " + a.Delta.Signed() + "  " + a.Label + "\n")
	}

	return b.String()
}

// TopChanges returns the adjustments with largest cost impact
func (r *Result) TopChanges(n int) []Adjustment {
	all := make([]Adjustment, len(r.Adjustments))
	copy(all, r.Adjustments)

	sort.SliceStable(all, func(i, j int) bool {
		return abs(all[i].Delta) > abs(all[j].Delta)
	})

	if n < len(all) {
		all = all[:n]
	}
	return all
}

func abs(c types.Cents) types.Cents {
	if c < 0 {
		return -c
	}
	return c
}
