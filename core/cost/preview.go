// Package cost - Change previews
package cost

import (
	"fmt"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
)

// Preview is the priced effect of a change that has not been committed
type Preview struct {
	// Kind is the change variant that was priced
	Kind Kind `json:"kind"`

	// Field is the group attribute the change touches
	Field string `json:"field"`

	// Label is the receipt text for the adjustment; empty when nothing changes
	Label string `json:"label,omitempty"`

	// OldCost is the cost of the affected component before the change
	OldCost types.Cents `json:"old_cost"`

	// Delta is the signed cost of the change
	Delta types.Cents `json:"delta"`

	// Group is the normalized group with the change applied
	Group types.Group `json:"group"`
}

// NewCost returns the component cost after the change
func (p *Preview) NewCost() types.Cents {
	return p.OldCost + p.Delta
}

// PreviewChange prices change against g without touching g. The change is
// applied to a normalized copy, which is returned in the preview. Power
// deltas are measured from the fee stored on g, which is what was billed.
func (e *Engine) PreviewChange(g types.Group, change Change) (*Preview, error) {
	before := e.Normalize(g)
	billedFee := nonNegative(g.PowerFeeValue())

	after := before.Clone()
	change.apply(&after)
	after = e.Normalize(after)

	p := &Preview{
		Kind:  change.Kind(),
		Field: change.Field(),
		Group: after,
	}

	var err error
	switch c := change.(type) {
	case PowerFeeOverride:
		e.previewPowerFee(p, billedFee, c)
	case PowerTierChange:
		e.previewPowerTier(p, billedFee, before, after)
	case TableCountChange:
		err = e.previewTables(p, before, after)
	case BadgeCountChange:
		e.previewBadges(p, before, after)
	default:
		err = e.previewGeneric(p, before, after)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (e *Engine) previewPowerFee(p *Preview, oldFee int64, c PowerFeeOverride) {
	newFee := nonNegative(c.Fee)

	p.OldCost = types.FromWhole(oldFee)
	p.Delta = types.FromWhole(newFee - oldFee)

	switch {
	case newFee > oldFee:
		p.Label = "Increase Custom Power Fee"
	case newFee < oldFee:
		p.Label = "Decrease Custom Power Fee"
	}
}

func (e *Engine) previewPowerTier(p *Preview, oldFee int64, before, after types.Group) {
	p.OldCost = types.FromWhole(oldFee)

	// A tier with no price entry keeps its fee until an admin sets one.
	if price, ok := e.prices.PowerPrice(after.Power); ok {
		p.Delta = types.FromWhole(price - oldFee)
	}

	p.Label = powerLabel(before.Power, after.Power)
}

func (e *Engine) previewTables(p *Preview, before, after types.Group) error {
	oldPrice, err := e.prices.TablePrice(before.Tables)
	if err != nil {
		return err
	}
	newPrice, err := e.prices.TablePrice(after.Tables)
	if err != nil {
		return err
	}

	p.OldCost = types.FromWhole(oldPrice)
	p.Delta = types.FromWhole(newPrice - oldPrice)

	if after.Tables == before.Tables {
		return nil
	}
	repr, err := e.prices.TableRepr(after.Tables)
	if err != nil {
		return err
	}
	if after.Tables > before.Tables {
		p.Label = "Upgrade Table to " + repr
	} else {
		p.Label = "Downgrade Table to " + repr
	}
	return nil
}

func (e *Engine) previewBadges(p *Preview, before, after types.Group) {
	perBadge := e.prices.BadgePrice(before.IsDealer)

	p.OldCost = types.FromWhole(int64(before.Badges) * perBadge)
	p.Delta = types.FromWhole(int64(after.Badges-before.Badges) * perBadge)

	switch diff := after.Badges - before.Badges; {
	case diff > 0:
		p.Label = "Add " + pluralize(diff, "Badge")
	case diff < 0:
		p.Label = "Remove " + pluralize(-diff, "Badge")
	}
}

func (e *Engine) previewGeneric(p *Preview, before, after types.Group) error {
	oldCost, err := e.DefaultCost(before)
	if err != nil {
		return err
	}
	newCost, err := e.DefaultCost(after)
	if err != nil {
		return err
	}

	p.OldCost = oldCost
	p.Delta = newCost - oldCost
	if p.Delta != 0 {
		p.Label = fmt.Sprintf("Update %s", p.Field)
	}
	return nil
}

// powerLabel names a power tier change for a receipt
func powerLabel(oldTier, newTier int) string {
	switch {
	case oldTier == newTier:
		return ""
	case newTier == 0:
		return "Remove Power"
	case oldTier == 0:
		return fmt.Sprintf("Add Tier %d Power", newTier)
	case newTier > oldTier:
		return fmt.Sprintf("Upgrade Power to Tier %d", newTier)
	default:
		return fmt.Sprintf("Downgrade Power to Tier %d", newTier)
	}
}
