// Package cost provides the dealer/group cost engine.
// This package turns a group snapshot into receipt line items and prices
// hypothetical changes. It performs no I/O and never mutates its input.
package cost

import (
	"fmt"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
)

// maxDealerBadges is the derived dealer badge cap when MaxDealers is unset
const maxDealerBadges = 12

// dealerBadgesPerTable is how many dealer badges each table allows
const dealerBadgesPerTable = 3

// Engine prices groups against a fixed set of price tables.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	prices *pricing.Tables
}

// NewEngine creates an engine over the given price tables
func NewEngine(prices *pricing.Tables) *Engine {
	if prices == nil {
		prices = pricing.Default()
	}
	return &Engine{prices: prices}
}

// Prices returns the price tables the engine reads
func (e *Engine) Prices() *pricing.Tables {
	return e.prices
}

// Normalize returns a copy of g with the adjustments the host applies before
// every save: unselected or non-dealer power becomes 0, auto-recalculated
// power fees follow the tier price, and nullable fees become non-negative.
func (e *Engine) Normalize(g types.Group) types.Group {
	out := g.Clone()

	if out.Power < 0 || !out.IsDealer {
		out.Power = 0
	}

	if out.AutoRecalc {
		if p, ok := e.prices.PowerPrice(out.Power); ok {
			out.PowerFee = types.Fee(p)
		}
	}

	out.PowerFee = types.Fee(nonNegative(out.PowerFeeValue()))
	out.TableFee = types.Fee(nonNegative(out.TableFeeValue()))
	return out
}

// TableCostLineItem returns the table fee line item, or nil when the group
// has no table or its fees are not recalculated automatically.
func (e *Engine) TableCostLineItem(g types.Group) (*types.LineItem, error) {
	if g.Tables == 0 || !g.AutoRecalc {
		return nil, nil
	}

	repr, err := e.prices.TableRepr(g.Tables)
	if err != nil {
		return nil, err
	}

	if fee := g.TableFeeValue(); fee != 0 {
		return &types.LineItem{
			Label:  fmt.Sprintf("Custom Fee for %s", repr),
			Amount: types.FromWhole(fee),
		}, nil
	}

	p, err := e.prices.TablePrice(g.Tables)
	if err != nil {
		return nil, err
	}
	return &types.LineItem{
		Label:  fmt.Sprintf("%s Fee", repr),
		Amount: types.FromWhole(p),
	}, nil
}

// PowerCostLineItem returns the power fee line item, or nil when the group
// has no power, no fee, or its fees are not recalculated automatically.
func (e *Engine) PowerCostLineItem(g types.Group) *types.LineItem {
	if !g.AutoRecalc || g.Power <= 0 {
		return nil
	}

	if p, ok := e.prices.PowerPrice(g.Power); ok {
		return &types.LineItem{
			Label:  fmt.Sprintf("Tier %d Power Fee", g.Power),
			Amount: types.FromWhole(p),
		}
	}

	if fee := g.PowerFeeValue(); fee != 0 {
		return &types.LineItem{
			Label:  fmt.Sprintf("Custom Fee for Tier %d Power", g.Power),
			Amount: types.FromWhole(fee),
		}
	}
	return nil
}

// BadgeCostLineItem returns the per-badge line item for per-head costed
// groups. Dealer badges are paid by each attendee, so dealers get nil.
func (e *Engine) BadgeCostLineItem(g types.Group) *types.LineItem {
	if g.IsDealer || g.Badges <= 0 {
		return nil
	}
	return &types.LineItem{
		Label:  pluralize(g.Badges, "Group Badge"),
		Amount: types.FromWhole(int64(g.Badges) * e.prices.GroupBadgePrice),
	}
}

// Itemize normalizes g and returns its receipt
func (e *Engine) Itemize(g types.Group) (*types.Receipt, error) {
	n := e.Normalize(g)
	receipt := &types.Receipt{GroupID: n.ID, Items: []types.LineItem{}}

	table, err := e.TableCostLineItem(n)
	if err != nil {
		return nil, err
	}
	receipt.Add(table)
	receipt.Add(e.PowerCostLineItem(n))
	receipt.Add(e.BadgeCostLineItem(n))
	return receipt, nil
}

// DefaultCost returns the total cost the price tables assign to g
func (e *Engine) DefaultCost(g types.Group) (types.Cents, error) {
	receipt, err := e.Itemize(g)
	if err != nil {
		return 0, err
	}
	return receipt.Total, nil
}

// DealerMaxBadges returns how many badges a dealer group may hold
func (e *Engine) DealerMaxBadges(g types.Group) int {
	if e.prices.MaxDealers > 0 {
		return e.prices.MaxDealers
	}
	return min(g.Tables*dealerBadgesPerTable, maxDealerBadges)
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
