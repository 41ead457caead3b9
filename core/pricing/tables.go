// Package pricing holds the price tables the cost engine reads.
// Tables are injected into every engine; nothing here is global.
package pricing

import (
	"fmt"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/determinism"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

// Tables contains every price the engine can look up.
// All prices are whole currency units.
type Tables struct {
	// TablePrices maps a table count to its price
	TablePrices map[int]int64 `json:"table_prices" yaml:"table_prices"`

	// TableOptions maps a table count to its description ("Double Table")
	TableOptions map[int]string `json:"table_options" yaml:"table_options"`

	// PowerPrices maps a power tier to its price; nil means the tier has no
	// default price and needs a custom fee
	PowerPrices map[int]*int64 `json:"power_prices" yaml:"power_prices"`

	// DealerPowers maps a power tier to its description
	DealerPowers map[int]string `json:"dealer_powers" yaml:"dealer_powers"`

	// GroupBadgePrice is the per-badge price for per-head costed groups
	GroupBadgePrice int64 `json:"group_badge_price" yaml:"group_badge_price"`

	// DealerBadgePrice is the per-badge price for dealer assistants
	DealerBadgePrice int64 `json:"dealer_badge_price" yaml:"dealer_badge_price"`

	// MaxDealers caps dealer badges per group; 0 derives the cap from tables
	MaxDealers int `json:"max_dealers" yaml:"max_dealers"`
}

// Option is a selectable value with its display label
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Default returns the price tables used when no configuration is supplied
func Default() *Tables {
	return &Tables{
		TablePrices: map[int]int64{
			1: 150,
			2: 300,
			3: 450,
			4: 600,
			5: 900,
			6: 1500,
		},
		TableOptions: map[int]string{
			1: "Single Table",
			2: "Double Table",
			3: "Triple Table",
			4: "Quad Table",
			5: "10x10 Booth",
			6: "15x15 Suite",
		},
		PowerPrices: map[int]*int64{
			1: price(45),
			2: price(75),
			3: price(150),
			4: nil,
		},
		DealerPowers: map[int]string{
			0: "No Power",
			1: "(Up to 500W, shared circuit)",
			2: "(Up to 1000W, shared circuit)",
			3: "(Up to 1800W, dedicated circuit)",
			4: "(High draw, priced after review)",
		},
		GroupBadgePrice:  65,
		DealerBadgePrice: 75,
	}
}

func price(v int64) *int64 {
	return &v
}

// TablePrice returns the price for a table count. Zero tables cost nothing.
func (t *Tables) TablePrice(count int) (int64, error) {
	if count == 0 {
		return 0, nil
	}
	p, ok := t.TablePrices[count]
	if !ok {
		return 0, errors.MissingPrice("table prices", count)
	}
	return p, nil
}

// TableRepr returns the description for a table count
func (t *Tables) TableRepr(count int) (string, error) {
	if count == 0 {
		return "No Table", nil
	}
	desc, ok := t.TableOptions[count]
	if !ok {
		return "", errors.MissingPrice("table options", count)
	}
	return desc, nil
}

// PowerPrice returns the default price of a power tier.
// Tier 0 is always free; ok is false when the tier has no default price.
func (t *Tables) PowerPrice(tier int) (int64, bool) {
	if tier == 0 {
		return 0, true
	}
	p, ok := t.PowerPrices[tier]
	if !ok || p == nil {
		return 0, false
	}
	return *p, true
}

// HasPowerTier reports whether a tier exists in either power table
func (t *Tables) HasPowerTier(tier int) bool {
	if tier == 0 {
		return true
	}
	if _, ok := t.DealerPowers[tier]; ok {
		return true
	}
	_, ok := t.PowerPrices[tier]
	return ok
}

// MaxPowerTier returns the highest configured power tier
func (t *Tables) MaxPowerTier() int {
	highest := 0
	for tier := range t.DealerPowers {
		if tier > highest {
			highest = tier
		}
	}
	for tier := range t.PowerPrices {
		if tier > highest {
			highest = tier
		}
	}
	return highest
}

// MaxTables returns the highest table count that has a description
func (t *Tables) MaxTables() int {
	highest := 0
	for count := range t.TableOptions {
		if count > highest {
			highest = count
		}
	}
	return highest
}

// BadgePrice returns the per-badge price for a group
func (t *Tables) BadgePrice(isDealer bool) int64 {
	if isDealer {
		return t.DealerBadgePrice
	}
	return t.GroupBadgePrice
}

// TableOpts lists table choices for admin forms, including "No Table"
func (t *Tables) TableOpts() []Option {
	opts := []Option{{Value: 0, Label: "No Table"}}
	for _, count := range determinism.SortedKeys(t.TableOptions) {
		opts = append(opts, Option{Value: count, Label: t.TableOptions[count]})
	}
	return opts
}

// PreregTableOpts lists table choices with their prices, e.g. "Double Table: $300"
func (t *Tables) PreregTableOpts() []Option {
	var opts []Option
	for _, count := range determinism.SortedKeys(t.TableOptions) {
		label := t.TableOptions[count]
		if p, ok := t.TablePrices[count]; ok {
			label = fmt.Sprintf("%s: $%d", label, p)
		}
		opts = append(opts, Option{Value: count, Label: label})
	}
	return opts
}

// PowerOpts lists power tiers, e.g. "Tier 2: $75 (Up to 1000W, shared circuit)".
// Tiers without a default price omit the price.
func (t *Tables) PowerOpts() []Option {
	var opts []Option
	for _, tier := range determinism.SortedKeys(t.DealerPowers) {
		desc := t.DealerPowers[tier]
		if tier == 0 {
			opts = append(opts, Option{Value: tier, Label: desc})
			continue
		}
		priceInfo := ""
		if p, ok := t.PowerPrice(tier); ok && p > 0 {
			priceInfo = fmt.Sprintf(": $%d", p)
		}
		opts = append(opts, Option{Value: tier, Label: fmt.Sprintf("Tier %d%s %s", tier, priceInfo, desc)})
	}
	return opts
}

// PreregPowerOpts prepends the "unselected" sentinel to PowerOpts
func (t *Tables) PreregPowerOpts() []Option {
	return append([]Option{{Value: -1, Label: "Select a Power Level"}}, t.PowerOpts()...)
}

// Validate checks that the tables are internally consistent
func (t *Tables) Validate() error {
	if len(t.TableOptions) == 0 {
		return errors.Config("table_options is empty", nil)
	}
	for count := range t.TableOptions {
		if count <= 0 {
			return errors.Config(fmt.Sprintf("table option %d must be positive", count), nil)
		}
		p, ok := t.TablePrices[count]
		if !ok {
			return errors.Config(fmt.Sprintf("table option %d has no price", count), nil)
		}
		if p < 0 {
			return errors.Config(fmt.Sprintf("table price for %d is negative", count), nil)
		}
	}
	for tier, p := range t.PowerPrices {
		if tier <= 0 {
			return errors.Config(fmt.Sprintf("power tier %d must be positive", tier), nil)
		}
		if p != nil && *p < 0 {
			return errors.Config(fmt.Sprintf("power price for tier %d is negative", tier), nil)
		}
	}
	if t.GroupBadgePrice < 0 || t.DealerBadgePrice < 0 {
		return errors.Config("badge prices must not be negative", nil)
	}
	return nil
}

// Hash returns a content hash identifying this set of prices
func (t *Tables) Hash() string {
	h, err := determinism.HashJSON(t)
	if err != nil {
		return ""
	}
	return h.Short()
}
