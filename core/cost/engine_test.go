package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

// testTables has one tier of each kind: priced (1, 2), custom (3) and
// explicitly free (4).
func testTables() *pricing.Tables {
	tables := pricing.Default()
	tables.PowerPrices = map[int]*int64{
		1: types.Fee(45),
		2: types.Fee(75),
		3: nil,
		4: types.Fee(0),
	}
	return tables
}

func dealer() types.Group {
	return types.Group{
		ID:         "g-1",
		Name:       "Paws & Claws",
		IsDealer:   true,
		Status:     types.StatusApproved,
		Tables:     2,
		Power:      0,
		AutoRecalc: true,
	}
}

func TestNormalize(t *testing.T) {
	e := NewEngine(testTables())

	tests := []struct {
		name         string
		mutate       func(g *types.Group)
		wantPower    int
		wantPowerFee int64
		wantTableFee int64
	}{
		{
			name:   "unselected power becomes no power",
			mutate: func(g *types.Group) { g.Power = types.PowerUnselected },
		},
		{
			name: "non-dealer loses power",
			mutate: func(g *types.Group) {
				g.IsDealer = false
				g.Power = 2
			},
		},
		{
			name: "auto recalc follows tier price",
			mutate: func(g *types.Group) {
				g.Power = 2
				g.PowerFee = types.Fee(10)
			},
			wantPower:    2,
			wantPowerFee: 75,
		},
		{
			name: "auto recalc keeps custom fee on custom tier",
			mutate: func(g *types.Group) {
				g.Power = 3
				g.PowerFee = types.Fee(120)
			},
			wantPower:    3,
			wantPowerFee: 120,
		},
		{
			name: "manual fee is authoritative",
			mutate: func(g *types.Group) {
				g.AutoRecalc = false
				g.Power = 2
				g.PowerFee = types.Fee(10)
			},
			wantPower:    2,
			wantPowerFee: 10,
		},
		{
			name: "nil and negative fees become zero",
			mutate: func(g *types.Group) {
				g.AutoRecalc = false
				g.PowerFee = nil
				g.TableFee = types.Fee(-5)
			},
		},
		{
			name:         "custom table fee survives",
			mutate:       func(g *types.Group) { g.TableFee = types.Fee(500) },
			wantTableFee: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := dealer()
			tt.mutate(&g)

			n := e.Normalize(g)
			assert.Equal(t, tt.wantPower, n.Power)
			require.NotNil(t, n.PowerFee)
			require.NotNil(t, n.TableFee)
			assert.Equal(t, tt.wantPowerFee, *n.PowerFee)
			assert.Equal(t, tt.wantTableFee, *n.TableFee)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	e := NewEngine(testTables())

	groups := []types.Group{
		dealer(),
		{IsDealer: true, Power: types.PowerUnselected, Tables: 1},
		{IsDealer: true, Power: 2, PowerFee: types.Fee(3), AutoRecalc: true, Tables: 4},
		{IsDealer: true, Power: 3, PowerFee: types.Fee(-40), AutoRecalc: true},
		{IsDealer: false, Power: 1, Badges: 8, TableFee: types.Fee(20)},
	}

	for _, g := range groups {
		once := e.Normalize(g)
		assert.Equal(t, once, e.Normalize(once))
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	e := NewEngine(testTables())

	g := dealer()
	g.Power = 2
	g.PowerFee = types.Fee(10)
	snapshot := g.Clone()

	_ = e.Normalize(g)
	assert.Equal(t, snapshot, g)
}

func TestTableCostLineItem(t *testing.T) {
	e := NewEngine(testTables())

	t.Run("price table default", func(t *testing.T) {
		g := dealer()
		g.TableFee = types.Fee(0)

		item, err := e.TableCostLineItem(g)
		require.NoError(t, err)
		assert.Equal(t, &types.LineItem{Label: "Double Table Fee", Amount: 30000}, item)
	})

	t.Run("custom table fee", func(t *testing.T) {
		g := dealer()
		g.TableFee = types.Fee(500)

		item, err := e.TableCostLineItem(g)
		require.NoError(t, err)
		assert.Equal(t, &types.LineItem{Label: "Custom Fee for Double Table", Amount: 50000}, item)
	})

	t.Run("no table", func(t *testing.T) {
		g := dealer()
		g.Tables = 0

		item, err := e.TableCostLineItem(g)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("manual fees", func(t *testing.T) {
		g := dealer()
		g.AutoRecalc = false

		item, err := e.TableCostLineItem(g)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("missing price entry", func(t *testing.T) {
		g := dealer()
		g.Tables = 9

		_, err := e.TableCostLineItem(g)
		assert.True(t, errors.IsType(err, errors.TypePricing))
	})
}

func TestPowerCostLineItem(t *testing.T) {
	e := NewEngine(testTables())

	tests := []struct {
		name   string
		mutate func(g *types.Group)
		want   *types.LineItem
	}{
		{
			name: "priced tier ignores stored fee",
			mutate: func(g *types.Group) {
				g.Power = 2
				g.PowerFee = types.Fee(999)
			},
			want: &types.LineItem{Label: "Tier 2 Power Fee", Amount: 7500},
		},
		{
			name: "custom tier uses stored fee",
			mutate: func(g *types.Group) {
				g.Power = 3
				g.PowerFee = types.Fee(120)
			},
			want: &types.LineItem{Label: "Custom Fee for Tier 3 Power", Amount: 12000},
		},
		{
			name:   "custom tier without fee",
			mutate: func(g *types.Group) { g.Power = 3 },
		},
		{
			name:   "no power",
			mutate: func(g *types.Group) { g.PowerFee = types.Fee(50) },
		},
		{
			name: "manual fees",
			mutate: func(g *types.Group) {
				g.AutoRecalc = false
				g.Power = 2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := dealer()
			tt.mutate(&g)
			assert.Equal(t, tt.want, e.PowerCostLineItem(g))
		})
	}
}

func TestLineItemsAddUpToDefaultCost(t *testing.T) {
	e := NewEngine(testTables())

	for tables := 1; tables <= 6; tables++ {
		for _, power := range []int{1, 2, 4} {
			g := dealer()
			g.Tables = tables
			g.Power = power

			n := e.Normalize(g)
			table, err := e.TableCostLineItem(n)
			require.NoError(t, err)
			powerItem := e.PowerCostLineItem(n)
			require.NotNil(t, table)
			require.NotNil(t, powerItem)

			total, err := e.DefaultCost(g)
			require.NoError(t, err)
			assert.Equal(t, table.Amount+powerItem.Amount, total, "tables=%d power=%d", tables, power)
		}
	}
}

func TestItemize(t *testing.T) {
	e := NewEngine(testTables())

	g := dealer()
	g.Power = 2

	receipt, err := e.Itemize(g)
	require.NoError(t, err)
	assert.Equal(t, "g-1", receipt.GroupID)
	assert.Equal(t, []types.LineItem{
		{Label: "Double Table Fee", Amount: 30000},
		{Label: "Tier 2 Power Fee", Amount: 7500},
	}, receipt.Items)
	assert.Equal(t, types.Cents(37500), receipt.Total)
}

func TestItemizePerHeadGroup(t *testing.T) {
	e := NewEngine(testTables())

	g := types.Group{Badges: 4, AutoRecalc: true, Power: 2}

	receipt, err := e.Itemize(g)
	require.NoError(t, err)
	assert.Equal(t, []types.LineItem{{Label: "4 Group Badges", Amount: 26000}}, receipt.Items)
}

func TestDealerMaxBadges(t *testing.T) {
	tables := testTables()
	e := NewEngine(tables)

	g := dealer()
	g.Tables = 1
	assert.Equal(t, 3, e.DealerMaxBadges(g))

	g.Tables = 6
	assert.Equal(t, 12, e.DealerMaxBadges(g))

	tables.MaxDealers = 5
	assert.Equal(t, 5, e.DealerMaxBadges(g))
}

func TestNewEngineDefaultsPrices(t *testing.T) {
	e := NewEngine(nil)
	require.NotNil(t, e.Prices())
	assert.Equal(t, int64(150), e.Prices().TablePrices[1])
}
