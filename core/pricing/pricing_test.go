package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

func TestDefaultTablesAreValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestTablePrice(t *testing.T) {
	tables := Default()

	p, err := tables.TablePrice(2)
	require.NoError(t, err)
	assert.Equal(t, int64(300), p)

	p, err = tables.TablePrice(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p)

	_, err = tables.TablePrice(9)
	assert.True(t, errors.IsType(err, errors.TypePricing))
}

func TestTableRepr(t *testing.T) {
	tables := Default()

	repr, err := tables.TableRepr(6)
	require.NoError(t, err)
	assert.Equal(t, "15x15 Suite", repr)

	repr, err = tables.TableRepr(0)
	require.NoError(t, err)
	assert.Equal(t, "No Table", repr)

	_, err = tables.TableRepr(7)
	assert.Error(t, err)
}

func TestPowerPrice(t *testing.T) {
	tables := Default()

	tests := []struct {
		name   string
		tier   int
		want   int64
		wantOK bool
	}{
		{"no power is free", 0, 0, true},
		{"priced tier", 2, 75, true},
		{"custom tier", 4, 0, false},
		{"unknown tier", 9, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tables.PowerPrice(tt.tier)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierBounds(t *testing.T) {
	tables := Default()
	assert.Equal(t, 4, tables.MaxPowerTier())
	assert.Equal(t, 6, tables.MaxTables())
	assert.True(t, tables.HasPowerTier(4))
	assert.False(t, tables.HasPowerTier(5))
}

func TestOptionLabels(t *testing.T) {
	tables := Default()

	tableOpts := tables.TableOpts()
	require.Len(t, tableOpts, 7)
	assert.Equal(t, Option{Value: 0, Label: "No Table"}, tableOpts[0])
	assert.Equal(t, Option{Value: 2, Label: "Double Table"}, tableOpts[2])

	prereg := tables.PreregTableOpts()
	assert.Equal(t, "Single Table: $150", prereg[0].Label)

	power := tables.PreregPowerOpts()
	assert.Equal(t, Option{Value: -1, Label: "Select a Power Level"}, power[0])
	assert.Equal(t, "No Power", power[1].Label)
	assert.Equal(t, "Tier 2: $75 (Up to 1000W, shared circuit)", power[3].Label)
	assert.Equal(t, "Tier 4 (High draw, priced after review)", power[5].Label)
}

func TestValidateRejectsMissingTablePrice(t *testing.T) {
	tables := Default()
	delete(tables.TablePrices, 3)

	err := tables.Validate()
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestValidateRejectsNegativePowerPrice(t *testing.T) {
	tables := Default()
	tables.PowerPrices[2] = price(-1)

	assert.Error(t, tables.Validate())
}

func TestHashChangesWithPrices(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Hash(), b.Hash())

	b.TablePrices[1] = 175
	assert.NotEqual(t, a.Hash(), b.Hash())
}
