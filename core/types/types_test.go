package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsString(t *testing.T) {
	tests := []struct {
		in     Cents
		want   string
		signed string
	}{
		{0, "$0.00", "+$0.00"},
		{30000, "$300.00", "+$300.00"},
		{1250, "$12.50", "+$12.50"},
		{-7500, "-$75.00", "-$75.00"},
		{5, "$0.05", "+$0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
			assert.Equal(t, tt.signed, tt.in.Signed())
		})
	}
}

func TestFromWhole(t *testing.T) {
	assert.Equal(t, Cents(30000), FromWhole(300))
	assert.Equal(t, Cents(-500), FromWhole(-5))
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"$12.50", 1250},
		{"12.5", 1250},
		{"300", 30000},
		{"-3", -300},
		{" $0.01 ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCents(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCents("1.005")
	assert.Error(t, err)

	_, err = ParseCents("ten")
	assert.Error(t, err)
}

func TestGroupUnmarshalTruncatesLegacyTables(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"tables": 2.0, "power": 3, "power_fee": null, "auto_recalc": true}`), &g)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Tables)
	assert.Equal(t, 3, g.Power)
	assert.Nil(t, g.PowerFee)
	assert.True(t, g.AutoRecalc)

	err = json.Unmarshal([]byte(`{"tables": 1.5}`), &g)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Tables)
}

func TestGroupUnmarshalRejectsNonNumericTables(t *testing.T) {
	var g Group
	err := json.Unmarshal([]byte(`{"tables": "two"}`), &g)
	assert.Error(t, err)
}

func TestGroupCloneIsDeep(t *testing.T) {
	g := Group{PowerFee: Fee(50), TableFee: Fee(100)}
	c := g.Clone()

	*c.PowerFee = 75
	*c.TableFee = 0

	assert.Equal(t, int64(50), *g.PowerFee)
	assert.Equal(t, int64(100), *g.TableFee)
}

func TestReceiptAdd(t *testing.T) {
	var r Receipt
	r.Add(&LineItem{Label: "Double Table Fee", Amount: 30000})
	r.Add(nil)
	r.Add(&LineItem{Label: "Tier 2 Power Fee", Amount: 7500})

	assert.Len(t, r.Items, 2)
	assert.Equal(t, Cents(37500), r.Total)

	item, ok := r.Find("Tier 2 Power Fee")
	assert.True(t, ok)
	assert.Equal(t, Cents(7500), item.Amount)
}
