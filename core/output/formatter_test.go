package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/diff"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/validation"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

func sampleReceipt() *types.Receipt {
	r := &types.Receipt{GroupID: "g-1"}
	r.Add(&types.LineItem{Label: "Double Table Fee", Amount: 30000})
	r.Add(&types.LineItem{Label: "Tier 2 Power Fee", Amount: 7500})
	return r
}

func TestNew(t *testing.T) {
	f, err := New("", false)
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f.Format())

	f, err = New("json", false)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	_, err = New("html", false)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestCLIQuote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).RenderQuote(&buf, sampleReceipt()))

	out := buf.String()
	assert.Contains(t, out, "Group g-1")
	assert.Regexp(t, `Double Table Fee\s+\$300\.00`, out)
	assert.Regexp(t, `Total\s+\$375\.00`, out)
	assert.NotContains(t, out, "\033[")
}

func TestCLIQuoteColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{Color: true}).RenderQuote(&buf, sampleReceipt()))
	assert.Contains(t, buf.String(), ansiBold+"Total"+ansiReset)
}

func TestCLIPreview(t *testing.T) {
	p := &cost.Preview{Kind: cost.KindPower, Field: "power", Label: "Remove Power", OldCost: 12000, Delta: -12000}

	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).RenderPreview(&buf, p))

	out := buf.String()
	assert.Contains(t, out, "Remove Power")
	assert.Regexp(t, `Change\s+-\$120\.00`, out)
	assert.Regexp(t, `New\s+\$0\.00`, out)
}

func TestCLIDiff(t *testing.T) {
	r := &diff.Result{
		TotalBefore: 19500,
		TotalAfter:  52500,
		Delta:       33000,
		Adjustments: []diff.Adjustment{
			{Field: "tables", Label: "Upgrade Table to Triple Table", Delta: 30000},
			{Field: "power", Label: "Upgrade Power to Tier 2", Delta: 3000},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).RenderDiff(&buf, r))

	out := buf.String()
	assert.Regexp(t, `\+\$300\.00\s+Upgrade Table to Triple Table`, out)
	assert.Regexp(t, `Change\s+\+\$330\.00`, out)
}

func TestCLIValidation(t *testing.T) {
	var buf bytes.Buffer
	f := &CLIFormatter{}

	require.NoError(t, f.RenderValidation(&buf, nil))
	assert.Equal(t, "Group is valid\n", buf.String())

	buf.Reset()
	require.NoError(t, f.RenderValidation(&buf, []validation.FieldError{{Field: "power", Message: validation.MsgSelectPower}}))
	assert.Regexp(t, `power\s+Please select what power level`, buf.String())
}

func TestCLIPrices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&CLIFormatter{}).RenderPrices(&buf, pricing.Default()))

	out := buf.String()
	assert.Contains(t, out, "Single Table: $150")
	assert.Regexp(t, `Group\s+\$65\.00`, out)
}

func TestJSONPreviewIncludesNewCost(t *testing.T) {
	p := &cost.Preview{Kind: cost.KindTables, Field: "tables", OldCost: 15000, Delta: 30000}

	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).RenderPreview(&buf, p))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, float64(45000), doc["new_cost"])
	assert.Equal(t, "tables", doc["kind"])
}

func TestJSONValidation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).RenderValidation(&buf, nil))
	assert.JSONEq(t, `{"valid":true,"errors":[]}`, buf.String())
}

func TestJSONQuote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{Indent: "  "}).RenderQuote(&buf, sampleReceipt()))

	var receipt types.Receipt
	require.NoError(t, json.Unmarshal(buf.Bytes(), &receipt))
	assert.Equal(t, types.Cents(37500), receipt.Total)
}
