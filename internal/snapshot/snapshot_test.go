package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

const export = `{
  "exported_at": "2026-10-01",
  "data": {
    "group": {"id": "g-9", "name": "Fox Den", "is_dealer": true, "tables": 2.0, "power": 1, "power_fee": null, "auto_recalc": true, "location": "A12"}
  }
}`

func TestBareGroupFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"g-1","tables":3,"is_dealer":true}`), 0644))

	doc, err := Read(path, "", nil)
	require.NoError(t, err)

	g, err := doc.Group()
	require.NoError(t, err)
	assert.Equal(t, "g-1", g.ID)
	assert.Equal(t, 3, g.Tables)
}

func TestSelectedGroupFromStdin(t *testing.T) {
	doc, err := Read(Stdin, "data.group", strings.NewReader(export))
	require.NoError(t, err)

	g, err := doc.Group()
	require.NoError(t, err)
	assert.Equal(t, "Fox Den", g.Name)
	assert.Equal(t, 2, g.Tables)
	assert.Nil(t, g.PowerFee)
}

func TestSelectorErrors(t *testing.T) {
	doc, err := Parse("export.json", "data.missing", []byte(export))
	require.NoError(t, err)
	_, err = doc.Group()
	assert.True(t, errors.IsType(err, errors.TypeInput))

	doc, err = Parse("export.json", "exported_at", []byte(export))
	require.NoError(t, err)
	_, err = doc.Group()
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestInvalidJSON(t *testing.T) {
	_, err := Parse("broken.json", "", []byte(`{"id":`))
	assert.True(t, errors.IsType(err, errors.TypeInput))

	_, err = Read(filepath.Join(t.TempDir(), "absent.json"), "", nil)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestReplaceKeepsOtherFields(t *testing.T) {
	doc, err := Parse("export.json", "data.group", []byte(export))
	require.NoError(t, err)

	g, err := doc.Group()
	require.NoError(t, err)
	g.Power = 2
	g.PowerFee = types.Fee(75)
	g.TableFee = types.Fee(0)
	g.Cost = 37500

	require.NoError(t, doc.Replace(g))

	out := doc.Bytes()
	assert.Equal(t, "2026-10-01", gjson.GetBytes(out, "exported_at").String())
	assert.Equal(t, "A12", gjson.GetBytes(out, "data.group.location").String())
	assert.Equal(t, int64(2), gjson.GetBytes(out, "data.group.power").Int())
	assert.Equal(t, int64(75), gjson.GetBytes(out, "data.group.power_fee").Int())
	assert.Equal(t, int64(37500), gjson.GetBytes(out, "data.group.cost").Int())

	reread, err := Parse("export.json", "data.group", out)
	require.NoError(t, err)
	again, err := reread.Group()
	require.NoError(t, err)
	assert.Equal(t, g, again)
}

func TestReplaceBareGroup(t *testing.T) {
	doc, err := Parse("group.json", "", []byte(`{"id":"g-1","tables":1}`))
	require.NoError(t, err)

	require.NoError(t, doc.Replace(types.Group{ID: "g-1", Tables: 4}))
	assert.Equal(t, int64(4), gjson.GetBytes(doc.Bytes(), "tables").Int())
	assert.Equal(t, gjson.Null, gjson.GetBytes(doc.Bytes(), "power_fee").Type)
}
