// Package snapshot reads group snapshots from JSON documents and writes
// updated groups back into them.
//
// A document is either a bare group object or a larger host export, in
// which case a gjson path selects the group ("data.group", "groups.2").
package snapshot

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

// Stdin is the path that reads the document from standard input
const Stdin = "-"

// Document is a JSON document holding one group
type Document struct {
	// Path is where the document was read from
	Path string

	// Selector is the gjson path of the group; empty for a bare group
	Selector string

	raw []byte
}

// Read loads a document from path, or from r when path is Stdin
func Read(path, selector string, r io.Reader) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "failed to read "+path, err)
	}
	return Parse(path, selector, data)
}

// Parse wraps raw JSON as a document
func Parse(path, selector string, data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Newf(errors.TypeInput, "%s is not valid JSON", path)
	}
	return &Document{Path: path, Selector: selector, raw: data}, nil
}

// Group decodes the selected group
func (d *Document) Group() (types.Group, error) {
	var g types.Group

	raw := d.raw
	if d.Selector != "" {
		res := gjson.GetBytes(d.raw, d.Selector)
		if !res.Exists() {
			return g, errors.Newf(errors.TypeInput, "%s: nothing at %q", d.Path, d.Selector)
		}
		if !res.IsObject() {
			return g, errors.Newf(errors.TypeInput, "%s: %q is not an object", d.Path, d.Selector)
		}
		raw = []byte(res.Raw)
	}

	if err := json.Unmarshal(raw, &g); err != nil {
		return g, errors.Wrap(errors.TypeInput, "failed to decode group from "+d.Path, err)
	}
	return g, nil
}

// Replace writes g and its cost back into the document, keeping every
// other field of the selected object
func (d *Document) Replace(g types.Group) error {
	fields := []struct {
		key   string
		value interface{}
	}{
		{"tables", g.Tables},
		{"power", g.Power},
		{"power_fee", g.PowerFee},
		{"table_fee", g.TableFee},
		{"auto_recalc", g.AutoRecalc},
		{"badges", g.Badges},
		{"is_dealer", g.IsDealer},
		{"cost", g.Cost},
	}

	out := d.raw
	for _, f := range fields {
		path := f.key
		if d.Selector != "" {
			path = d.Selector + "." + f.key
		}

		var err error
		out, err = sjson.SetBytes(out, path, f.value)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "failed to update "+path, err)
		}
	}

	d.raw = out
	return nil
}

// Bytes returns the document's JSON
func (d *Document) Bytes() []byte {
	return d.raw
}
