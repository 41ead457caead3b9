// Package types - Receipt types
package types

// LineItem is a single labeled component of a group's cost
type LineItem struct {
	// Label is the receipt text, e.g. "Double Table Fee"
	Label string `json:"label"`

	// Amount is the line item amount
	Amount Cents `json:"amount"`
}

// Receipt is the itemized cost of a group
type Receipt struct {
	// GroupID links to the source group
	GroupID string `json:"group_id,omitempty"`

	// Items contains the line items in display order
	Items []LineItem `json:"items"`

	// Total is the sum of all line items
	Total Cents `json:"total"`
}

// Add adds a line item to the receipt
func (r *Receipt) Add(item *LineItem) {
	if item == nil {
		return
	}
	r.Items = append(r.Items, *item)
	r.Total += item.Amount
}

// Find returns the first line item whose label matches
func (r *Receipt) Find(label string) (LineItem, bool) {
	for _, item := range r.Items {
		if item.Label == label {
			return item, true
		}
	}
	return LineItem{}, false
}
