// Package api - API types for the group cost endpoints
// These types define the wire contract. Money is always sent as integer
// cents together with its display form.
package api

import (
	"encoding/json"
	"strings"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/diff"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/validation"
)

// Money is an amount on the wire
type Money struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

// NewMoney converts cents to the wire form
func NewMoney(c types.Cents) Money {
	return Money{Cents: int64(c), Display: c.String()}
}

// ResponseMetadata is attached to every successful response
type ResponseMetadata struct {
	RequestID     string `json:"request_id"`
	InputHash     string `json:"input_hash,omitempty"`
	EngineVersion string `json:"engine_version"`
	PricingHash   string `json:"pricing_hash"`
	DurationMs    int64  `json:"duration_ms"`
}

// QuoteRequest is the input to POST /v1/quote
type QuoteRequest struct {
	Group types.Group `json:"group"`
}

// LineItem is a receipt line on the wire
type LineItem struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// QuoteResponse is the itemized receipt for a group
type QuoteResponse struct {
	GroupID  string            `json:"group_id,omitempty"`
	Items    []LineItem        `json:"items"`
	Total    Money             `json:"total"`
	Group    types.Group       `json:"group"`
	Metadata *ResponseMetadata `json:"metadata"`
}

// PreviewRequest is the input to POST /v1/preview
type PreviewRequest struct {
	Group types.Group `json:"group"`
	Field string      `json:"field"`

	// Value is the submitted value; strings, numbers and booleans are accepted
	Value json.RawMessage `json:"value"`
}

// RawValue returns Value as the text a form would have submitted
func (r *PreviewRequest) RawValue() string {
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	v := strings.TrimSpace(string(r.Value))
	if v == "null" {
		return ""
	}
	return v
}

// PreviewResponse is the priced effect of one change
type PreviewResponse struct {
	Kind     cost.Kind         `json:"kind"`
	Field    string            `json:"field"`
	Label    string            `json:"label"`
	OldCost  Money             `json:"old_cost"`
	Delta    Money             `json:"delta"`
	NewCost  Money             `json:"new_cost"`
	Group    types.Group       `json:"group"`
	Metadata *ResponseMetadata `json:"metadata"`
}

// DiffRequest is the input to POST /v1/diff
type DiffRequest struct {
	Before types.Group `json:"before"`
	After  types.Group `json:"after"`
}

// Adjustment is one priced field change on the wire
type Adjustment struct {
	Field   string    `json:"field"`
	Kind    cost.Kind `json:"kind"`
	Label   string    `json:"label"`
	OldCost Money     `json:"old_cost"`
	Delta   Money     `json:"delta"`
}

// DiffResponse explains the cost change between two snapshots
type DiffResponse struct {
	TotalBefore Money             `json:"total_before"`
	TotalAfter  Money             `json:"total_after"`
	Delta       Money             `json:"delta"`
	Adjustments []Adjustment      `json:"adjustments"`
	Metadata    *ResponseMetadata `json:"metadata"`
}

// ValidateRequest is the input to POST /v1/validate
type ValidateRequest struct {
	Group types.Group `json:"group"`
}

// ValidateResponse lists the rules a group breaks
type ValidateResponse struct {
	Valid    bool                    `json:"valid"`
	Errors   []validation.FieldError `json:"errors"`
	Metadata *ResponseMetadata       `json:"metadata"`
}

// PricesResponse lists the selectable options with their prices
type PricesResponse struct {
	TableOptions     []pricing.Option  `json:"table_options"`
	PowerOptions     []pricing.Option  `json:"power_options"`
	GroupBadgePrice  Money             `json:"group_badge_price"`
	DealerBadgePrice Money             `json:"dealer_badge_price"`
	Metadata         *ResponseMetadata `json:"metadata"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toQuoteResponse(receipt *types.Receipt, g types.Group) *QuoteResponse {
	items := make([]LineItem, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		items = append(items, LineItem{Label: item.Label, Amount: NewMoney(item.Amount)})
	}
	return &QuoteResponse{
		GroupID: receipt.GroupID,
		Items:   items,
		Total:   NewMoney(receipt.Total),
		Group:   g,
	}
}

func toPreviewResponse(p *cost.Preview) *PreviewResponse {
	return &PreviewResponse{
		Kind:    p.Kind,
		Field:   p.Field,
		Label:   p.Label,
		OldCost: NewMoney(p.OldCost),
		Delta:   NewMoney(p.Delta),
		NewCost: NewMoney(p.NewCost()),
		Group:   p.Group,
	}
}

func toDiffResponse(r *diff.Result) *DiffResponse {
	adjustments := make([]Adjustment, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		adjustments = append(adjustments, Adjustment{
			Field:   a.Field,
			Kind:    a.Kind,
			Label:   a.Label,
			OldCost: NewMoney(a.OldCost),
			Delta:   NewMoney(a.Delta),
		})
	}
	return &DiffResponse{
		TotalBefore: NewMoney(r.TotalBefore),
		TotalAfter:  NewMoney(r.TotalAfter),
		Delta:       NewMoney(r.Delta),
		Adjustments: adjustments,
	}
}
