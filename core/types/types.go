// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Status is the review status of a group
type Status string

const (
	StatusUnapproved Status = "unapproved"
	StatusApproved   Status = "approved"
	StatusWaitlisted Status = "waitlisted"
	StatusDeclined   Status = "declined"
	StatusShared     Status = "shared"
	StatusCancelled  Status = "cancelled"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusUnapproved, StatusApproved, StatusWaitlisted, StatusDeclined, StatusShared, StatusCancelled:
		return true
	default:
		return false
	}
}

// PowerUnselected is the sentinel for a dealer who has not picked a power level yet
const PowerUnselected = -1

// Group is a snapshot of a dealer/vendor registration record.
// Only the attributes that affect pricing and dealer validation are modeled.
type Group struct {
	// ID is the host record identifier
	ID string `json:"id,omitempty"`

	// Name is the table name
	Name string `json:"name,omitempty"`

	// IsDealer marks dealer groups; non-dealer groups are priced per badge
	IsDealer bool `json:"is_dealer"`

	// Status is the review status
	Status Status `json:"status,omitempty" validate:"omitempty,oneof=unapproved approved waitlisted declined shared cancelled"`

	// Tables is the number of tables reserved (0 = no table)
	Tables int `json:"tables" validate:"gte=0"`

	// Power is the power tier (-1 = unselected, 0 = no power)
	Power int `json:"power" validate:"gte=-1"`

	// PowerFee is the power fee in whole currency units (nil = unset)
	PowerFee *int64 `json:"power_fee"`

	// TableFee is a custom table fee in whole currency units (nil or 0 = price table default)
	TableFee *int64 `json:"table_fee"`

	// AutoRecalc derives fees from the price tables when true
	AutoRecalc bool `json:"auto_recalc"`

	// Badges is the number of badges in the group
	Badges int `json:"badges" validate:"gte=0"`

	// Cost is the last persisted total cost
	Cost Cents `json:"cost"`

	// PowerUsage lists the devices the dealer will power
	PowerUsage string `json:"power_usage,omitempty"`

	// TaxNumber is the state business tax number
	TaxNumber string `json:"tax_number,omitempty" validate:"omitempty,taxnumber"`

	// ReviewNotes is free-form text for the dealer committee
	ReviewNotes string `json:"review_notes,omitempty" validate:"max=1000"`
}

// Clone returns a deep copy of the group
func (g Group) Clone() Group {
	out := g
	out.PowerFee = copyFee(g.PowerFee)
	out.TableFee = copyFee(g.TableFee)
	return out
}

// PowerFeeValue returns the power fee with nil treated as zero
func (g Group) PowerFeeValue() int64 {
	if g.PowerFee == nil {
		return 0
	}
	return *g.PowerFee
}

// TableFeeValue returns the table fee with nil treated as zero
func (g Group) TableFeeValue() int64 {
	if g.TableFee == nil {
		return 0
	}
	return *g.TableFee
}

// Fee returns a pointer to a fee value
func Fee(v int64) *int64 {
	return &v
}

func copyFee(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// groupAlias has Group's fields without its methods
type groupAlias Group

// UnmarshalJSON decodes a group, truncating legacy fractional table counts
func (g *Group) UnmarshalJSON(data []byte) error {
	aux := struct {
		*groupAlias
		Tables json.Number `json:"tables"`
	}{groupAlias: (*groupAlias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Tables == "" {
		g.Tables = 0
		return nil
	}
	f, err := aux.Tables.Float64()
	if err != nil {
		return fmt.Errorf("tables: %w", err)
	}
	g.Tables = int(math.Trunc(f))
	return nil
}
