// Package domain holds the normalized lead row model and the pure
// operations over it: normalization, date-range filtering, aggregation and
// recency classification. Nothing in this package touches the network.
package domain

import (
	"strings"

	"leadboard_backend/internal/zoho"
)

// Sentinel values used when raw fields are absent. The owner column never
// ends up empty; every unusable owner payload resolves to OwnerUnassigned.
const (
	ValueNone       = "N/A"
	StatusNone      = "No Status"
	SourceNone      = "No Source"
	OwnerUnassigned = "Unassigned"
)

// Lead is the canonical row used everywhere downstream of ingestion.
// Rows are immutable after normalization.
type Lead struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	CreatedTime string `json:"createdTime"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
}

// Dimension is a groupable column of the row model.
type Dimension string

const (
	DimensionOwner  Dimension = "owner"
	DimensionStatus Dimension = "status"
	DimensionSource Dimension = "source"
)

// ParseDimension maps a request string onto a Dimension.
func ParseDimension(value string) (Dimension, bool) {
	switch Dimension(value) {
	case DimensionOwner, DimensionStatus, DimensionSource:
		return Dimension(value), true
	}
	return "", false
}

// Value returns the row's value for the given dimension.
func (l Lead) Value(dim Dimension) string {
	switch dim {
	case DimensionOwner:
		return l.Owner
	case DimensionStatus:
		return l.Status
	case DimensionSource:
		return l.Source
	}
	return ""
}

// Normalize maps a raw CRM record onto the canonical row. It is total and
// idempotent: re-normalizing an already-normalized-shaped record changes
// nothing.
func Normalize(raw zoho.RawLead) Lead {
	return Lead{
		ID:          defaultIfEmpty(raw.ID, ValueNone),
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		FullName:    strings.TrimSpace(raw.FirstName + " " + raw.LastName),
		Email:       defaultIfEmpty(raw.Email, ValueNone),
		Phone:       defaultIfEmpty(raw.Phone, ValueNone),
		Company:     defaultIfEmpty(raw.Company, ValueNone),
		Owner:       ResolveOwner(raw.Owner),
		Status:      defaultIfEmpty(raw.LeadStatus, StatusNone),
		Source:      defaultIfEmpty(raw.LeadSource, SourceNone),
		CreatedTime: defaultIfEmpty(raw.CreatedTime, ValueNone),
		Rating:      defaultIfEmpty(raw.Rating, ValueNone),
		Description: raw.Description,
	}
}

// NormalizeAll maps a raw snapshot onto canonical rows, preserving order.
func NormalizeAll(raws []zoho.RawLead) []Lead {
	leads := make([]Lead, 0, len(raws))
	for _, raw := range raws {
		leads = append(leads, Normalize(raw))
	}
	return leads
}

// ResolveOwner resolves the duck-typed Owner field to a display name.
// Structured object: its name sub-field, or Unassigned when absent/empty.
// Plain non-empty string: verbatim. Everything else: Unassigned.
// Total by construction; the result is never empty.
func ResolveOwner(ref zoho.OwnerRef) string {
	switch ref.Kind {
	case zoho.OwnerStructured, zoho.OwnerPlain:
		if ref.Name == "" {
			return OwnerUnassigned
		}
		return ref.Name
	default:
		return OwnerUnassigned
	}
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
