// Package zoho provides the HTTP client for the Zoho CRM v2 API: the
// refresh-token exchange and the paginated Leads fetch.
package zoho

import (
	"bytes"
	"encoding/json"
)

// RawLead is a lead record as delivered by the CRM. Any field may be absent;
// no invariants are enforced at this layer.
type RawLead struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"First_Name"`
	LastName    string   `json:"Last_Name"`
	Email       string   `json:"Email"`
	Phone       string   `json:"Phone"`
	Company     string   `json:"Company"`
	Owner       OwnerRef `json:"Owner"`
	LeadStatus  string   `json:"Lead_Status"`
	LeadSource  string   `json:"Lead_Source"`
	CreatedTime string   `json:"Created_Time"`
	Rating      string   `json:"Rating"`
	Description string   `json:"Description"`
}

// OwnerKind tags the shape the Owner field arrived in.
type OwnerKind int

const (
	// OwnerAbsent covers a missing or null Owner field.
	OwnerAbsent OwnerKind = iota
	// OwnerStructured is the usual {id, name, email} object.
	OwnerStructured
	// OwnerPlain is a bare string owner name.
	OwnerPlain
	// OwnerInvalid covers any other payload shape (number, array, ...).
	OwnerInvalid
)

// OwnerRef is the tagged union for the CRM's duck-typed Owner field.
// Decoding is total: unexpected shapes become OwnerInvalid, never an error.
type OwnerRef struct {
	Kind OwnerKind
	Name string
}

type ownerObject struct {
	Name string `json:"name"`
}

// UnmarshalJSON decodes the Owner field from any of its wire shapes.
func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = OwnerRef{Kind: OwnerAbsent}
		return nil
	}

	switch trimmed[0] {
	case '{':
		var obj ownerObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			*o = OwnerRef{Kind: OwnerInvalid}
			return nil
		}
		*o = OwnerRef{Kind: OwnerStructured, Name: obj.Name}
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			*o = OwnerRef{Kind: OwnerInvalid}
			return nil
		}
		*o = OwnerRef{Kind: OwnerPlain, Name: name}
	default:
		*o = OwnerRef{Kind: OwnerInvalid}
	}

	return nil
}

// MarshalJSON re-encodes the union so cached snapshots round-trip.
func (o OwnerRef) MarshalJSON() ([]byte, error) {
	switch o.Kind {
	case OwnerStructured:
		return json.Marshal(ownerObject{Name: o.Name})
	case OwnerPlain:
		return json.Marshal(o.Name)
	default:
		return []byte("null"), nil
	}
}
