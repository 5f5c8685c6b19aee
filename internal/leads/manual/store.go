// Package manual keeps leads entered by hand through the API. The store
// is process-local and deliberately ephemeral: entries live until the
// process exits and are never written back upstream.
package manual

import (
	"fmt"
	"sync"
	"time"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/phone"
)

const createdLayout = "2006-01-02T15:04:05"

// Input carries the fields a caller may set on a hand-entered lead.
type Input struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Company     string
	Owner       string
	Source      string
	Description string
}

// Store holds manual leads in insertion order. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	seq   int
	leads []domain.Lead
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add records a new manual lead assigned to the given owner and returns
// the stored row. IDs are synthetic and cannot collide with upstream
// ones. Phone numbers are normalized to E.164 when possible; a number
// that cannot be normalized is kept as typed.
func (s *Store) Add(in Input) domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	phoneValue := in.Phone
	if in.Phone != "" {
		phoneValue = phone.NormalizeE164(in.Phone)
	}
	lead := domain.Lead{
		ID:          fmt.Sprintf("manual-%d", s.seq),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		FullName:    joinName(in.FirstName, in.LastName),
		Email:       orNone(in.Email),
		Phone:       orNone(phoneValue),
		Company:     orNone(in.Company),
		Owner:       orUnassigned(in.Owner),
		Status:      "New",
		Source:      orManual(in.Source),
		CreatedTime: s.now().Format(createdLayout),
		Rating:      domain.ValueNone,
		Description: in.Description,
	}
	s.leads = append(s.leads, lead)
	return lead
}

// All returns a copy of the stored leads in insertion order.
func (s *Store) All() []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// ForOwner returns the stored leads assigned to the given owner.
func (s *Store) ForOwner(owner string) []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Lead
	for _, lead := range s.leads {
		if lead.Owner == owner {
			out = append(out, lead)
		}
	}
	return out
}

// Merge prepends the store's leads to a fetched snapshot. Manual entries
// come first so freshly captured leads surface at the top of any view.
func (s *Store) Merge(fetched []domain.Lead) []domain.Lead {
	own := s.All()
	out := make([]domain.Lead, 0, len(own)+len(fetched))
	out = append(out, own...)
	out = append(out, fetched...)
	return out
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func orNone(v string) string {
	if v == "" {
		return domain.ValueNone
	}
	return v
}

func orUnassigned(v string) string {
	if v == "" {
		return domain.OwnerUnassigned
	}
	return v
}

func orManual(v string) string {
	if v == "" {
		return "Manual Entry"
	}
	return v
}
