// Package service orchestrates lead ingestion and reporting: it owns the
// token and snapshot cache slots, merges manual entries into the working
// set, and exposes the report and message operations the HTTP layer serves.
package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/manual"
	"leadboard_backend/internal/leads/message"
	"leadboard_backend/internal/zoho"
	"leadboard_backend/platform/apperr"
	"leadboard_backend/platform/cache"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
)

// CRMClient is the slice of the CRM client the service needs.
type CRMClient interface {
	ExchangeToken(ctx context.Context) (string, error)
	FetchAll(ctx context.Context, tokens zoho.TokenSource, progress zoho.ProgressFunc) ([]zoho.RawLead, error)
}

// Query narrows a read operation. A nil Range means no date filtering.
type Query struct {
	Range   *domain.DateRange
	Filters domain.Filters
	Force   bool
}

// Summary is the headline metrics block for a working set.
type Summary struct {
	Total    int `json:"total"`
	Owners   int `json:"owners"`
	Sources  int `json:"sources"`
	Statuses int `json:"statuses"`
}

// StatusCount is one status slice of an owner's pipeline.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OwnerBreakdown is the per-owner status distribution.
type OwnerBreakdown struct {
	Owner    string        `json:"owner"`
	Total    int           `json:"total"`
	Statuses []StatusCount `json:"statuses"`
}

// TriageEntry is one row of the today view, ready to paste into chat.
type TriageEntry struct {
	Lead      domain.Lead `json:"lead"`
	Shareable string      `json:"shareable"`
}

// OwnerViewEntry is one row of an owner's personal view.
type OwnerViewEntry struct {
	Lead  domain.Lead `json:"lead"`
	IsNew bool        `json:"isNew"`
}

// Service implements the lead operations.
type Service struct {
	client   CRMClient
	tokens   cache.Store[string]
	snapshot cache.Store[[]zoho.RawLead]
	manual   *manual.Store
	bus      events.Bus
	log      *logger.Logger

	tokenTTL    time.Duration
	snapshotTTL time.Duration

	now func() time.Time
}

// New creates the lead service.
func New(
	client CRMClient,
	tokens cache.Store[string],
	snapshot cache.Store[[]zoho.RawLead],
	manualStore *manual.Store,
	bus events.Bus,
	cfg config.CacheConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		client:      client,
		tokens:      tokens,
		snapshot:    snapshot,
		manual:      manualStore,
		bus:         bus,
		log:         log,
		tokenTTL:    cfg.GetTokenCacheTTL(),
		snapshotTTL: cfg.GetSnapshotCacheTTL(),
		now:         time.Now,
	}
}

// tokenSource adapts the token cache slot for the fetch loop. force drops
// the cached token first, which is how a 401 mid-snapshot recovers.
func (s *Service) tokenSource() zoho.TokenSource {
	return func(ctx context.Context, force bool) (string, error) {
		return s.tokens.GetOrRefresh(ctx, s.tokenTTL, force, s.client.ExchangeToken)
	}
}

// Snapshot returns the raw lead snapshot, fetching from the CRM when the
// cache entry is absent, expired, or force is set.
func (s *Service) Snapshot(ctx context.Context, force bool) ([]zoho.RawLead, error) {
	raws, err := s.snapshot.GetOrRefresh(ctx, s.snapshotTTL, force, func(ctx context.Context) ([]zoho.RawLead, error) {
		fetched, err := s.client.FetchAll(ctx, s.tokenSource(), nil)
		if err != nil {
			return nil, err
		}
		s.bus.Publish(ctx, SnapshotRefreshed{BaseEvent: events.NewBaseEvent(), Count: len(fetched)})
		return fetched, nil
	})
	if err != nil {
		return nil, upstreamError(err)
	}
	return raws, nil
}

// SnapshotRemaining reports how long the cached snapshot stays fresh.
func (s *Service) SnapshotRemaining(ctx context.Context) (time.Duration, bool) {
	return s.snapshot.Remaining(ctx)
}

// Refresh drops the snapshot cache entry and rebuilds it, returning the new
// record count. On upstream failure the partial count travels in the error
// details.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	raws, err := s.Snapshot(ctx, true)
	if err != nil {
		return 0, err
	}
	return len(raws), nil
}

// WorkingSet returns the normalized snapshot with manual entries merged in
// front, then date- and dimension-filtered per the query.
func (s *Service) WorkingSet(ctx context.Context, q Query) ([]domain.Lead, error) {
	raws, err := s.Snapshot(ctx, q.Force)
	if err != nil {
		return nil, err
	}
	leads := s.manual.Merge(domain.NormalizeAll(raws))
	if q.Range != nil {
		leads = domain.FilterByDateRange(leads, *q.Range)
	}
	return q.Filters.Apply(leads), nil
}

// Summarize computes the headline metrics for a working set.
func (s *Service) Summarize(leads []domain.Lead) Summary {
	owners := make(map[string]struct{})
	sources := make(map[string]struct{})
	statuses := make(map[string]struct{})
	for _, lead := range leads {
		owners[lead.Owner] = struct{}{}
		sources[lead.Source] = struct{}{}
		statuses[lead.Status] = struct{}{}
	}
	return Summary{
		Total:    len(leads),
		Owners:   len(owners),
		Sources:  len(sources),
		Statuses: len(statuses),
	}
}

// Report aggregates the working set along one dimension.
func (s *Service) Report(ctx context.Context, dim domain.Dimension, q Query) ([]domain.Group, error) {
	leads, err := s.WorkingSet(ctx, q)
	if err != nil {
		return nil, err
	}
	return domain.GroupBy(leads, dim), nil
}

// Breakdown returns the per-owner status distribution, owners ordered by
// total descending, statuses within an owner likewise.
func (s *Service) Breakdown(ctx context.Context, q Query) ([]OwnerBreakdown, error) {
	leads, err := s.WorkingSet(ctx, q)
	if err != nil {
		return nil, err
	}

	perOwner := domain.GroupBy(leads, domain.DimensionOwner)
	out := make([]OwnerBreakdown, 0, len(perOwner))
	for _, group := range perOwner {
		ownerLeads := domain.Filters{domain.DimensionOwner: {group.Key}}.Apply(leads)
		statuses := make([]StatusCount, 0)
		for _, sg := range domain.GroupBy(ownerLeads, domain.DimensionStatus) {
			statuses = append(statuses, StatusCount{Status: sg.Key, Count: sg.Count})
		}
		out = append(out, OwnerBreakdown{Owner: group.Key, Total: group.Count, Statuses: statuses})
	}
	return out, nil
}

// TodayTriage returns leads created today, optionally narrowed by a
// case-insensitive owner-name substring, each with its shareable block.
func (s *Service) TodayTriage(ctx context.Context, ownerSubstr string, force bool) ([]TriageEntry, error) {
	today := s.now()
	q := Query{Range: &domain.DateRange{Start: today, End: today}, Force: force}
	leads, err := s.WorkingSet(ctx, q)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(ownerSubstr))
	entries := make([]TriageEntry, 0, len(leads))
	for _, lead := range leads {
		if needle != "" && !strings.Contains(strings.ToLower(lead.Owner), needle) {
			continue
		}
		entries = append(entries, TriageEntry{Lead: lead, Shareable: message.Shareable(lead)})
	}
	return entries, nil
}

// OwnerView returns one owner's date-filtered rows, each classified under
// the recency window, new rows first and both partitions newest-first.
func (s *Service) OwnerView(ctx context.Context, owner string, window domain.Window, custom domain.DateRange, q Query) ([]OwnerViewEntry, error) {
	if q.Filters == nil {
		q.Filters = domain.Filters{}
	}
	q.Filters[domain.DimensionOwner] = []string{owner}

	leads, err := s.WorkingSet(ctx, q)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fresh := make([]OwnerViewEntry, 0, len(leads))
	stale := make([]OwnerViewEntry, 0, len(leads))
	for _, lead := range leads {
		entry := OwnerViewEntry{Lead: lead, IsNew: domain.IsNew(lead.CreatedTime, window, now, custom)}
		if entry.IsNew {
			fresh = append(fresh, entry)
		} else {
			stale = append(stale, entry)
		}
	}
	sortByCreatedDesc(fresh)
	sortByCreatedDesc(stale)
	return append(fresh, stale...), nil
}

// AddManual captures a hand-entered lead for the owner and announces it on
// the bus.
func (s *Service) AddManual(ctx context.Context, owner string, in manual.Input) domain.Lead {
	in.Owner = owner
	lead := s.manual.Add(in)
	s.bus.Publish(ctx, ManualLeadAdded{BaseEvent: events.NewBaseEvent(), LeadID: lead.ID, Owner: lead.Owner})
	return lead
}

// ComposeForLead renders one lead's outreach message and its download
// filename. The lead is looked up across the full merged set.
func (s *Service) ComposeForLead(ctx context.Context, id string, tpl message.Template) (string, string, error) {
	leads, err := s.WorkingSet(ctx, Query{})
	if err != nil {
		return "", "", err
	}
	for _, lead := range leads {
		if lead.ID == id {
			return message.Compose(lead, tpl, lead.Owner), message.Filename(lead), nil
		}
	}
	return "", "", apperr.NotFound("lead not found").WithOp("leads.compose")
}

// ComposeBulk renders messages for the owner's selected leads, in the order
// the ids were given, joined into one downloadable text.
func (s *Service) ComposeBulk(ctx context.Context, owner string, ids []string, tpl message.Template) (string, string, error) {
	leads, err := s.WorkingSet(ctx, Query{Filters: domain.Filters{domain.DimensionOwner: {owner}}})
	if err != nil {
		return "", "", err
	}

	byID := make(map[string]domain.Lead, len(leads))
	for _, lead := range leads {
		byID[lead.ID] = lead
	}
	selected := make([]domain.Lead, 0, len(ids))
	for _, id := range ids {
		if lead, ok := byID[id]; ok {
			selected = append(selected, lead)
		}
	}
	if len(selected) == 0 {
		return "", "", apperr.NotFound("no matching leads for this owner").WithOp("leads.compose_bulk")
	}

	return message.ComposeAll(selected, tpl, owner), message.BulkFilename(owner), nil
}

func sortByCreatedDesc(entries []OwnerViewEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, iok := domain.ParseCreatedTime(entries[i].Lead.CreatedTime)
		tj, jok := domain.ParseCreatedTime(entries[j].Lead.CreatedTime)
		if iok != jok {
			// Rows without a readable timestamp sink to the bottom.
			return iok
		}
		return ti.After(tj)
	})
}

// upstreamError maps client failures onto the typed error the HTTP layer
// turns into 502, carrying the partial count when a fetch aborted mid-way.
func upstreamError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var fetchErr *zoho.FetchError
	if errors.As(err, &fetchErr) {
		return apperr.Wrap(apperr.KindUpstream, "lead fetch failed", err).
			WithOp("leads.snapshot").
			WithDetails(map[string]interface{}{
				"page":         fetchErr.Page,
				"partialCount": len(fetchErr.Partial),
			})
	}

	var authErr *zoho.AuthError
	if errors.As(err, &authErr) {
		return apperr.Wrap(apperr.KindUpstream, "token exchange failed", err).WithOp("leads.token")
	}

	return apperr.Wrap(apperr.KindUpstream, "snapshot unavailable", err).WithOp("leads.snapshot")
}
