package handler

import (
	"fmt"
	"time"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseQuery reads the shared read-endpoint parameters: a `range` preset or
// explicit `start`/`end` dates, plus repeated owner/status/source filters.
func parseQuery(c *gin.Context) (service.Query, error) {
	q := service.Query{}

	r, err := parseRange(c)
	if err != nil {
		return q, err
	}
	q.Range = r

	filters := domain.Filters{}
	if owners := c.QueryArray("owner"); len(owners) > 0 {
		filters[domain.DimensionOwner] = owners
	}
	if statuses := c.QueryArray("status"); len(statuses) > 0 {
		filters[domain.DimensionStatus] = statuses
	}
	if sources := c.QueryArray("source"); len(sources) > 0 {
		filters[domain.DimensionSource] = sources
	}
	if len(filters) > 0 {
		q.Filters = filters
	}

	return q, nil
}

func parseRange(c *gin.Context) (*domain.DateRange, error) {
	start, end := c.Query("start"), c.Query("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			return nil, fmt.Errorf("start and end must be given together")
		}
		startDate, err := time.ParseInLocation(dateLayout, start, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q", start)
		}
		endDate, err := time.ParseInLocation(dateLayout, end, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q", end)
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("end date precedes start date")
		}
		return &domain.DateRange{Start: startDate, End: endDate}, nil
	}

	preset := c.Query("range")
	if preset == "" {
		return nil, nil
	}
	if preset == domain.PresetCustom {
		return nil, fmt.Errorf("custom range requires start and end")
	}
	r, ok := domain.ResolvePreset(preset, time.Now())
	if !ok {
		return nil, fmt.Errorf("unknown range preset %q", preset)
	}
	return &r, nil
}

// parseWindow reads the recency policy for the owner view. The custom
// window reuses the windowStart/windowEnd parameters so it can differ from
// the date-range filter.
func parseWindow(c *gin.Context) (domain.Window, domain.DateRange, error) {
	value := c.Query("window")
	if value == "" {
		return domain.WindowToday, domain.DateRange{}, nil
	}
	window, ok := domain.ParseWindow(value)
	if !ok {
		return "", domain.DateRange{}, fmt.Errorf("unknown recency window %q", value)
	}
	if window != domain.WindowCustom {
		return window, domain.DateRange{}, nil
	}

	start, end := c.Query("windowStart"), c.Query("windowEnd")
	if start == "" || end == "" {
		return "", domain.DateRange{}, fmt.Errorf("custom window requires windowStart and windowEnd")
	}
	startDate, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return "", domain.DateRange{}, fmt.Errorf("invalid windowStart %q", start)
	}
	endDate, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return "", domain.DateRange{}, fmt.Errorf("invalid windowEnd %q", end)
	}
	return window, domain.DateRange{Start: startDate, End: endDate}, nil
}
