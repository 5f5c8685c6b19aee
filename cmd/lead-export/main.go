// The lead-export binary dumps the normalized lead snapshot to stdout as
// CSV or JSON, for ad-hoc analysis without going through the API.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadboard_backend/internal/leads"
	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

func main() {
	format := flag.String("format", "csv", "output format: csv or json")
	preset := flag.String("range", "", "optional date-range preset (today, this_week, last_30, last_90, all_time)")
	force := flag.Bool("force", false, "bypass the snapshot cache")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)
	leadsModule, err := leads.NewModule(cfg, eventBus, validator.New(), nil, nil, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		os.Exit(1)
	}

	q := service.Query{Force: *force}
	if *preset != "" {
		r, ok := domain.ResolvePreset(*preset, time.Now())
		if !ok {
			log.Error("unknown range preset", "preset", *preset)
			os.Exit(2)
		}
		q.Range = &r
	}

	rows, err := leadsModule.Service().WorkingSet(ctx, q)
	if err != nil {
		log.Error("failed to build working set", "error", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			log.Error("failed to encode leads", "error", err)
			os.Exit(1)
		}
	case "csv":
		if err := writeCSV(os.Stdout, rows); err != nil {
			log.Error("failed to write csv", "error", err)
			os.Exit(1)
		}
	default:
		log.Error("unknown format", "format", *format)
		os.Exit(2)
	}
}

func writeCSV(out *os.File, rows []domain.Lead) error {
	w := csv.NewWriter(out)
	header := []string{"id", "fullName", "email", "phone", "company", "owner", "status", "source", "createdTime", "rating"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID, row.FullName, row.Email, row.Phone, row.Company,
			row.Owner, row.Status, row.Source, row.CreatedTime, row.Rating,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
