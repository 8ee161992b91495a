package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"ashoka_frontdesk/internal/adapters/frontdesk"
	"ashoka_frontdesk/internal/adapters/observability"
	"ashoka_frontdesk/internal/app"
	"ashoka_frontdesk/internal/domain"
	"ashoka_frontdesk/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	today := domain.Day(time.Now())
	fromS := flag.String("from", today.Format(domain.DateLayout), "first night (YYYY-MM-DD)")
	toS := flag.String("to", today.AddDate(0, 0, 7).Format(domain.DateLayout), "checkout after the last night (YYYY-MM-DD)")
	workers := flag.Int("workers", cfg.OccupancyWorkers, "concurrent availability queries")
	flag.Parse()

	from, err := domain.ParseDate(*fromS)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -from")
	}
	to, err := domain.ParseDate(*toS)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -to")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("base", cfg.HotelAPIBase).
		Str("from", *fromS).
		Str("to", *toS).
		Int("workers", *workers).
		Msg("occupancy scan starting")

	api, err := frontdesk.New(cfg.HotelAPIBase, cfg.HotelAPIToken, cfg.HotelAPIRPS, cfg.HotelAPITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize hotel API client")
	}
	desk := app.NewFrontDesk(api, nil, nil, app.Defaults{
		Rates: domain.GSTRates{CGST: cfg.Pricing.CGSTRate, SGST: cfg.Pricing.SGSTRate},
	})

	nights, err := desk.Occupancy(ctx, from, to, *workers)
	if err != nil {
		log.Fatal().Err(err).Msg("occupancy scan failed")
	}

	failed := 0
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NIGHT\tFREE\tBY CATEGORY")
	for _, n := range nights {
		if n.Err != nil {
			failed++
			log.Warn().Err(n.Err).Str("night", n.Night.Format(domain.DateLayout)).Msg("availability failed")
			fmt.Fprintf(tw, "%s\t-\t%s\n", n.Night.Format(domain.DateLayout), "error")
			continue
		}
		parts := make([]string, 0, len(n.Categories))
		for _, c := range n.Categories {
			parts = append(parts, fmt.Sprintf("%s=%d", c.CategoryName, c.Available()))
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", n.Night.Format(domain.DateLayout), n.Free(), strings.Join(parts, " "))
	}
	_ = tw.Flush()

	log.Info().Int("nights", len(nights)).Int("failed", failed).Msg("occupancy scan completed")
	if failed > 0 {
		os.Exit(1)
	}
}
