// Package dispatch drives a full catalog load: it feeds source records
// through a bounded worker pool into the layout builder and meld coordinator
// and returns a finished graph only when every load-level check passes.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"card-catalog/core/logger"
	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/layout"
	"card-catalog/feature/catalog/meld"
	"card-catalog/feature/catalog/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers     = 8
	DefaultMeldTimeout = 30 * time.Second
)

// ErrSource is returned when the record source itself fails.
var ErrSource = errors.New("record source failed")

// Options tunes a Dispatcher.
type Options struct {
	// Workers bounds the number of records built concurrently.
	Workers int
	// MeldTimeout bounds the wait for parked meld parts after the stream drains.
	MeldTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.MeldTimeout <= 0 {
		o.MeldTimeout = DefaultMeldTimeout
	}
	return o
}

// Dispatcher loads a RecordSource into a new graph.
type Dispatcher struct {
	source source.RecordSource
	opts   Options
	logger *zap.Logger
}

// New creates a dispatcher reading from src.
func New(src source.RecordSource, opts Options, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{source: src, opts: opts.withDefaults(), logger: logger}
}

// Run performs one load. Record-level failures are collected in the report
// and do not fail the load. A load-level failure returns a nil graph together
// with the partial report.
func (d *Dispatcher) Run(ctx context.Context) (*graph.Graph, *Report, error) {
	start := time.Now()
	report := newReport()
	defer func() { report.Duration = time.Since(start) }()

	sets, err := d.source.Sets(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("%w: sets: %w", ErrSource, err)
	}

	g := graph.New()
	excluded := make(map[string]bool)
	for _, s := range sets {
		if s.SetType.Excluded() {
			excluded[strings.ToLower(s.Code)] = true
			report.SkippedSets = append(report.SkippedSets, s.Code)
			continue
		}
		g.RegisterSet(s)
	}

	coordinator := meld.New(g, meldReporter{report: report}, d.logger)
	builder := layout.NewBuilder(g, coordinator, d.logger)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(d.opts.Workers)

	streamErr := d.source.Records(egCtx, func(rec *source.Record) error {
		if err := egCtx.Err(); err != nil {
			return err
		}
		report.processed()
		if excluded[strings.ToLower(rec.Set)] {
			report.skipped()
			return nil
		}

		eg.Go(func() error {
			strategy, err := builder.Build(egCtx, rec)
			switch {
			case err != nil && meld.IsFatal(err):
				return fmt.Errorf("record %s (%s): %w", rec.ID, rec.Name, err)
			case err != nil:
				logger.WithRecord(d.logger, rec.ID, rec.Name, rec.Set).Debug("Record failed", zap.Error(err))
				report.fail(rec, err)
			case strategy == layout.Excluded:
				report.skipped()
			case strategy == layout.Meld:
				// counted by the coordinator
			default:
				report.built(strategy)
			}
			return nil
		})
		return nil
	})

	if err := eg.Wait(); err != nil {
		coordinator.Abort()
		return nil, report, err
	}
	if streamErr != nil {
		coordinator.Abort()
		return nil, report, fmt.Errorf("%w: records: %w", ErrSource, streamErr)
	}

	if err := coordinator.Wait(d.opts.MeldTimeout); err != nil {
		return nil, report, err
	}

	report.sortFailures()
	stats := g.Stats()
	d.logger.Info("Catalog loaded",
		zap.Int("processed", report.Processed),
		zap.Int("built", report.Built),
		zap.Int("skipped", report.Skipped),
		zap.Int("failures", len(report.Failures)),
		zap.Int("cards", stats.Cards),
		zap.Int("printings", stats.Printings),
		zap.Duration("duration", time.Since(start)),
	)
	return g, report, nil
}
