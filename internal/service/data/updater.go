package data

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/internal/metrics"
	"github.com/pwr22/covbot/internal/source/arcgis"
	"github.com/pwr22/covbot/internal/source/offloop"
	"github.com/pwr22/covbot/pkg/log"
	"github.com/pwr22/covbot/pkg/retry"
	"golang.org/x/sync/errgroup"
)

// Updater keeps the store's snapshot within the refresh window. It fetches
// all feeds in parallel, merges the UK regional breakdowns into the United
// Kingdom record, and persists the merged snapshot so a restarted bot can
// answer before its first fetch.
type Updater struct {
	store    *Store
	offloop  *offloop.Client
	arcgis   *arcgis.Client
	repo     core.SnapshotRepository
	retrier  *retry.Retrier
	interval time.Duration

	// serializes refreshes so concurrent commands trigger one fetch
	refreshMu sync.Mutex
}

func NewUpdater(
	store *Store,
	off *offloop.Client,
	arc *arcgis.Client,
	repo core.SnapshotRepository,
	interval time.Duration,
) *Updater {
	return &Updater{
		store:    store,
		offloop:  off,
		arcgis:   arc,
		repo:     repo,
		retrier:  retry.NewDefaultRetrier(),
		interval: interval,
	}
}

func (u *Updater) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if u.repo != nil {
		countries, fetchedAt, err := u.repo.LoadLatest(ctx)
		switch {
		case err == nil:
			u.store.SetSnapshot(countries, fetchedAt)
			logger.Info().Time("fetched_at", fetchedAt).Msg("loaded persisted snapshot")
		case errors.Is(err, core.ErrNoSnapshot):
		default:
			logger.Warn().Err(err).Msg("failed to load persisted snapshot")
		}
	}

	if err := u.EnsureFresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial data refresh failed")
	}

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := u.EnsureFresh(ctx); err != nil {
				logger.Warn().Err(err).Msg("background data refresh failed")
			}
		}
	}
}

func (u *Updater) Shutdown(ctx context.Context) error {
	return nil
}

// Lookup proxies to the store so commands only need one dependency.
func (u *Updater) Lookup(ctx context.Context, query string) []core.Match {
	return u.store.Lookup(ctx, query)
}

// EnsureFresh refreshes the snapshot when it is older than the refresh
// window. Fresh-enough data is left alone.
func (u *Updater) EnsureFresh(ctx context.Context) error {
	u.refreshMu.Lock()
	defer u.refreshMu.Unlock()

	if fetchedAt, ok := u.store.FetchedAt(); ok {
		age := time.Since(fetchedAt)
		metrics.SnapshotAge.Set(age.Seconds())
		if age < u.interval {
			log.FromCtx(ctx).Debug().Dur("age", age).Msg("using cached data")
			return nil
		}
	}

	return u.refresh(ctx)
}

func (u *Updater) refresh(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("updating case data")

	var (
		countries map[string]*core.CountryRecord
		groups    map[string][]string
		nhs       map[string]int64
		locals    map[string]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return u.fetch(gctx, "offloop_cases", func() error {
			var err error
			countries, err = u.offloop.FetchCases(gctx)
			return err
		})
	})
	g.Go(func() error {
		// Groups are a convenience, not case data. A failure here should
		// not abort the refresh.
		if err := u.fetch(gctx, "offloop_groups", func() error {
			var err error
			groups, err = u.offloop.FetchGroups(gctx)
			return err
		}); err != nil {
			logger.Warn().Err(err).Msg("failed to fetch country groups")
		}
		return nil
	})
	g.Go(func() error {
		return u.fetch(gctx, "uk_nhs_regions", func() error {
			var err error
			nhs, err = u.arcgis.FetchNHSRegions(gctx)
			return err
		})
	})
	g.Go(func() error {
		return u.fetch(gctx, "uk_local_authorities", func() error {
			var err error
			locals, err = u.arcgis.FetchLocalAuthorities(gctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Now().UTC()
	mergeUK(countries, nhs, now)
	mergeUK(countries, locals, now)

	u.store.SetSnapshot(countries, now)
	if groups != nil {
		u.store.SetGroups(groups)
	}

	if u.repo != nil {
		if err := u.repo.Save(ctx, countries, now); err != nil {
			logger.Warn().Err(err).Msg("failed to persist snapshot")
		}
	}

	logger.Info().Int("countries", len(countries)).Msg("case data updated")
	return nil
}

func (u *Updater) fetch(ctx context.Context, source string, op func() error) error {
	start := time.Now()
	err := u.retrier.Do(ctx, op)
	metrics.SourceFetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceFetchFailures.WithLabelValues(source).Inc()
	}
	return err
}

// mergeUK folds a region→cases map into the United Kingdom record as areas.
// The UK feeds publish confirmed counts only, so the merged stats carry no
// outcome data.
func mergeUK(countries map[string]*core.CountryRecord, regions map[string]int64, now time.Time) {
	if len(regions) == 0 {
		return
	}

	uk, ok := countries["United Kingdom"]
	if !ok {
		uk = &core.CountryRecord{Areas: make(map[string]core.CaseStats)}
		countries["United Kingdom"] = uk
	}
	for name, cases := range regions {
		uk.Areas[name] = core.CaseStats{Cases: cases, LastUpdate: now}
	}
}
