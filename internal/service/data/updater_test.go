package data

import (
	"context"
	"testing"
	"time"

	"github.com/pwr22/covbot/internal/core"
)

func TestMergeUK(t *testing.T) {
	now := time.Now().UTC()

	t.Run("creates record when missing", func(t *testing.T) {
		countries := map[string]*core.CountryRecord{}
		mergeUK(countries, map[string]int64{"London": 4122}, now)

		uk := countries["United Kingdom"]
		if uk == nil {
			t.Fatal("expected United Kingdom record to be created")
		}
		got := uk.Areas["London"]
		if got.Cases != 4122 {
			t.Errorf("London cases = %d, want 4122", got.Cases)
		}
		if got.HasOutcomes {
			t.Error("UK region stats carry no outcome data")
		}
	})

	t.Run("merges into existing areas", func(t *testing.T) {
		totals := core.CaseStats{Cases: 5683, HasOutcomes: true, LastUpdate: now}
		countries := map[string]*core.CountryRecord{
			"United Kingdom": {
				Totals: &totals,
				Areas:  map[string]core.CaseStats{"Gibraltar": {Cases: 10}},
			},
		}
		mergeUK(countries, map[string]int64{"London": 4122, "South East": 1034}, now)

		uk := countries["United Kingdom"]
		if len(uk.Areas) != 3 {
			t.Errorf("expected 3 areas, got %d", len(uk.Areas))
		}
		if uk.Totals == nil || uk.Totals.Cases != 5683 {
			t.Error("merging regions must not clobber totals")
		}
	})

	t.Run("empty region map is a no-op", func(t *testing.T) {
		countries := map[string]*core.CountryRecord{}
		mergeUK(countries, nil, now)
		if len(countries) != 0 {
			t.Errorf("expected no records, got %d", len(countries))
		}
	})
}

func TestUpdater_EnsureFreshUsesCachedData(t *testing.T) {
	// A fresh snapshot must not trigger a refresh; the nil source clients
	// would panic if it did.
	store := NewStore()
	store.SetSnapshot(testSnapshot(), time.Now())

	u := NewUpdater(store, nil, nil, nil, 15*time.Minute)
	if err := u.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdater_LookupProxiesStore(t *testing.T) {
	store := NewStore()
	store.SetSnapshot(testSnapshot(), time.Now())

	u := NewUpdater(store, nil, nil, nil, 15*time.Minute)
	got := u.Lookup(context.Background(), "hubei")
	if len(got) != 1 || got[0].Location != "Hubei, China" {
		t.Errorf("unexpected matches: %v", got)
	}
}
