package offloop

import (
	"context"
	"strings"
	"testing"
	"time"
)

const casesFeed = `Country;Province;Confirmed;Deaths;Recovered;LastUpdated
China;;81054;3261;72440;1584955893000
China;Hubei;67801;3160;60811;1584955893000
US;;33276;417;178;1584955893000
Gibraltar;Gibraltar;10;0;1;
Italy;;;;;1584955893000
`

func TestParseCases(t *testing.T) {
	now := time.Date(2020, 3, 23, 12, 0, 0, 0, time.UTC)
	countries, err := ParseCases(context.Background(), strings.NewReader(casesFeed), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	china, ok := countries["China"]
	if !ok {
		t.Fatal("expected China in parsed data")
	}
	if china.Totals == nil {
		t.Fatal("expected totals for China")
	}
	if china.Totals.Cases != 81054 || china.Totals.Deaths != 3261 || china.Totals.Recoveries != 72440 {
		t.Errorf("unexpected China totals: %+v", china.Totals)
	}
	if !china.Totals.HasOutcomes {
		t.Error("offloop rows should carry outcome data")
	}
	hubei, ok := china.Areas["Hubei"]
	if !ok {
		t.Fatal("expected Hubei area under China")
	}
	if hubei.Cases != 67801 {
		t.Errorf("Hubei cases = %d, want 67801", hubei.Cases)
	}

	// US is renamed to its common name.
	if _, ok := countries["US"]; ok {
		t.Error("US should have been renamed")
	}
	us, ok := countries["United States"]
	if !ok {
		t.Fatal("expected United States in parsed data")
	}
	if us.Totals == nil || us.Totals.Cases != 33276 {
		t.Errorf("unexpected United States totals: %+v", us.Totals)
	}

	// A province repeating the country is a totals row.
	gib := countries["Gibraltar"]
	if gib == nil || gib.Totals == nil {
		t.Fatal("expected Gibraltar totals from repeated-name row")
	}
	if len(gib.Areas) != 0 {
		t.Errorf("Gibraltar should have no areas, got %d", len(gib.Areas))
	}
	// Blank timestamp falls back to now.
	if !gib.Totals.LastUpdate.Equal(now) {
		t.Errorf("Gibraltar LastUpdate = %v, want %v", gib.Totals.LastUpdate, now)
	}

	// Blank counts mean zero.
	italy := countries["Italy"]
	if italy == nil || italy.Totals == nil {
		t.Fatal("expected Italy totals")
	}
	if italy.Totals.Cases != 0 || italy.Totals.Deaths != 0 {
		t.Errorf("blank counts should parse as zero, got %+v", italy.Totals)
	}

	wantTime := time.Unix(1584955893, 0).UTC()
	if !china.Totals.LastUpdate.Equal(wantTime) {
		t.Errorf("China LastUpdate = %v, want %v", china.Totals.LastUpdate, wantTime)
	}
}

func TestParseCases_MissingColumn(t *testing.T) {
	feed := "Country;Province;Confirmed\nChina;;81054\n"
	_, err := ParseCases(context.Background(), strings.NewReader(feed), time.Now())
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}
