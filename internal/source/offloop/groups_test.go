package offloop

import (
	"strings"
	"testing"
)

func TestParseGroups(t *testing.T) {
	feed := "scandinavia;Denmark;Norway;Sweden\nbenelux;Belgium;Netherlands;Luxembourg\n;orphan\nsolo\n"

	groups, err := ParseGroups(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	scand := groups["scandinavia"]
	if len(scand) != 3 || scand[0] != "Denmark" || scand[2] != "Sweden" {
		t.Errorf("unexpected scandinavia members: %v", scand)
	}
}
