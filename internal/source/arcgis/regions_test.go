package arcgis

import (
	"strings"
	"testing"
)

func TestParseRegions(t *testing.T) {
	tests := []struct {
		name       string
		feed       string
		nameColumn string
		want       map[string]int64
	}{
		{
			name:       "nhs regions",
			feed:       "GSS_CD,NHSRNm,TotalCases\nE40000003,London,\"4,122\"\nE40000005,South East,1034\n",
			nameColumn: "NHSRNm",
			want:       map[string]int64{"London": 4122, "South East": 1034},
		},
		{
			name:       "local authorities",
			feed:       "GSS_CD,GSS_NM,TotalCases\nE09000002,Barking and Dagenham,74\n",
			nameColumn: "GSS_NM",
			want:       map[string]int64{"Barking and Dagenham": 74},
		},
		{
			name:       "unparseable counts skipped",
			feed:       "GSS_CD,GSS_NM,TotalCases\nE1,Somewhere,n/a\nE2,Elsewhere,12\n",
			nameColumn: "GSS_NM",
			want:       map[string]int64{"Elsewhere": 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRegions(strings.NewReader(tt.feed), tt.nameColumn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("region count = %d, want %d", len(got), len(tt.want))
			}
			for name, cases := range tt.want {
				if got[name] != cases {
					t.Errorf("%s = %d, want %d", name, got[name], cases)
				}
			}
		})
	}
}

func TestParseRegions_MissingColumn(t *testing.T) {
	feed := "GSS_CD,TotalCases\nE1,10\n"
	if _, err := ParseRegions(strings.NewReader(feed), "GSS_NM"); err == nil {
		t.Fatal("expected error for missing name column")
	}
}
