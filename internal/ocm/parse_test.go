package ocm

import "testing"

func TestParseClusterTable_SkipsHeader(t *testing.T) {
	out := "ID        NAME       API URL\n" +
		"abc123    prod-east  https://api.prod-east.example.com\n" +
		"def456    prod-west  https://api.prod-west.example.com\n"
	got := parseClusterTable(out)
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d: %+v", len(got), got)
	}
	if got[0].ID != "abc123" || got[0].Name != "prod-east" {
		t.Fatalf("unexpected first cluster: %+v", got[0])
	}
	if got[1].ID != "def456" || got[1].Name != "prod-west" {
		t.Fatalf("unexpected second cluster: %+v", got[1])
	}
}

func TestParseClusterTable_NoHeader(t *testing.T) {
	got := parseClusterTable("abc123 prod-east\n")
	if len(got) != 1 || got[0].ID != "abc123" {
		t.Fatalf("expected the row to parse without a header, got %+v", got)
	}
}

func TestParseClusterTable_Empty(t *testing.T) {
	if got := parseClusterTable(""); len(got) != 0 {
		t.Fatalf("expected no clusters, got %+v", got)
	}
	if got := parseClusterTable("\n  \n"); len(got) != 0 {
		t.Fatalf("expected no clusters for blank lines, got %+v", got)
	}
}

func TestParseClusterTable_SkipsShortRows(t *testing.T) {
	out := "ID NAME\nabc123 prod-east\nlonelyfield\n"
	got := parseClusterTable(out)
	if len(got) != 1 {
		t.Fatalf("expected short row skipped, got %+v", got)
	}
}
