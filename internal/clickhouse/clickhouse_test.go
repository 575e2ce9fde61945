package clickhouse

import (
	"strings"
	"testing"
)

// TestMethodsOrderAndNames pins the benchmark order and method names
// that end up in the output files.
func TestMethodsOrderAndNames(t *testing.T) {
	methods := Methods()
	want := []string{"rows_scan", "frame_db", "frame_conn"}
	if len(methods) != len(want) {
		t.Fatalf("expected %d methods, got %d", len(want), len(methods))
	}
	for i, m := range methods {
		if m.Name != want[i] {
			t.Fatalf("method %d named %q, want %q", i, m.Name, want[i])
		}
		if m.Call == nil {
			t.Fatalf("method %q has no call", m.Name)
		}
	}
}

// TestOpenPhaseMethodsExcludesRowsScan pins the subset re-measured with
// connections left open.
func TestOpenPhaseMethodsExcludesRowsScan(t *testing.T) {
	methods := OpenPhaseMethods()
	if len(methods) != 2 {
		t.Fatalf("expected 2 open-phase methods, got %d", len(methods))
	}
	if methods[0].Name != "frame_db" || methods[1].Name != "frame_conn" {
		t.Fatalf("unexpected open-phase methods %q, %q", methods[0].Name, methods[1].Name)
	}
}

// TestQueryShape spot-checks the fixed query text.
func TestQueryShape(t *testing.T) {
	for _, clause := range []string{
		"FROM tree_census_2015",
		"WHERE status = 'Alive'",
		"GROUP BY",
		"ORDER BY count DESC",
		"countIf(health = 'Good')",
	} {
		if !strings.Contains(Query, clause) {
			t.Fatalf("query missing %q:\n%s", clause, Query)
		}
	}
}
