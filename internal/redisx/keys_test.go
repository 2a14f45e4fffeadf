package redisx

import "testing"

func TestDedupKey(t *testing.T) {
	got := DedupKey("ecofinds-api-trends", "550e8400-e29b-41d4-a716-446655440000")
	want := "dedup:ecofinds-api-trends:550e8400-e29b-41d4-a716-446655440000"
	if got != want {
		t.Errorf("DedupKey = %q, want %q", got, want)
	}
}
