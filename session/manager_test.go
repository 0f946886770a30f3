package session

import (
	"context"
	"testing"
	"time"
)

func testManager(now time.Time) *Manager {
	return &Manager{
		Clock:         func() time.Time { return now },
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    365 * 24 * time.Hour,
		AccessSecret:  []byte("access-test-secret"),
		RefreshSecret: []byte("refresh-test-secret"),
	}
}

func TestNeedsRefresh(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	margin := 5 * time.Minute

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just issued", issued.Add(time.Minute), false},
		{"mid lifetime", issued.Add(12 * time.Hour), false},
		{"inside margin", issued.Add(24*time.Hour - time.Minute), true},
		{"expired", issued.Add(25 * time.Hour), true},
	}
	for _, tc := range cases {
		m := testManager(tc.now)
		if got := m.NeedsRefresh(issued, margin); got != tc.want {
			t.Errorf("%s: NeedsRefresh = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIssuePairSignsBothTokens(t *testing.T) {
	m := testManager(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	pair, err := m.IssuePair(context.Background(), 42, "host")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if len(pair.AccessToken) == 0 || len(pair.RefreshToken) == 0 {
		t.Fatal("expected both tokens to be signed")
	}
	if string(pair.AccessToken) == string(pair.RefreshToken) {
		t.Fatal("access and refresh tokens must differ")
	}
}
