package daily

import (
	"context"
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("KST", 9*3600))
	// 23:30 KST is 14:30 UTC the same day.
	if got := DateKey(ts); got != "2024-03-09" {
		t.Fatalf("DateKey = %s, want 2024-03-09", got)
	}
	utc := time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC)
	if got := DateKey(utc); got != "2024-03-09" {
		t.Fatalf("DateKey = %s, want 2024-03-09", got)
	}
}

func TestMemLedger(t *testing.T) {
	ctx := context.Background()
	led := NewMemLedger()

	has, err := led.Has(ctx, ActFirstGame, "2024-03-09", "p1")
	if err != nil || has {
		t.Fatalf("fresh flag: has=%v err=%v", has, err)
	}
	if err := led.Set(ctx, ActFirstGame, "2024-03-09", "p1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Setting again is a no-op, not an error.
	if err := led.Set(ctx, ActFirstGame, "2024-03-09", "p1"); err != nil {
		t.Fatalf("repeat Set: %v", err)
	}
	has, _ = led.Has(ctx, ActFirstGame, "2024-03-09", "p1")
	if !has {
		t.Fatal("flag not visible after Set")
	}

	// Distinct keys stay independent.
	for _, k := range [][3]string{
		{ActFiveGames, "2024-03-09", "p1"},
		{ActFirstGame, "2024-03-10", "p1"},
		{ActFirstGame, "2024-03-09", "p2"},
	} {
		if has, _ := led.Has(ctx, k[0], k[1], k[2]); has {
			t.Fatalf("unexpected flag for %v", k)
		}
	}
}
