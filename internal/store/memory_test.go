package store

import (
	"context"
	"testing"

	"github.com/saebyeokjang/WordChainLeague/internal/game"
	"github.com/saebyeokjang/WordChainLeague/internal/words"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	dict := words.New([]string{"사과", "과자"})
	c := game.NewMatch(dict, game.ModeSingle, []string{"A"}, words.Medium, 0)

	if _, err := m.Get(ctx, c.ID()); err != ErrNotFound {
		t.Fatalf("Get before Save: err = %v, want ErrNotFound", err)
	}
	if err := m.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Get(ctx, c.ID())
	if err != nil || got != c {
		t.Fatalf("Get = %v err=%v, want saved controller", got, err)
	}
	m.Delete(ctx, c.ID())
	if _, err := m.Get(ctx, c.ID()); err != ErrNotFound {
		t.Fatal("Delete did not remove the match")
	}
}
