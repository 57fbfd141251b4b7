package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type widget struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func widgetCollection(seed []widget) *Collection[widget] {
	return NewCollection("widgets", "WGT", func(w widget) string { return w.ID }, seed)
}

func threeWidgets() []widget {
	return []widget{
		{ID: "WGT-2025-001", Name: "alpha"},
		{ID: "WGT-2025-002", Name: "beta"},
		{ID: "WGT-2025-003", Name: "gamma"},
	}
}

func TestCollectionSeedIsCopied(t *testing.T) {
	seed := threeWidgets()
	c := widgetCollection(seed)
	seed[0].Name = "mutated"
	if c.Items()[0].Name != "alpha" {
		t.Fatal("collection shares backing array with seed")
	}
}

func TestNewIDUsesLengthAsSequence(t *testing.T) {
	c := widgetCollection(threeWidgets())
	want := fmt.Sprintf("WGT-%d-004", time.Now().Year())
	if got := c.NewID(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// Removing a record frees its sequence number for reuse.
	if _, err := c.Remove(context.Background(), "WGT-2025-003"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	want = fmt.Sprintf("WGT-%d-003", time.Now().Year())
	if got := c.NewID(); got != want {
		t.Fatalf("expected %s after remove, got %s", want, got)
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	c := widgetCollection(threeWidgets())
	ok, err := c.Replace(context.Background(), "WGT-2025-002", widget{ID: "WGT-2025-002", Name: "beta II"})
	if err != nil || !ok {
		t.Fatalf("replace failed: ok=%v err=%v", ok, err)
	}
	items := c.Items()
	if items[1].Name != "beta II" {
		t.Fatalf("replaced record moved: %+v", items)
	}
	if len(items) != 3 {
		t.Fatalf("replace changed length: %d", len(items))
	}
}

func TestReplaceUnknownID(t *testing.T) {
	c := widgetCollection(threeWidgets())
	ok, err := c.Replace(context.Background(), "WGT-0000-000", widget{ID: "WGT-0000-000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("replace reported success for unknown id")
	}
}

func TestRemoveShiftsLaterRecords(t *testing.T) {
	c := widgetCollection(threeWidgets())
	ok, err := c.Remove(context.Background(), "WGT-2025-001")
	if err != nil || !ok {
		t.Fatalf("remove failed: ok=%v err=%v", ok, err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != "WGT-2025-002" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}
}

func TestBoundCollectionRoundTripsThroughKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	first := widgetCollection(threeWidgets())
	first.Bind(kv, "widgets")
	if err := first.Load(ctx); err != nil {
		t.Fatalf("initial load failed: %v", err)
	}
	if err := first.Insert(ctx, widget{ID: "WGT-2025-004", Name: "delta"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// A second collection bound to the same key sees the persisted state,
	// not its fixture seed.
	second := widgetCollection(threeWidgets())
	second.Bind(kv, "widgets")
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if second.Len() != 4 {
		t.Fatalf("expected persisted 4 records, got %d", second.Len())
	}
}

func TestLoadReseedsOnCorruptedValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	if err := kv.Save(ctx, "widgets", []byte("{definitely not a json array")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	c := widgetCollection(threeWidgets())
	c.Bind(kv, "widgets")
	if err := c.Load(ctx); err != nil {
		t.Fatalf("load should recover, got %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected fixture reseed, got %d records", c.Len())
	}

	// The recovered fixtures are written back.
	raw, err := kv.Load(ctx, "widgets")
	if err != nil {
		t.Fatalf("kv load failed: %v", err)
	}
	if len(raw) == 0 || raw[0] != '[' {
		t.Fatalf("expected JSON array written back, got %q", raw)
	}
}

func TestAppendBatch(t *testing.T) {
	c := widgetCollection(threeWidgets())
	err := c.Append(context.Background(), []widget{
		{ID: "WGT-2025-004"},
		{ID: "WGT-2025-005"},
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", c.Len())
	}
}
