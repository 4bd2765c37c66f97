package store

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("NewID should be unique")
	}
	if len(a) != 36 {
		t.Errorf("NewID should be a UUID string, got %q", a)
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	ch := &Chart{Name: "Quarterly Revenue", Source: []byte(`{"title":"Quarterly Revenue"}`)}
	if err := st.Create(ctx, ch); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if ch.ID == "" {
		t.Error("Create should assign an ID")
	}
	if ch.CreatedAt.IsZero() {
		t.Error("Create should set CreatedAt")
	}
	if !ch.UpdatedAt.Equal(ch.CreatedAt) {
		t.Error("Create should set both timestamps to the same instant")
	}

	got, err := st.Get(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != ch.Name {
		t.Errorf("Get returned name %q, want %q", got.Name, ch.Name)
	}
	if !bytes.Equal(got.Source, ch.Source) {
		t.Errorf("Get returned source %q, want %q", got.Source, ch.Source)
	}

	// Unknown chart
	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get of missing chart should return ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.Create(ctx, &Chart{ID: "dup", Name: "first"}); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := st.Create(ctx, &Chart{ID: "dup", Name: "second"}); !errors.Is(err, ErrExists) {
		t.Errorf("Create with taken ID should return ErrExists, got %v", err)
	}

	// The first chart is untouched
	got, err := st.Get(ctx, "dup")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("failed Create should not overwrite, got %q", got.Name)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	ch := &Chart{Name: "draft", Source: []byte(`{}`)}
	if err := st.Create(ctx, ch); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	created := ch.CreatedAt

	// Update replaces name and source but keeps the creation time
	ch.Name = "final"
	ch.Source = []byte(`{"title":"final"}`)
	ch.CreatedAt = time.Time{} // callers need not carry timestamps
	if err := st.Update(ctx, ch); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !ch.CreatedAt.Equal(created) {
		t.Errorf("Update should keep CreatedAt: got %v, want %v", ch.CreatedAt, created)
	}
	if ch.UpdatedAt.Before(created) {
		t.Error("Update should bump UpdatedAt")
	}

	got, err := st.Get(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "final" || !bytes.Equal(got.Source, ch.Source) {
		t.Errorf("Update should persist changes, got %q %q", got.Name, got.Source)
	}

	// Unknown chart
	if err := st.Update(ctx, &Chart{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update of missing chart should return ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	ch := &Chart{Name: "doomed"}
	if err := st.Create(ctx, ch); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := st.Delete(ctx, ch.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := st.Get(ctx, ch.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete should return ErrNotFound, got %v", err)
	}
	if err := st.Delete(ctx, ch.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete should return ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	// Two charts share a creation time to exercise the ID tiebreak.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	charts := []*Chart{
		{ID: "c", Name: "third", CreatedAt: base.Add(time.Hour)},
		{ID: "b", Name: "second", CreatedAt: base.Add(time.Hour)},
		{ID: "a", Name: "first", CreatedAt: base},
	}
	for _, ch := range charts {
		if err := st.Create(ctx, ch); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	got, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("List returned %d charts, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List order at %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestMemoryStoreCopyIsolation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	src := []byte(`{"title":"original"}`)
	orig := append([]byte(nil), src...)
	ch := &Chart{Name: "chart", Source: src}
	if err := st.Create(ctx, ch); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Mutating the caller's slice does not reach the store
	src[2] = 'X'
	got, err := st.Get(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Equal(got.Source, orig) {
		t.Error("stored source should not alias the caller's slice")
	}

	// Mutating a returned chart does not reach the store
	got.Name = "changed"
	got.Source[0] = 'X'
	again, err := st.Get(ctx, ch.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if again.Name == "changed" || !bytes.Equal(again.Source, orig) {
		t.Error("returned chart should be a copy")
	}
}
