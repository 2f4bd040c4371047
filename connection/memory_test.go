/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"context"
	"fmt"
	"testing"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("main")

	t.Run("InsertAndFind", func(t *testing.T) {
		row := map[string]any{"id": "c1", "name": "Ada", "active": true}
		if err := m.Insert(ctx, "customers", "id", row); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}

		got, found, err := m.Find(ctx, "customers", "id", "c1")
		if err != nil {
			t.Fatalf("Failed to find: %v", err)
		}
		if !found {
			t.Fatal("Inserted row should be found")
		}
		if got["name"] != "Ada" {
			t.Errorf("name = %v, want %q", got["name"], "Ada")
		}
	})

	t.Run("FindMissing", func(t *testing.T) {
		_, found, err := m.Find(ctx, "customers", "id", "nope")
		if err != nil {
			t.Fatalf("Find of missing row should not error: %v", err)
		}
		if found {
			t.Fatal("Missing row should not be found")
		}
	})

	t.Run("Update", func(t *testing.T) {
		row := map[string]any{"id": "c1", "name": "Ada Lovelace", "active": true}
		if err := m.Update(ctx, "customers", "id", "c1", row); err != nil {
			t.Fatalf("Failed to update: %v", err)
		}
		got, _, _ := m.Find(ctx, "customers", "id", "c1")
		if got["name"] != "Ada Lovelace" {
			t.Errorf("name = %v, want %q", got["name"], "Ada Lovelace")
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := m.Update(ctx, "customers", "id", "nope", map[string]any{"id": "nope"})
		if err == nil {
			t.Fatal("Updating a missing row should error")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := m.Delete(ctx, "customers", "id", "c1"); err != nil {
			t.Fatalf("Failed to delete: %v", err)
		}
		_, found, _ := m.Find(ctx, "customers", "id", "c1")
		if found {
			t.Fatal("Deleted row should not be found")
		}

		// Deleting again is a no-op.
		if err := m.Delete(ctx, "customers", "id", "c1"); err != nil {
			t.Fatalf("Deleting a missing row should not error: %v", err)
		}
	})
}

func TestMemorySelect(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("main")

	for i := 1; i <= 5; i++ {
		row := map[string]any{
			"id":     fmt.Sprintf("o%d", i),
			"total":  float64(i * 10),
			"status": map[bool]string{true: "open", false: "closed"}[i%2 == 1],
		}
		if err := m.Insert(ctx, "orders", "id", row); err != nil {
			t.Fatalf("Failed to insert: %v", err)
		}
	}

	t.Run("CriteriaFilter", func(t *testing.T) {
		rows, err := m.Select(ctx, "orders", Query{Criteria: map[string]any{"status": "open"}})
		if err != nil {
			t.Fatalf("Failed to select: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("Expected 3 open orders, got %d", len(rows))
		}
	})

	t.Run("OrderByDescending", func(t *testing.T) {
		rows, err := m.Select(ctx, "orders", Query{OrderBy: "total", Descending: true})
		if err != nil {
			t.Fatalf("Failed to select: %v", err)
		}
		if len(rows) != 5 {
			t.Fatalf("Expected 5 orders, got %d", len(rows))
		}
		if rows[0]["total"] != float64(50) {
			t.Errorf("First row total = %v, want 50", rows[0]["total"])
		}
		if rows[4]["total"] != float64(10) {
			t.Errorf("Last row total = %v, want 10", rows[4]["total"])
		}
	})

	t.Run("Limit", func(t *testing.T) {
		rows, err := m.Select(ctx, "orders", Query{OrderBy: "total", Limit: 2})
		if err != nil {
			t.Fatalf("Failed to select: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 orders, got %d", len(rows))
		}
		if rows[0]["total"] != float64(10) {
			t.Errorf("First row total = %v, want 10", rows[0]["total"])
		}
	})

	t.Run("EmptyTable", func(t *testing.T) {
		rows, err := m.Select(ctx, "nothing", Query{})
		if err != nil {
			t.Fatalf("Failed to select: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("Expected no rows, got %d", len(rows))
		}
	})
}

func TestMemoryRowIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("main")

	original := map[string]any{"id": "c1", "name": "Ada"}
	if err := m.Insert(ctx, "customers", "id", original); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}

	// Mutating the inserted map must not affect the stored row.
	original["name"] = "changed"
	got, _, _ := m.Find(ctx, "customers", "id", "c1")
	if got["name"] != "Ada" {
		t.Error("Stored row should be isolated from the caller's map")
	}

	// Mutating a returned row must not affect the stored row either.
	got["name"] = "changed again"
	again, _, _ := m.Find(ctx, "customers", "id", "c1")
	if again["name"] != "Ada" {
		t.Error("Returned rows should be copies")
	}
}

func TestMemoryErrorInjection(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("boom")

	m := NewMemory("main").
		WithFindError(boom).
		WithInsertError(boom).
		WithUpdateError(boom).
		WithDeleteError(boom).
		WithSelectError(boom)

	if _, _, err := m.Find(ctx, "t", "id", "x"); err != boom {
		t.Error("Find should return the injected error")
	}
	if err := m.Insert(ctx, "t", "id", nil); err != boom {
		t.Error("Insert should return the injected error")
	}
	if err := m.Update(ctx, "t", "id", "x", nil); err != boom {
		t.Error("Update should return the injected error")
	}
	if err := m.Delete(ctx, "t", "id", "x"); err != boom {
		t.Error("Delete should return the injected error")
	}
	if _, err := m.Select(ctx, "t", Query{}); err != boom {
		t.Error("Select should return the injected error")
	}
}
