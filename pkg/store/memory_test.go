package store

import (
	"context"
	"errors"
	"testing"

	"github.com/threatforge/threatforge/pkg/model"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	g := model.Graph{
		Nodes:    []model.Node{{ID: "n1", Kind: model.KindProcess, Name: "API", Properties: model.Properties{"zone": "edge"}}},
		Metadata: model.Metadata{Name: "Checkout"},
	}

	t.Run("GetMissing", func(t *testing.T) {
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() = %v, want ErrNotFound", err)
		}
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		if err := s.Save(ctx, "m1", g); err != nil {
			t.Fatalf("Save() = %v, want nil", err)
		}
		got, err := s.Get(ctx, "m1")
		if err != nil {
			t.Fatalf("Get() = %v, want nil", err)
		}
		if got.Metadata.Name != "Checkout" || len(got.Nodes) != 1 {
			t.Errorf("Get() = %+v", got)
		}

		// Stored copy is isolated from caller mutation.
		got.Nodes[0].Properties["zone"] = "tampered"
		again, _ := s.Get(ctx, "m1")
		if again.Nodes[0].Properties["zone"] != "edge" {
			t.Error("store returned a shared graph copy")
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := s.Save(ctx, "m2", model.Graph{Metadata: model.Metadata{Name: "Second"}}); err != nil {
			t.Fatalf("Save() = %v, want nil", err)
		}
		summaries, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() = %v, want nil", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("List() returned %d summaries, want 2", len(summaries))
		}
		if summaries[0].Modified.Before(summaries[1].Modified) {
			t.Error("List() is not ordered newest first")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := s.Delete(ctx, "m1"); err != nil {
			t.Fatalf("Delete() = %v, want nil", err)
		}
		if err := s.Delete(ctx, "m1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second Delete() = %v, want ErrNotFound", err)
		}
	})
}
