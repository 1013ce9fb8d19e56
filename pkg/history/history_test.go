package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

func cycleGraph(t *testing.T, n int) *thrackle.Graph {
	t.Helper()
	g, err := synth.BuildCycle(n, thrackle.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestUndoRedo(t *testing.T) {
	ctx := context.Background()
	g := cycleGraph(t, 6)
	h := New(g, Options{})

	if h.CanUndo() || h.CanRedo() || h.Undo() || h.Redo() {
		t.Fatal("fresh history should have nothing to undo or redo")
	}

	if _, err := h.Push(ctx, "straight"); err != nil {
		t.Fatal(err)
	}
	if err := synth.CircleDrawing(g, 7); err != nil {
		t.Fatal(err)
	}
	if len(g.Crossings()) != 7 {
		t.Fatalf("crossings = %d, want 7", len(g.Crossings()))
	}

	if !h.Undo() {
		t.Fatal("Undo returned false")
	}
	if h.Graph() != g {
		t.Error("Undo replaced the live graph pointer")
	}
	if len(g.Crossings()) != 0 || len(g.Bends()) != 0 {
		t.Errorf("after Undo: %d crossings, %d bends; want 0, 0", len(g.Crossings()), len(g.Bends()))
	}
	if !h.CanRedo() {
		t.Error("CanRedo = false after Undo")
	}

	if !h.Redo() {
		t.Fatal("Redo returned false")
	}
	if len(g.Crossings()) != 7 {
		t.Errorf("after Redo: %d crossings, want 7", len(g.Crossings()))
	}

	// A new push clears the redo stack.
	h.Undo()
	if _, err := h.Push(ctx, "again"); err != nil {
		t.Fatal(err)
	}
	if h.CanRedo() {
		t.Error("Push did not clear redo")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	g := cycleGraph(t, 5)
	h := New(g, Options{})
	if _, err := h.Push(context.Background(), "before move"); err != nil {
		t.Fatal(err)
	}
	before := g.Vertex("0").Pos()
	g.MoveVertex("0", 999, 999)

	h.Undo()
	if got := g.Vertex("0").Pos(); got != before {
		t.Errorf("vertex 0 = %v after Undo, want %v", got, before)
	}
}

func TestLimit(t *testing.T) {
	ctx := context.Background()
	h := New(cycleGraph(t, 3), Options{Limit: 2})
	for _, label := range []string{"a", "b", "c"} {
		if _, err := h.Push(ctx, label); err != nil {
			t.Fatal(err)
		}
	}
	labels := h.Labels()
	if len(labels) != 2 || labels[0] != "b" || labels[1] != "c" {
		t.Errorf("Labels = %v, want [b c]", labels)
	}
}

func TestPushWithStoreAndRestore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := cycleGraph(t, 7)
	if err := synth.CircleDrawing(g, 12); err != nil {
		t.Fatal(err)
	}

	h := New(g, Options{Store: store})
	snap, err := h.Push(ctx, "twelve")
	if err != nil {
		t.Fatal(err)
	}
	if snap == nil || snap.ID == "" || snap.Crossings != 12 || snap.Vertices != 7 {
		t.Fatalf("snapshot = %+v", snap)
	}

	if err := synth.CircleDrawing(g, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.Restore(ctx, snap.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(g.Crossings()) != 12 {
		t.Errorf("crossings after Restore = %d, want 12", len(g.Crossings()))
	}
	if !h.Undo() || len(g.Crossings()) != 0 {
		t.Errorf("Undo after Restore: %d crossings, want 0", len(g.Crossings()))
	}

	if err := h.Restore(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Restore(missing) = %v, want %v", err, ErrNotFound)
	}
	if err := New(g, Options{}).Restore(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Restore without store = %v, want %v", err, ErrNotFound)
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	stores := []struct {
		name  string
		store Store
	}{
		{"memory", NewMemoryStore()},
		{"file", fileStore},
	}

	for _, tt := range stores {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.store
			defer s.Close(ctx)

			g := cycleGraph(t, 5)
			first := NewSnapshot(g, "first")
			if err := synth.StarDrawing(g); err != nil {
				t.Fatal(err)
			}
			second := NewSnapshot(g, "second")
			second.CreatedAt = first.CreatedAt.Add(time.Second)

			for _, snap := range []*Snapshot{second, first} {
				if err := s.Save(ctx, snap); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}

			got, err := s.Load(ctx, second.ID)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Label != "second" || got.Crossings != 5 {
				t.Errorf("Load = %s with %d crossings, want second with 5", got.Label, got.Crossings)
			}
			rebuilt, err := got.Graph(thrackle.DefaultOptions())
			if err != nil {
				t.Fatalf("Graph: %v", err)
			}
			if len(rebuilt.Crossings()) != 5 {
				t.Errorf("rebuilt crossings = %d, want 5", len(rebuilt.Crossings()))
			}

			list, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
				t.Fatalf("List order = %v, want first then second", list)
			}
			if len(list[0].Drawing.Vertices) != 0 {
				t.Error("List should omit drawings")
			}

			if err := s.Delete(ctx, first.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Load(ctx, first.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after Delete = %v, want %v", err, ErrNotFound)
			}
			if err := s.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Delete = %v, want %v", err, ErrNotFound)
			}
		})
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background(), "../etc/passwd"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load(../etc/passwd) = %v, want invalid id", err)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	if s, err := OpenStore(ctx, StoreConfig{Backend: BackendMemory}); err != nil || s == nil {
		t.Errorf("memory backend: %v", err)
	}
	s, err := OpenStore(ctx, StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("default backend = %T, want *FileStore", s)
	}
	if _, err := OpenStore(ctx, StoreConfig{Backend: "sqlite"}); err == nil {
		t.Error("unknown backend should fail")
	}
	if _, err := OpenStore(ctx, StoreConfig{Backend: BackendMongo}); err == nil {
		t.Error("mongo without uri should fail")
	}
}
