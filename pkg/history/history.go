// Package history keeps undo/redo history for a drawing and persists named
// snapshots.
//
// # Undo and Redo
//
// [History] wraps one live [thrackle.Graph]. [History.Push] records a deep
// copy of the current state; [History.Undo] and [History.Redo] swap the
// live graph's contents with a recorded copy through [thrackle.Graph.Replace],
// so callers keep using the same *Graph. Snapshots never share entities with
// the live graph.
//
//	h := history.New(g, history.Options{Limit: 50})
//	h.Push(ctx, "before synthesis")
//	synth.CircleDrawing(g, 9)
//	h.Undo() // g is back to the state before synthesis
//
// # Stores
//
// With a [Store] configured, every push is also saved as a [Snapshot] in the
// JSON drawing shape and can be restored later, from another process:
//
//   - [MemoryStore]: in-process, for tests and the HTTP server
//   - [FileStore]: one JSON file per snapshot, for the CLI
//   - [MongoStore]: shared storage in MongoDB
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	drawio "github.com/matzehuels/thrackle/pkg/io"
	"github.com/matzehuels/thrackle/pkg/thrackle"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a persisted drawing.
type Snapshot struct {
	ID        string         `json:"id" bson:"_id"`
	Label     string         `json:"label" bson:"label"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Vertices  int            `json:"vertices" bson:"vertices"`
	Edges     int            `json:"edges" bson:"edges"`
	Crossings int            `json:"crossings" bson:"crossings"`
	Drawing   drawio.Drawing `json:"drawing" bson:"drawing"`
}

// NewSnapshot captures g under a fresh id.
func NewSnapshot(g *thrackle.Graph, label string) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
		Crossings: len(g.Crossings()),
		Drawing:   drawio.FromGraph(g),
	}
}

// Graph rebuilds the snapshot's drawing.
func (s *Snapshot) Graph(opts thrackle.Options) (*thrackle.Graph, error) {
	return s.Drawing.ToGraph(opts)
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores a snapshot, replacing one with the same id.
	Save(ctx context.Context, s *Snapshot) error
	// Load retrieves a snapshot by id. It returns ErrNotFound if there is none.
	Load(ctx context.Context, id string) (*Snapshot, error)
	// List returns all snapshots without their drawings, oldest first.
	List(ctx context.Context) ([]*Snapshot, error)
	// Delete removes a snapshot. It returns ErrNotFound if there is none.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultLimit bounds the undo stack when Options.Limit is zero.
const DefaultLimit = 100

// Options configures a History.
type Options struct {
	Limit int   // Maximum undo depth; older states are dropped
	Store Store // Optional persistence for pushed states
}

// History is an undo/redo stack over one live graph.
// It is not safe for concurrent use.
type History struct {
	g     *thrackle.Graph
	limit int
	store Store
	undo  []entry
	redo  []entry
}

type entry struct {
	label string
	graph *thrackle.Graph
}

// New creates a History for g.
func New(g *thrackle.Graph, opts Options) *History {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	return &History{g: g, limit: opts.Limit, store: opts.Store}
}

// Graph returns the live graph.
func (h *History) Graph() *thrackle.Graph { return h.g }

// Push records the current state and clears the redo stack. With a store,
// the state is also saved and the snapshot returned; otherwise the
// snapshot is nil.
func (h *History) Push(ctx context.Context, label string) (*Snapshot, error) {
	var snap *Snapshot
	if h.store != nil {
		snap = NewSnapshot(h.g, label)
		if err := h.store.Save(ctx, snap); err != nil {
			return nil, err
		}
	}
	h.undo = append(h.undo, entry{label: label, graph: h.g.Clone()})
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
	return snap, nil
}

// Undo restores the most recently pushed state. The current state moves to
// the redo stack. It returns false when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, entry{label: last.label, graph: h.g.Clone()})
	h.g.Replace(last.graph)
	return true
}

// Redo reapplies the most recently undone state. It returns false when
// there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, entry{label: next.label, graph: h.g.Clone()})
	h.g.Replace(next.graph)
	return true
}

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Labels returns the labels on the undo stack, oldest first.
func (h *History) Labels() []string {
	out := make([]string, len(h.undo))
	for i, e := range h.undo {
		out[i] = e.label
	}
	return out
}

// Restore loads a stored snapshot into the live graph. The current state is
// pushed first so the restore itself can be undone.
func (h *History) Restore(ctx context.Context, id string) error {
	if h.store == nil {
		return ErrNotFound
	}
	snap, err := h.store.Load(ctx, id)
	if err != nil {
		return err
	}
	g, err := snap.Graph(h.g.Options())
	if err != nil {
		return err
	}
	h.undo = append(h.undo, entry{label: "restore " + snap.Label, graph: h.g.Clone()})
	h.redo = nil
	h.g.Replace(g)
	return nil
}
