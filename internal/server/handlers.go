package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/thrackle/pkg/buildinfo"
	"github.com/matzehuels/thrackle/pkg/cache"
	"github.com/matzehuels/thrackle/pkg/errors"
	"github.com/matzehuels/thrackle/pkg/history"
	drawio "github.com/matzehuels/thrackle/pkg/io"
	"github.com/matzehuels/thrackle/pkg/render"
	"github.com/matzehuels/thrackle/pkg/render/dot"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

type crossing struct {
	ID           string     `json:"id"`
	At           [2]float64 `json:"at"`
	Edges        [2]string  `json:"edges"`
	Legal        bool       `json:"legal"`
	MoreThanOnce bool       `json:"more_than_once,omitempty"`
	SelfCrossing bool       `json:"self_crossing,omitempty"`
}

// summary describes the crossings of a drawing.
type summary struct {
	ThrackleNumber  int                 `json:"thrackle_number"`
	CurveComplexity int                 `json:"curve_complexity"`
	Total           int                 `json:"total"`
	Categories      thrackle.Categories `json:"categories"`
	Crossings       []crossing          `json:"crossings,omitempty"`
}

func summarize(g *thrackle.Graph, list bool) summary {
	cs := g.Crossings()
	s := summary{
		ThrackleNumber:  g.ThrackleNumber(),
		CurveComplexity: g.CurveComplexity(),
		Total:           len(cs),
		Categories:      g.CrossingsCategories(),
	}
	if list {
		s.Crossings = make([]crossing, len(cs))
		for i, c := range cs {
			s.Crossings[i] = crossing{
				ID:           c.ID,
				At:           [2]float64{c.At.X, c.At.Y},
				Edges:        c.Edges,
				Legal:        c.Legal,
				MoreThanOnce: c.MoreThanOnce,
				SelfCrossing: c.SelfCrossing,
			}
		}
	}
	return s
}

type synthesizeResponse struct {
	Request synth.Request  `json:"request"`
	Drawing drawio.Drawing `json:"drawing"`
	Summary summary        `json:"summary"`
	Cached  bool           `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synth.Request
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := req.Normalize()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	key := s.opts.Keyer.DrawingKey(s.opts.KeyOpts(req))
	if data, ok, err := s.opts.Cache.Get(ctx, key); err == nil && ok {
		var d drawio.Drawing
		if json.Unmarshal(data, &d) == nil {
			if g, err := d.ToGraph(s.opts.GraphOpts); err == nil {
				writeJSON(w, http.StatusOK, synthesizeResponse{Request: req, Drawing: d, Summary: summarize(g, false), Cached: true})
				return
			}
		}
	}

	g, err := s.opts.Synthesizer.Synthesize(ctx, req, s.opts.GraphOpts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d := drawio.FromGraph(g)
	if data, err := json.Marshal(d); err == nil {
		if err := s.opts.Cache.Set(ctx, key, data, s.opts.CacheTTL); err != nil {
			s.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	writeJSON(w, http.StatusOK, synthesizeResponse{Request: req, Drawing: d, Summary: summarize(g, false)})
}

func (s *Server) readDrawing(r *http.Request) (*thrackle.Graph, []byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read request body")
	}
	g, err := drawio.ReadJSON(bytes.NewReader(buf.Bytes()), s.opts.GraphOpts)
	if err != nil {
		return nil, nil, err
	}
	return g, buf.Bytes(), nil
}

func (s *Server) handleCrossings(w http.ResponseWriter, r *http.Request) {
	g, _, err := s.readDrawing(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(g, true))
}

var contentTypes = map[string]string{
	"dot": "text/vnd.graphviz",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
	"png": "image/png",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "svg"
	}
	if _, ok := contentTypes[format]; !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want one of %v)", format, render.Formats))
		return
	}
	opts := dot.Options{
		Labels:    q.Get("labels") != "false",
		Crossings: q.Get("crossings") != "false",
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}

	g, body, err := s.readDrawing(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	key := s.opts.Keyer.RenderKey(cache.Hash(body), cache.RenderKeyOpts{
		Format: format, Labels: opts.Labels, Crossings: opts.Crossings, Scale: opts.Scale,
	})
	out, ok, err := s.opts.Cache.Get(ctx, key)
	if err != nil || !ok {
		out, err = dot.Render(ctx, g, format, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.opts.Cache.Set(ctx, key, out, s.opts.CacheTTL); err != nil {
			s.logger.Warn("cache write failed", "key", key, "err", err)
		}
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type saveRequest struct {
	Label   string         `json:"label"`
	Drawing drawio.Drawing `json:"drawing"`
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.opts.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if snaps == nil {
		snaps = []*history.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Drawing.ToGraph(s.opts.GraphOpts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	snap := history.NewSnapshot(g, req.Label)
	if err := s.opts.Store.Save(r.Context(), snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.opts.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
