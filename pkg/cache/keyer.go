package cache

// Keyer generates cache keys.
type Keyer interface {
	// DrawingKey identifies a synthesized drawing.
	DrawingKey(opts DrawingKeyOpts) string
	// RenderKey identifies a rendered artifact of a drawing.
	RenderKey(drawingHash string, opts RenderKeyOpts) string
}

// DrawingKeyOpts holds everything that determines a synthesized drawing.
type DrawingKeyOpts struct {
	Shape   string  `json:"shape"`
	N       int     `json:"n"`
	K       int     `json:"k"`
	Variant string  `json:"variant"`
	Spacing float64 `json:"spacing"`
	Radius  float64 `json:"radius"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// RenderKeyOpts holds the output options of a rendered artifact.
type RenderKeyOpts struct {
	Format    string  `json:"format"`
	Labels    bool    `json:"labels"`
	Crossings bool    `json:"crossings"`
	Scale     float64 `json:"scale"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DrawingKey returns "drawing:<hash>".
func (DefaultKeyer) DrawingKey(opts DrawingKeyOpts) string {
	return hashKey("drawing", opts)
}

// RenderKey returns "render:<hash>".
func (DefaultKeyer) RenderKey(drawingHash string, opts RenderKeyOpts) string {
	return hashKey("render", drawingHash, opts)
}
