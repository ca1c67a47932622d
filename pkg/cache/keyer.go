package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey generates a key for a layout computed from the input with
	// the given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the layout options that change the result.
type LayoutKeyOpts struct {
	Columns         int     `json:"columns"`
	ColumnWidth     float64 `json:"column_width"`
	LastLineReorder bool    `json:"last_line_reorder"`
}

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>" over the input hash and options.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return "layout:" + digestOf([]any{inputHash, opts})
}
