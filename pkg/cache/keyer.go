package cache

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey keys a full pipeline report for a roster.
	ResultKey(inputHash string, opts ResultKeyOpts) string
	// SolveKey keys a report solved from a pre-built matrix.
	SolveKey(matrixHash string) string
}

// ResultKeyOpts are the pipeline options that change a report.
type ResultKeyOpts struct {
	DefaultCost int    `json:"default_cost"`
	Seed        uint64 `json:"seed"`
	Shuffle     bool   `json:"shuffle"`
	CloneAware  bool   `json:"clone_aware"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<sha256>" over the input hash and options.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}

// SolveKey returns "solve:<sha256>" over the matrix hash.
func (DefaultKeyer) SolveKey(matrixHash string) string {
	return hashKey("solve", matrixHash)
}
