package gocube

import (
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/gocube_solver/internal/pdb"
	"github.com/SeamusWaldron/gocube_solver/internal/search"
)

// Option configures a Solver.
type Option func(*config)

type config struct {
	tablesDir    string
	projections  []string
	edgeGroups   []int
	algorithm    string
	maxDepth     int
	memoryLimit  uint64
	workers      int
	width        uint8
	buildMissing bool
	logger       *logrus.Entry
}

func defaultConfig() *config {
	return &config{
		tablesDir:   "tables",
		edgeGroups:  []int{6, 6},
		algorithm:   "idastar",
		maxDepth:    search.DefaultMaxDepth,
		memoryLimit: pdb.DefaultMemoryLimit,
		width:       pdb.Width4,
		logger:      logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithTablesDir sets the directory pattern databases are loaded from and
// saved to. The default is "tables" in the working directory.
func WithTablesDir(dir string) Option {
	return func(c *config) {
		c.tablesDir = dir
	}
}

// WithProjections selects the pattern databases by name, such as "corners"
// or "edges:0,1,2,3,4,5". It overrides WithEdgeGroups.
func WithProjections(names ...string) Option {
	return func(c *config) {
		c.projections = names
	}
}

// WithEdgeGroups sets the sizes of the edge tables used with the corner
// table. The default is Korf's 6+6 split.
func WithEdgeGroups(sizes ...int) Option {
	return func(c *config) {
		c.edgeGroups = sizes
	}
}

// WithAlgorithm chooses the search: "idastar" (default), "astar", "bfs" or
// "iddfs". The last two use no tables.
func WithAlgorithm(name string) Option {
	return func(c *config) {
		c.algorithm = name
	}
}

// WithMaxDepth bounds the solution length.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithMemoryLimit caps the memory used while building tables.
func WithMemoryLimit(bytes uint64) Option {
	return func(c *config) {
		c.memoryLimit = bytes
	}
}

// WithWorkers sets the goroutines used while building tables.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithWidth sets the bits per entry of newly built tables, 4 or 8.
func WithWidth(width uint8) Option {
	return func(c *config) {
		c.width = width
	}
}

// WithBuildMissing builds and saves tables that are not on disk instead of
// failing with ErrTablesNotBuilt.
func WithBuildMissing(enabled bool) Option {
	return func(c *config) {
		c.buildMissing = enabled
	}
}

// WithLogger sets the logger for table builds and searches.
func WithLogger(l *logrus.Entry) Option {
	return func(c *config) {
		c.logger = l
	}
}
