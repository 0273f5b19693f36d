package pdb

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// DefaultMemoryLimit is the memory ceiling used when none is configured.
const DefaultMemoryLimit = 2 << 30

// Build modes, chosen per depth.
const (
	ModeFrontier = "frontier"
	ModeScan     = "scan"
)

const (
	chunkSize = 1 << 16 // coordinates per frontier chunk
	batchSize = 4096    // coordinates per worker task
)

// Progress reports one completed depth of a build.
type Progress struct {
	Projection string
	Depth      int
	New        uint64
	Visited    uint64
	Size       uint64
	Mode       string
	Elapsed    time.Duration
}

// Builder fills distance tables by breadth-first search over the coordinate
// graph of a projection.
type Builder struct {
	workers  int
	limit    uint64
	width    uint8
	logger   *logrus.Entry
	progress func(Progress)
	moves    []cube.Move
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of goroutines expanding a frontier.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithMemoryLimit sets the memory ceiling in bytes for the table and the
// frontiers together.
func WithMemoryLimit(bytes uint64) Option {
	return func(b *Builder) {
		b.limit = bytes
	}
}

// WithWidth sets the bits per distance, 4 or 8.
func WithWidth(width uint8) Option {
	return func(b *Builder) {
		b.width = width
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// WithProgress registers a callback run after every depth.
func WithProgress(fn func(Progress)) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

// NewBuilder creates a builder. By default it uses one worker per CPU,
// 4-bit distances and DefaultMemoryLimit.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		workers: runtime.GOMAXPROCS(0),
		limit:   DefaultMemoryLimit,
		width:   Width4,
		logger:  logrus.NewEntry(logrus.New()),
		moves:   cube.AllMoves(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build computes the distance table of p.
func Build(p coord.Projection, opts ...Option) (*Table, error) {
	return NewBuilder(opts...).Build(p)
}

// frontierFits reports whether a frontier of cur coordinates and the next
// one fit next to the table.
func (b *Builder) frontierFits(base, cur, remaining uint64) bool {
	next := cur * uint64(len(b.moves))
	if next > remaining {
		next = remaining
	}
	return base+8*(cur+next) <= b.limit
}

// Build computes the distance table of p.
//
// Every depth is expanded either from an explicit frontier, split across
// the worker pool, or, when the frontiers would not fit under the memory
// limit, by a sequential scan of the table for the entries at that depth.
func (b *Builder) Build(p coord.Projection) (*Table, error) {
	size := p.Size()
	if !validWidth(b.width) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, b.width)
	}
	base := TableBytes(size, b.width)
	if base > b.limit {
		return nil, fmt.Errorf("%w: %s needs %s, limit is %s", ErrOutOfMemory,
			p.Name(), humanize.IBytes(base), humanize.IBytes(b.limit))
	}

	log := b.logger.WithField("projection", p.Name())
	log.WithFields(logrus.Fields{
		"size":    humanize.Comma(int64(size)),
		"memory":  humanize.IBytes(base),
		"limit":   humanize.IBytes(b.limit),
		"workers": b.workers,
	}).Info("building table")

	t, err := newTable(p.Name(), size, b.width)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	solved := p.Encode(cube.Solved())
	t.claim(solved, 0)
	visited := uint64(1)
	frontier := [][]uint64{{solved}}
	current := uint64(1)

	depth := 0
	for ; visited < size; depth++ {
		if depth+1 >= int(t.Unknown()) {
			return nil, fmt.Errorf("%w: %s deeper than %d at width %d", ErrDepthOverflow, p.Name(), depth, b.width)
		}

		var found uint64
		mode := ModeFrontier
		if frontier == nil && b.frontierFits(base, current, size-visited) {
			frontier = b.gather(t, uint8(depth))
		}
		if frontier != nil && b.frontierFits(base, current, size-visited) {
			frontier, found = b.expand(p, t, frontier, uint8(depth))
		} else {
			mode = ModeScan
			frontier = nil
			found = b.scan(p, t, uint8(depth))
		}

		if found == 0 {
			break
		}
		visited += found
		current = found

		log.WithFields(logrus.Fields{
			"depth":   depth + 1,
			"new":     humanize.Comma(int64(found)),
			"visited": humanize.Comma(int64(visited)),
			"mode":    mode,
		}).Debug("depth done")
		if b.progress != nil {
			b.progress(Progress{
				Projection: p.Name(),
				Depth:      depth + 1,
				New:        found,
				Visited:    visited,
				Size:       size,
				Mode:       mode,
				Elapsed:    time.Since(start),
			})
		}
	}

	if visited != size {
		return nil, fmt.Errorf("%w: %s reached %d of %d", ErrUnreachable, p.Name(), visited, size)
	}
	t.maxDepth = uint8(depth)

	log.WithFields(logrus.Fields{
		"max_depth": t.maxDepth,
		"elapsed":   time.Since(start).Round(time.Millisecond),
	}).Info("table built")
	return t, nil
}

// expand claims every unknown neighbour of the frontier at depth+1 and
// returns them as the next frontier.
func (b *Builder) expand(p coord.Projection, t *Table, frontier [][]uint64, depth uint8) ([][]uint64, uint64) {
	var (
		mu    sync.Mutex
		next  [][]uint64
		found uint64
	)
	wp := pool.New().WithMaxGoroutines(b.workers)
	for _, chunk := range frontier {
		for start := 0; start < len(chunk); start += batchSize {
			batch := chunk[start:min(start+batchSize, len(chunk))]
			wp.Go(func() {
				var out []uint64
				for _, c := range batch {
					for _, m := range b.moves {
						n := p.Move(c, m)
						if t.load(n) == t.Unknown() && t.claim(n, depth+1) {
							out = append(out, n)
						}
					}
				}
				if len(out) == 0 {
					return
				}
				mu.Lock()
				next = append(next, out)
				found += uint64(len(out))
				mu.Unlock()
			})
		}
	}
	wp.Wait()
	return next, found
}

// scan expands depth by walking the whole table, without frontier memory.
func (b *Builder) scan(p coord.Projection, t *Table, depth uint8) uint64 {
	var found uint64
	for c := uint64(0); c < t.size; c++ {
		if t.Get(c) != depth {
			continue
		}
		for _, m := range b.moves {
			if t.claim(p.Move(c, m), depth+1) {
				found++
			}
		}
	}
	return found
}

// gather collects the coordinates at depth into a frontier.
func (b *Builder) gather(t *Table, depth uint8) [][]uint64 {
	var (
		frontier [][]uint64
		chunk    []uint64
	)
	for c := uint64(0); c < t.size; c++ {
		if t.Get(c) != depth {
			continue
		}
		if chunk == nil {
			chunk = make([]uint64, 0, chunkSize)
		}
		chunk = append(chunk, c)
		if len(chunk) == chunkSize {
			frontier = append(frontier, chunk)
			chunk = nil
		}
	}
	if len(chunk) > 0 {
		frontier = append(frontier, chunk)
	}
	return frontier
}
