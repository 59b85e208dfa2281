package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/robert-malhotra/hdf5cat/hdf5"
)

// mu serializes every container operation process-wide. The container
// parsing layer is treated as non-reentrant, so all catalogs share one
// lock rather than locking per instance.
var mu sync.Mutex

// Catalog owns one open container and an immutable index of every
// dataset reachable from its root. Construction is all-or-nothing: a
// single dataset that cannot be classified fails the whole open.
type Catalog struct {
	file   *hdf5.File
	source string
	closed bool

	components []string       // discovery order
	index      map[string]int // path -> slot
	shapes     [][]int64      // per slot, unpadded
	types      []CanonicalType

	complexNames [2]string
	log          *slog.Logger
}

// Open opens a container by source reference and builds the index.
// A source containing "://" is fetched over HTTP into memory; anything
// else is treated as a local file path.
func Open(source string, opts ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	mu.Lock()
	defer mu.Unlock()

	var (
		f   *hdf5.File
		err error
	)
	if strings.Contains(source, "://") {
		var image []byte
		image, err = fetch(source)
		if err == nil {
			f, err = hdf5.OpenImage(image)
		}
	} else {
		f, err = hdf5.Open(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailure, source, err)
	}

	c := &Catalog{
		file:         f,
		source:       source,
		index:        make(map[string]int),
		complexNames: o.complexNames,
		log:          o.log,
	}
	if err := c.init(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// OpenImage builds a catalog over a container image held in memory.
// The image is not copied and must stay valid for the catalog's
// lifetime.
func OpenImage(image []byte, opts ...Option) (*Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := hdf5.OpenImage(image)
	if err != nil {
		return nil, fmt.Errorf("%w: memory image: %v", ErrOpenFailure, err)
	}

	c := &Catalog{
		file:         f,
		source:       "<memory>",
		index:        make(map[string]int),
		complexNames: o.complexNames,
		log:          o.log,
	}
	if err := c.init(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

// fetch retrieves a network-addressed container into memory.
func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// init walks the object graph once and classifies every discovered
// dataset. Called with mu held.
func (c *Catalog) init() error {
	paths, datasets, err := c.collectDatasets()
	if err != nil {
		return err
	}

	for i, path := range paths {
		ds := datasets[i]

		ct, err := classify(ds.Datatype(), c.complexNames)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", path, err)
		}

		dims := ds.Shape()
		shape := make([]int64, len(dims))
		for d, v := range dims {
			shape[d] = int64(v)
		}

		slot := len(c.components)
		c.components = append(c.components, path)
		c.index[path] = slot
		c.shapes = append(c.shapes, shape)
		c.types = append(c.types, ct)

		c.log.Debug("indexed dataset",
			slog.String("path", path),
			slog.Any("shape", shape),
			slog.String("type", ct.String()))
	}

	return nil
}

// collectDatasets runs the cycle-safe traversal from the root and
// returns the discovered datasets in link order. Walk visits each
// object header address at most once, so repeated hard links and
// cyclic link topologies neither loop nor duplicate entries.
func (c *Catalog) collectDatasets() ([]string, []*hdf5.Dataset, error) {
	var (
		paths    []string
		datasets []*hdf5.Dataset
	)

	err := hdf5.Walk(c.file.Root(), func(path string, obj interface{}, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrOpenFailure, path, err)
		}
		if ds, ok := obj.(*hdf5.Dataset); ok {
			paths = append(paths, path)
			datasets = append(datasets, ds)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return paths, datasets, nil
}

// Components returns all indexed dataset paths in discovery order.
func (c *Catalog) Components() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(c.components))
	copy(out, c.components)
	return out
}

// Spec returns the shape and canonical type of one dataset.
func (c *Catalog) Spec(path string) ([]int64, CanonicalType, error) {
	mu.Lock()
	defer mu.Unlock()

	slot, ok := c.index[path]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	shape := make([]int64, len(c.shapes[slot]))
	copy(shape, c.shapes[slot])
	return shape, c.types[slot], nil
}

// Info returns every indexed dataset with its shape padded to the
// maximum rank across the catalog, using -1 for absent trailing
// dimensions.
func (c *Catalog) Info() []Component {
	mu.Lock()
	defer mu.Unlock()

	maxRank := 0
	for _, shape := range c.shapes {
		if len(shape) > maxRank {
			maxRank = len(shape)
		}
	}

	out := make([]Component, len(c.components))
	for i, path := range c.components {
		padded := make([]int64, maxRank)
		for d := range padded {
			padded[d] = -1
		}
		copy(padded, c.shapes[i])
		out[i] = Component{Path: path, Shape: padded, Type: c.types[i]}
	}
	return out
}

// Source returns the container reference this catalog was opened from.
func (c *Catalog) Source() string {
	return c.source
}

// Close releases the container handle. The catalog is unusable
// afterwards.
func (c *Catalog) Close() error {
	mu.Lock()
	defer mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.file.Close()
}
