package catalog

import "fmt"

// ReadRange decodes the region between start and stop (exclusive),
// applying the lenient request-boundary policy: vectors shorter than
// the dataset rank are extended (start pads with 0, stop with the
// dimension's full extent), a stop outside [0, extent] snaps to the
// extent, and a start past its stop is pulled down to it, yielding a
// zero-length slice rather than an error. A negative start is not
// repaired and fails the strict validation below.
//
// The normalized region then goes through the same strict read path as
// Read; the two layers are deliberately distinct.
func (c *Catalog) ReadRange(path string, start, stop []int64) (*Value, error) {
	mu.Lock()
	defer mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	slot, ok := c.index[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	dims := c.shapes[slot]

	if len(start) > len(dims) || len(stop) > len(dims) {
		return nil, fmt.Errorf("%w: %s: start/stop rank %d/%d, dataset rank %d",
			ErrRankMismatch, path, len(start), len(stop), len(dims))
	}

	normStart := make([]int64, len(dims))
	shape := make([]int64, len(dims))
	for i, dim := range dims {
		s := int64(0)
		if i < len(start) {
			s = start[i]
		}
		e := dim
		if i < len(stop) {
			e = stop[i]
		}
		if e < 0 || e > dim {
			e = dim
		}
		if s > e {
			s = e
		}
		normStart[i] = s
		shape[i] = e - s
	}

	return c.read(path, normStart, shape)
}
