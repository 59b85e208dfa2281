// Package catalog provides a read-only dataset catalog over HDF5
// containers. A Catalog opens one container (a file, a URL, or an
// in-memory image), discovers every dataset reachable from the root
// with a single cycle-safe traversal, and classifies each dataset's
// on-disk type into a small canonical set of value types. Datasets
// whose types fall outside that set fail catalog construction rather
// than being silently skipped.
//
// After construction the catalog answers metadata queries (Components,
// Spec, Info) and performs bounds-checked region reads that decode raw
// bytes into typed Go slices. All operations on all catalogs are
// serialized behind one process-wide lock.
package catalog
