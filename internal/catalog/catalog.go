// Package catalog is a minimal stand-in for the table catalog: the
// producer of schemas this module treats as an external collaborator. It
// presents table metadata as the rowcodec.ColumnSchema shape the V2 codec
// consumes.
package catalog

import "github.com/rowkv/codec/internal/rowcodec"

// TableMeta describes one table: its storage identity plus the column
// schema list handed to the codec. FileBase/PageCount have no storage
// engine of their own to act on here — a catalog implementation in a full
// system would use them to locate the table's backing pages.
type TableMeta struct {
	Name      string
	Namespace byte
	CommonID  int64
	FileBase  string
	PageCount uint32
	Columns   rowcodec.SchemaList
}

// Registry is an in-memory table catalog, keyed by name. Real
// implementations would back this with the storage engine's own metadata
// table; this one exists only so cmd/rowcodecdemo has something to look
// schemas up from.
type Registry struct {
	tables map[string]TableMeta
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]TableMeta)}
}

func (r *Registry) Register(t TableMeta) {
	r.tables[t.Name] = t
}

func (r *Registry) Lookup(name string) (TableMeta, bool) {
	t, ok := r.tables[name]
	return t, ok
}
