package bytelog

// Relations assigns small dense integer ids to relation names. It shares the
// intern contract of AtomTable (insertion order, idempotent, dense, never
// reused) but lives in its own namespace: a relation named "foo" and an atom
// named "foo" never collide, since one indexes into Relations and the other
// into an AtomTable.
type Relations struct {
	table *AtomTable
}

// NewRelations returns an empty relation registry.
func NewRelations() *Relations {
	return &Relations{table: NewAtomTable()}
}

// Resolve returns the id for name, declaring it if this is the first time
// name has been seen. This implements spec §4.6's REL no-op-if-declared and
// first-use-defines-it behavior in one call.
func (r *Relations) Resolve(name string) int {
	return r.table.Intern(name)
}

// Lookup returns the id already assigned to name, without declaring it.
func (r *Relations) Lookup(name string) (int, bool) {
	return r.table.Lookup(name)
}

// Name returns the name registered under id, if any.
func (r *Relations) Name(id int) (string, bool) {
	return r.table.Name(id)
}
