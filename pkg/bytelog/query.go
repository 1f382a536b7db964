package bytelog

// Query answers a point, half-ground, or open query against store, per the
// four cases of spec §4.5. An unknown relation id (one Relations never
// resolved) yields an empty result, not an error; callers get this for
// free since an absent relationTable behaves like an empty one throughout
// Store.
func Query(store *Store, rel int, a, b Arg) [][2]int {
	switch {
	case !a.IsWild() && !b.IsWild():
		if store.Contains(rel, a.Value(), b.Value()) {
			return [][2]int{{a.Value(), b.Value()}}
		}
		return [][2]int{}

	case !a.IsWild() && b.IsWild():
		bs := store.LookupByFirst(rel, a.Value())
		out := make([][2]int, len(bs))
		for i, v := range bs {
			out[i] = [2]int{a.Value(), v}
		}
		return out

	case a.IsWild() && !b.IsWild():
		as := store.LookupBySecond(rel, b.Value())
		out := make([][2]int, len(as))
		for i, v := range as {
			out[i] = [2]int{v, b.Value()}
		}
		return out

	default: // both wildcards
		return store.Iter(rel)
	}
}
