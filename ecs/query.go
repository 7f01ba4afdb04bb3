package ecs

// IntersectEntities returns the entities present in every set, in the dense
// order of the smallest one.
func IntersectEntities(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		keep := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}
