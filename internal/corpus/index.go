package corpus

// minAspectCoverage is the fraction of persons that must carry a complete
// multi-aspect bundle for the multi-aspect strategy to be usable. Below this
// the corpus degrades to the basic strategy for everyone, so that a partially
// enriched corpus does not split the ranking into incomparable halves.
const minAspectCoverage = 0.8

// Index is the immutable process-wide snapshot of all persons. It is built
// once at startup and is safe for unsynchronized concurrent reads.
type Index struct {
	persons     []*Person
	byID        map[string]*Person
	multiAspect bool
}

// NewIndex builds an Index from persons in their given order. The order is
// the deterministic tie-break for rankings, so callers should pass persons
// sorted by id.
func NewIndex(persons []*Person) *Index {
	byID := make(map[string]*Person, len(persons))
	bundled := 0
	for _, p := range persons {
		byID[p.ID] = p
		if p.HasAspectBundle() {
			bundled++
		}
	}
	multiAspect := len(persons) > 0 && float64(bundled) >= minAspectCoverage*float64(len(persons))
	return &Index{
		persons:     persons,
		byID:        byID,
		multiAspect: multiAspect,
	}
}

// Get returns the person with the given id.
func (idx *Index) Get(id string) (*Person, bool) {
	p, ok := idx.byID[id]
	return p, ok
}

// All returns every person in index order. The slice is shared; callers must
// not mutate it.
func (idx *Index) All() []*Person {
	return idx.persons
}

func (idx *Index) Len() int {
	return len(idx.persons)
}

// MultiAspectAvailable is the capability flag computed once at load: it
// reports whether enough of the corpus carries complete aspect bundles for
// the multi-aspect strategy and metadata-based mode filters.
func (idx *Index) MultiAspectAvailable() bool {
	return idx.multiAspect
}
