package corpus

// TagSet is an unordered set of category identifiers without duplicates.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from the given identifiers.
func NewTagSet(ids ...string) TagSet {
	set := make(TagSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s TagSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersects reports whether the two sets share at least one identifier.
func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.Has(id) {
			return true
		}
	}
	return false
}

// AspectVectors are the named embeddings of the multi-aspect similarity
// strategy. All five must be present for the bundle to count as complete.
type AspectVectors struct {
	Career       []float32
	Achievement  []float32
	Biographical []float32
	Influence    []float32
	Combined     []float32
}

// Complete reports whether every aspect embedding is present.
func (a *AspectVectors) Complete() bool {
	return a != nil &&
		len(a.Career) > 0 &&
		len(a.Achievement) > 0 &&
		len(a.Biographical) > 0 &&
		len(a.Influence) > 0 &&
		len(a.Combined) > 0
}

// Metadata is the structured companion of a multi-aspect bundle.
type Metadata struct {
	// Domain is the career domain, e.g. "music" or "sports".
	Domain string
	// Era is an ordered generation bucket, e.g. "boomer" or "gen_z".
	Era string
	// AchievementScore ranges from 0 to 100.
	AchievementScore float64
	// ThematicTags are free-form thematic labels.
	ThematicTags TagSet
}

// Person is immutable after load.
//
// A person with a complete aspect bundle always has Meta set; the loader
// drops incomplete bundles so the similarity strategies never need to check
// the two fields separately.
type Person struct {
	ID             string
	Label          string
	FactualTags    TagSet
	RelationalTags TagSet
	// Narrative may be nil, in which case it contributes zero similarity.
	Narrative []float32
	Aspects   *AspectVectors
	Meta      *Metadata
}

// HasAspectBundle reports whether the person carries a complete multi-aspect
// bundle with metadata.
func (p *Person) HasAspectBundle() bool {
	return p.Aspects.Complete() && p.Meta != nil
}
