package corpus

import (
	"context"
	"encoding/json"
	"github.com/kritsada/personaguess/internal/errors"
	"github.com/kritsada/personaguess/internal/sqlite"
	"log/slog"
)

// Load reads the corpus snapshot into an immutable Index. It runs once at
// startup; request handlers only ever see the finished snapshot.
func Load(ctx context.Context, db *sqlite.Database, logger *slog.Logger) (*Index, error) {
	var (
		err     error
		persons []*Person
		byID    = map[string]*Person{}
	)

	var personRows []struct {
		QID   string `db:"qid"`
		Label string `db:"label"`
	}
	if err = db.ReadOnly.SelectContext(ctx, &personRows,
		`SELECT qid, label FROM persons ORDER BY qid`); err != nil {
		return nil, errors.Wrap(err, "select persons")
	}
	for _, row := range personRows {
		person := &Person{
			ID:             row.QID,
			Label:          row.Label,
			FactualTags:    TagSet{},
			RelationalTags: TagSet{},
		}
		persons = append(persons, person)
		byID[row.QID] = person
	}

	var propertyRows []struct {
		PersonQID   string `db:"person_qid"`
		PropertyQID string `db:"property_qid"`
		Type        string `db:"type"`
	}
	if err = db.ReadOnly.SelectContext(ctx, &propertyRows,
		`SELECT person_qid, property_qid, type FROM person_properties`); err != nil {
		return nil, errors.Wrap(err, "select person properties")
	}
	for _, row := range propertyRows {
		person, ok := byID[row.PersonQID]
		if !ok {
			continue
		}
		switch row.Type {
		case "factual":
			person.FactualTags[row.PropertyQID] = struct{}{}
		case "relational":
			person.RelationalTags[row.PropertyQID] = struct{}{}
		}
	}

	var vectorRows []struct {
		PersonQID string `db:"person_qid"`
		Embedding []byte `db:"embedding"`
	}
	if err = db.ReadOnly.SelectContext(ctx, &vectorRows,
		`SELECT person_qid, embedding FROM narrative_vectors`); err != nil {
		return nil, errors.Wrap(err, "select narrative vectors")
	}
	for _, row := range vectorRows {
		person, ok := byID[row.PersonQID]
		if !ok {
			continue
		}
		if person.Narrative, err = DecodeVector(row.Embedding); err != nil {
			return nil, errors.Wrap(err, "decode narrative vector", slog.String("qid", row.PersonQID))
		}
	}

	var aspectRows []struct {
		PersonQID string `db:"person_qid"`
		Aspect    string `db:"aspect"`
		Embedding []byte `db:"embedding"`
	}
	if err = db.ReadOnly.SelectContext(ctx, &aspectRows,
		`SELECT person_qid, aspect, embedding FROM aspect_embeddings`); err != nil {
		return nil, errors.Wrap(err, "select aspect embeddings")
	}
	for _, row := range aspectRows {
		person, ok := byID[row.PersonQID]
		if !ok {
			continue
		}
		var vector []float32
		if vector, err = DecodeVector(row.Embedding); err != nil {
			return nil, errors.Wrap(err, "decode aspect embedding",
				slog.String("qid", row.PersonQID), slog.String("aspect", row.Aspect))
		}
		if person.Aspects == nil {
			person.Aspects = &AspectVectors{}
		}
		switch row.Aspect {
		case "career":
			person.Aspects.Career = vector
		case "achievement":
			person.Aspects.Achievement = vector
		case "biographical":
			person.Aspects.Biographical = vector
		case "influence":
			person.Aspects.Influence = vector
		case "combined":
			person.Aspects.Combined = vector
		}
	}

	var metadataRows []struct {
		PersonQID        string  `db:"person_qid"`
		CareerDomain     string  `db:"career_domain"`
		EraCategory      string  `db:"era_category"`
		AchievementScore float64 `db:"achievement_score"`
		ThematicTags     string  `db:"thematic_tags"`
	}
	if err = db.ReadOnly.SelectContext(ctx, &metadataRows,
		`SELECT person_qid, career_domain, era_category, achievement_score, thematic_tags
		 FROM person_metadata`); err != nil {
		return nil, errors.Wrap(err, "select person metadata")
	}
	for _, row := range metadataRows {
		person, ok := byID[row.PersonQID]
		if !ok {
			continue
		}
		var tags []string
		if err = json.Unmarshal([]byte(row.ThematicTags), &tags); err != nil {
			return nil, errors.Wrap(err, "decode thematic tags", slog.String("qid", row.PersonQID))
		}
		person.Meta = &Metadata{
			Domain:           row.CareerDomain,
			Era:              row.EraCategory,
			AchievementScore: row.AchievementScore,
			ThematicTags:     NewTagSet(tags...),
		}
	}

	// A multi-aspect bundle without metadata would break the strategy
	// invariant, so incomplete enrichments are dropped as a pair.
	dropped := 0
	for _, person := range persons {
		if person.Aspects != nil && (!person.Aspects.Complete() || person.Meta == nil) {
			person.Aspects = nil
			person.Meta = nil
			dropped++
		}
	}
	if dropped > 0 {
		logger.LogAttrs(ctx, slog.LevelWarn, "dropped incomplete aspect bundles", slog.Int("count", dropped))
	}

	index := NewIndex(persons)
	logger.LogAttrs(ctx, slog.LevelInfo, "corpus loaded",
		slog.Int("persons", index.Len()),
		slog.Bool("multiAspect", index.MultiAspectAvailable()))
	return index, nil
}
