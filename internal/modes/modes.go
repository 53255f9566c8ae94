// Package modes defines the game mode catalog and the pool filtering rules.
package modes

import (
	"github.com/kritsada/personaguess/internal/corpus"
)

// Mode filters the person pool down to one category. A nil OccupationFilter
// means no occupation filtering at all; the metadata-based fields only apply
// to persons carrying metadata.
type Mode struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameTH        string `json:"name_th"`
	Description   string `json:"description"`
	DescriptionTH string `json:"description_th"`
	Icon          string `json:"icon"`

	OccupationFilter    []string
	CareerDomains       []string
	MinAchievementScore *float64
	EraCategories       []string
}

// DefaultModeID is the fallback for unknown or missing mode ids.
const DefaultModeID = "all"

func scorePtr(v float64) *float64 { return &v }

// catalog lists the built-in modes in display order.
var catalog = []Mode{
	{
		ID:            "all",
		Name:          "All Persons",
		NameTH:        "บุคคลทั้งหมด",
		Description:   "All famous Thai persons across all categories",
		DescriptionTH: "บุคคลชื่อดังทุกประเภท",
		Icon:          "🌟",
	},
	{
		ID:            "entertainment",
		Name:          "Entertainment",
		NameTH:        "บันเทิง",
		Description:   "Actors, actresses, comedians, TV presenters",
		DescriptionTH: "นักแสดง ดารา นักแสดงตลก พิธีกร",
		Icon:          "🎬",
		OccupationFilter: []string{
			"Q33999",    // actor
			"Q10800557", // film actor
			"Q10798782", // television actor
			"Q2405480",  // voice actor
			"Q2259451",  // stage actor
			"Q245068",   // comedian
			"Q947873",   // television presenter
			"Q1329383",  // news presenter
			"Q4610556",  // model
		},
		CareerDomains: []string{"entertainment", "media"},
	},
	{
		ID:            "sports",
		Name:          "Sports",
		NameTH:        "กีฬา",
		Description:   "Athletes, footballers, and sports personalities",
		DescriptionTH: "นักกีฬา นักฟุตบอล นักกีฬาอาชีพ",
		Icon:          "⚽",
		OccupationFilter: []string{
			"Q937857",   // footballer
			"Q11513337", // association football player
			"Q10833314", // tennis player
			"Q10871364", // badminton player
			"Q14089670", // muay thai fighter
			"Q10843402", // volleyball player
			"Q10843263", // basketball player
			"Q15117302", // esports player
			"Q2066131",  // athlete
		},
		CareerDomains: []string{"sports"},
	},
	{
		ID:            "music",
		Name:          "Music",
		NameTH:        "ดนตรี",
		Description:   "Singers, musicians, composers, DJs",
		DescriptionTH: "นักร้อง นักดนตรี นักแต่งเพลง ดีเจ",
		Icon:          "🎵",
		OccupationFilter: []string{
			"Q177220",  // singer
			"Q488205",  // singer-songwriter
			"Q639669",  // musician
			"Q855091",  // guitarist
			"Q36834",   // composer
			"Q753110",  // songwriter
			"Q130857",  // rapper
			"Q5716684", // dancer
			"Q2643890", // choreographer
			"Q386854",  // disc jockey
		},
		CareerDomains: []string{"music"},
	},
	{
		ID:            "important_person",
		Name:          "Important Persons",
		NameTH:        "บุคคลสำคัญ",
		Description:   "Politicians, leaders, and highly influential figures",
		DescriptionTH: "นักการเมือง ผู้นำ บุคคลที่มีอิทธิพลสูง",
		Icon:          "👔",
		OccupationFilter: []string{
			"Q82955",  // politician
			"Q372436", // statesman
		},
		CareerDomains:       []string{"politics"},
		MinAchievementScore: scorePtr(20),
	},
	{
		ID:            "arts_culture",
		Name:          "Arts & Culture",
		NameTH:        "ศิลปะและวัฒนธรรม",
		Description:   "Directors, artists, writers, photographers",
		DescriptionTH: "ผู้กำกับ ศิลปิน นักเขียน ช่างภาพ",
		Icon:          "🎨",
		OccupationFilter: []string{
			"Q2526255",  // film director
			"Q3455803",  // director
			"Q3286043",  // producer
			"Q1414443",  // screenwriter
			"Q1028181",  // painter
			"Q33231",    // photographer
			"Q15296811", // illustrator
			"Q483501",   // artist
			"Q266569",   // graphic designer
			"Q36180",    // writer
			"Q6625963",  // novelist
			"Q15980158", // poet
			"Q214917",   // playwright
			"Q1930187",  // journalist
		},
		CareerDomains: []string{"creative_arts", "writing", "media"},
	},
	{
		ID:            "influencers",
		Name:          "Social Media & Influencers",
		NameTH:        "โซเชียลมีเดียและอินฟลูเอนเซอร์",
		Description:   "YouTubers, influencers, bloggers, content creators",
		DescriptionTH: "ยูทูบเบอร์ อินฟลูเอนเซอร์ บล็อกเกอร์",
		Icon:          "📱",
		OccupationFilter: []string{
			"Q2722764",  // youtuber
			"Q13590141", // influencer
			"Q7042855",  // blogger
		},
		CareerDomains: []string{"media"},
		EraCategories: []string{"millennial", "millennial_late", "gen_z"},
	},
}

// Catalog is the mode lookup table built once at startup.
type Catalog struct {
	modes []Mode
	byID  map[string]*Mode
}

func NewCatalog() *Catalog {
	c := &Catalog{modes: catalog, byID: make(map[string]*Mode, len(catalog))}
	for i := range c.modes {
		c.byID[c.modes[i].ID] = &c.modes[i]
	}
	return c
}

// All returns the modes in display order.
func (c *Catalog) All() []Mode {
	return c.modes
}

// Resolve returns the mode for the given id, falling back to the default
// mode when the id is unknown or empty.
func (c *Catalog) Resolve(id string) Mode {
	if mode, ok := c.byID[id]; ok {
		return *mode
	}
	return *c.byID[DefaultModeID]
}

// Filter returns the ids of the persons matching the mode, in index order.
//
// Occupation filtering works on every person. The metadata-driven criteria
// (career domain, minimum achievement, era) only apply to persons that carry
// metadata, so an unenriched corpus quietly degrades to occupation-only
// filtering.
func (m Mode) Filter(index *corpus.Index) []string {
	var pool []string
	for _, person := range index.All() {
		if len(m.OccupationFilter) > 0 && !matchesAny(person.FactualTags, m.OccupationFilter) {
			continue
		}
		if person.Meta != nil && !m.matchesMetadata(person.Meta) {
			continue
		}
		pool = append(pool, person.ID)
	}
	return pool
}

func (m Mode) matchesMetadata(meta *corpus.Metadata) bool {
	if len(m.CareerDomains) > 0 && !contains(m.CareerDomains, meta.Domain) {
		return false
	}
	if m.MinAchievementScore != nil && meta.AchievementScore < *m.MinAchievementScore {
		return false
	}
	if len(m.EraCategories) > 0 && !contains(m.EraCategories, meta.Era) {
		return false
	}
	return true
}

func matchesAny(tags corpus.TagSet, ids []string) bool {
	for _, id := range ids {
		if tags.Has(id) {
			return true
		}
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
