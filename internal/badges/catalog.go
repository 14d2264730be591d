package badges

import (
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

// catalog is the fixed badge set in evaluation order.
var catalog = []models.Badge{
	{ID: constants.BadgeStreak7, Title: "7 Day Streak", Description: "Study 7 days in a row", Icon: "flame"},
	{ID: constants.BadgeStreak30, Title: "30 Day Streak", Description: "Study 30 days in a row", Icon: "trophy"},
	{ID: constants.BadgeHours100, Title: "100 Hours", Description: "Accumulate 100 study hours", Icon: "star"},
	{ID: constants.BadgeFirstSession, Title: "First Session", Description: "Log your first study session", Icon: "rocket"},
	{ID: constants.BadgeFiveSubjects, Title: "Well Rounded", Description: "Study 5 different subjects", Icon: "school"},
}

// Catalog returns a fresh, fully locked copy of the badge catalog.
func Catalog() []models.Badge {
	out := make([]models.Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog definition for id.
func Lookup(id string) (models.Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// Merge overlays the unlock timestamps of stored badges onto the catalog.
// Stored badges with unknown ids are dropped and catalog badges missing from
// stored come back locked, so the result is always the full catalog in order.
func Merge(stored []models.Badge) []models.Badge {
	unlocked := make(map[string]models.Badge, len(stored))
	for _, b := range stored {
		if b.Unlocked() {
			unlocked[b.ID] = b
		}
	}

	merged := Catalog()
	for i := range merged {
		if s, ok := unlocked[merged[i].ID]; ok {
			ts := *s.UnlockedAt
			merged[i].UnlockedAt = &ts
		}
	}
	return merged
}

// UnlockedCount reports how many badges in list are unlocked.
func UnlockedCount(list []models.Badge) int {
	n := 0
	for _, b := range list {
		if b.Unlocked() {
			n++
		}
	}
	return n
}

var glyphs = map[string]string{
	"flame":  "🔥",
	"trophy": "🏆",
	"star":   "⭐",
	"rocket": "🚀",
	"school": "🎓",
}

// Glyph maps a catalog icon name to the emoji shown in the terminal.
// Unknown names are returned unchanged.
func Glyph(icon string) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return icon
}
