package badges

import (
	"time"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/stats"
)

// facts are the aggregates the unlock predicates are checked against.
type facts struct {
	sessions      int
	totalHours    float64
	subjects      int
	currentStreak int
}

func collect(entries []models.StudyEntry, goalHours float64, now time.Time) facts {
	subjects := make(map[string]struct{})
	total := 0.0
	for _, e := range entries {
		total += e.Hours
		subjects[e.Subject] = struct{}{}
	}
	return facts{
		sessions:      len(entries),
		totalHours:    total,
		subjects:      len(subjects),
		currentStreak: stats.CurrentStudyStreak(entries, goalHours, now),
	}
}

func qualifies(id string, f facts) bool {
	switch id {
	case constants.BadgeFirstSession:
		return f.sessions > 0
	case constants.BadgeStreak7:
		return f.currentStreak >= constants.Streak7Days
	case constants.BadgeStreak30:
		return f.currentStreak >= constants.Streak30Days
	case constants.BadgeHours100:
		return f.totalHours >= constants.HoursMilestone
	case constants.BadgeFiveSubjects:
		return f.subjects >= constants.DistinctSubjectsGoal
	default:
		return false
	}
}

// Evaluate checks the locked badges of current against entries, in catalog
// order, and unlocks at most one: the first that qualifies. Others that also
// qualify stay locked until the next call, so each action surfaces one unlock.
//
// current is never modified. updated is the merged catalog with the new
// unlock applied; unlocked is nil when nothing new qualified.
func Evaluate(entries []models.StudyEntry, current []models.Badge, goalHours float64, now time.Time) (updated []models.Badge, unlocked *models.Badge) {
	updated = Merge(current)
	f := collect(entries, goalHours, now)

	for i := range updated {
		if updated[i].Unlocked() {
			continue
		}
		if !qualifies(updated[i].ID, f) {
			continue
		}
		ts := now
		updated[i].UnlockedAt = &ts
		b := updated[i]
		return updated, &b
	}
	return updated, nil
}
