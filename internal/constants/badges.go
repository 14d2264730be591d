package constants

// Badge identifiers. The order of the catalog lives in the badges package.
const (
	BadgeStreak7      = "streak_7"
	BadgeStreak30     = "streak_30"
	BadgeHours100     = "hours_100"
	BadgeFirstSession = "first_session"
	BadgeFiveSubjects = "five_subjects"

	Streak7Days          = 7
	Streak30Days         = 30
	HoursMilestone       = 100.0
	DistinctSubjectsGoal = 5
)
