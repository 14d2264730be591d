package models

// Settings represents application-wide settings
type Settings struct {
	DailyGoalHours       float64 `json:"daily_goal_hours" yaml:"daily_goal_hours"`             // hours per day for a day to count toward the streak
	WeeklyGoalHours      float64 `json:"weekly_goal_hours" yaml:"weekly_goal_hours"`           // target hours for a Monday-Sunday week
	Timezone             string  `json:"timezone" yaml:"timezone"`                             // IANA timezone name, or "Local" for system timezone
	NotificationsEnabled bool    `json:"notifications_enabled" yaml:"notifications_enabled"` // whether badge unlocks are sent to the tray app
}
