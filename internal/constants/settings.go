package constants

const (
	// General Settings
	SettingDailyGoalHours       = "daily_goal_hours"
	SettingWeeklyGoalHours      = "weekly_goal_hours"
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"

	// Default Settings Values
	DefaultDailyGoalHours       = 2.0
	DefaultWeeklyGoalHours      = 14.0
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
)
