package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studylit/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingDailyGoalHours:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing daily_goal_hours: %w", err)
			}
			settings.DailyGoalHours = v
		case constants.SettingWeeklyGoalHours:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing weekly_goal_hours: %w", err)
			}
			settings.WeeklyGoalHours = v
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDailyGoalHours:       strconv.FormatFloat(settings.DailyGoalHours, 'f', -1, 64),
		constants.SettingWeeklyGoalHours:      strconv.FormatFloat(settings.WeeklyGoalHours, 'f', -1, 64),
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
	}
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		DailyGoalHours:       constants.DefaultDailyGoalHours,
		WeeklyGoalHours:      constants.DefaultWeeklyGoalHours,
		Timezone:             constants.DefaultTimezone,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DailyGoalHours <= 0 {
		settings.DailyGoalHours = constants.DefaultDailyGoalHours
	}
	if settings.WeeklyGoalHours <= 0 {
		settings.WeeklyGoalHours = constants.DefaultWeeklyGoalHours
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
