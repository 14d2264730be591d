package settings

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DailyGoal            *string `help:"Hours per day that count toward the streak (e.g. 2 or 1h30m)."`
	WeeklyGoal           *string `help:"Target hours for a Monday-Sunday week."`
	Timezone             *string `help:"IANA timezone used to decide what 'today' is, or Local."`
	NotificationsEnabled *bool   `name:"notifications" help:"Enable or disable badge notifications."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Daily Goal:            %s\n", utils.FormatHours(settings.DailyGoalHours))
		fmt.Printf("  Weekly Goal:           %s\n", utils.FormatHours(settings.WeeklyGoalHours))
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.DailyGoal != nil {
		hours, err := utils.ParseHours(*c.DailyGoal)
		if err != nil {
			return fmt.Errorf("invalid daily goal: %w", err)
		}
		settings.DailyGoalHours = hours
		updated = true
	}
	if c.WeeklyGoal != nil {
		hours, err := utils.ParseHours(*c.WeeklyGoal)
		if err != nil {
			return fmt.Errorf("invalid weekly goal: %w", err)
		}
		settings.WeeklyGoalHours = hours
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
