package optimize

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/optimizer"
	"github.com/julianstephens/studylit/internal/utils"
)

type OptimizeCmd struct {
	DryRun      bool `help:"Show suggestions without applying them (report mode)." default:"false"`
	Interactive bool `help:"Interactively review and apply suggestions." default:"false"`
	AutoApply   bool `help:"Automatically apply all suggestions without confirmation." default:"false"`
}

func (c *OptimizeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snap, err := ctx.Snapshot()
	if err != nil {
		return err
	}

	fmt.Printf("Analyzing the last %d days of study history...\n", optimizer.WindowDays)
	suggestions := optimizer.NewGoalAnalyzer(snap).Analyze()

	if len(suggestions) == 0 {
		fmt.Println("✅ No suggestions. Your goals fit your recent study pattern!")
		return nil
	}

	fmt.Printf("\n📊 Found %d suggestion(s):\n\n", len(suggestions))
	for i, s := range suggestions {
		displaySuggestion(i+1, s)
	}

	if c.DryRun {
		fmt.Println("💡 This was a dry run. Use --interactive to apply suggestions.")
		return nil
	}

	if c.AutoApply {
		fmt.Println("🚀 Applying all suggestions...")
		applied, actionable := 0, 0
		for _, s := range suggestions {
			if !s.Actionable() {
				continue
			}
			actionable++
			if err := optimizer.Apply(ctx.Store, s); err != nil {
				fmt.Printf("  ❌ Failed to apply %s: %v\n", s.Label, err)
				continue
			}
			applied++
			fmt.Printf("  ✅ Applied: %s\n", s.Label)
		}
		fmt.Printf("\n✨ Successfully applied %d/%d suggestions.\n", applied, actionable)
		return nil
	}

	if c.Interactive {
		return runInteractive(ctx, suggestions)
	}

	fmt.Println("💡 To apply these suggestions:")
	fmt.Println("  - Use --interactive to review and select which to apply")
	fmt.Println("  - Use --auto-apply to apply all automatically")
	return nil
}

func runInteractive(ctx *cli.Context, suggestions []optimizer.Suggestion) error {
	fmt.Println("🎯 Interactive mode")
	fmt.Println("Review each suggestion and choose whether to apply it.")

	applied, skipped := 0, 0
	for i, s := range suggestions {
		if !s.Actionable() {
			continue
		}
		fmt.Printf("\n[%d/%d] ", i+1, len(suggestions))
		displaySuggestion(0, s)

		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Apply this suggestion?").
					Options(
						huh.NewOption("Apply", "apply"),
						huh.NewOption("Skip", "skip"),
						huh.NewOption("Skip remaining", "skip_all"),
					).
					Value(&choice),
			),
		).WithTheme(huh.ThemeBase())

		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}

		switch choice {
		case "apply":
			if err := optimizer.Apply(ctx.Store, s); err != nil {
				fmt.Printf("  ❌ Failed to apply: %v\n", err)
			} else {
				fmt.Println("  ✅ Applied successfully")
				applied++
			}
		case "skip":
			fmt.Println("  ⏭️  Skipped")
			skipped++
		case "skip_all":
			fmt.Println("  ⏭️  Skipping all remaining suggestions")
			skipped += len(suggestions) - i
			fmt.Printf("\n✨ Completed: %d applied, %d skipped\n", applied, skipped)
			return nil
		}
	}

	fmt.Printf("\n✨ Completed: %d applied, %d skipped\n", applied, skipped)
	return nil
}

func displaySuggestion(num int, s optimizer.Suggestion) {
	prefix := ""
	if num > 0 {
		prefix = fmt.Sprintf("%d. ", num)
	}

	fmt.Printf("%s%s\n", prefix, typeLabel(s.Type))
	fmt.Printf("   %s\n", s.Label)
	fmt.Printf("   Reason: %s\n", s.Reason)
	if s.Current > 0 {
		fmt.Printf("   Current: %s\n", utils.FormatHours(s.Current))
	}
	if s.Suggested > 0 {
		fmt.Printf("   Suggested: %s\n", utils.FormatHours(s.Suggested))
	}
	fmt.Println()
}

func typeLabel(t optimizer.SuggestionType) string {
	switch t {
	case optimizer.SuggestionRaiseDailyGoal:
		return "📈 Raise Daily Goal"
	case optimizer.SuggestionLowerDailyGoal:
		return "📉 Lower Daily Goal"
	case optimizer.SuggestionRaiseWeeklyGoal:
		return "📈 Raise Weekly Goal"
	case optimizer.SuggestionLowerWeeklyGoal:
		return "📉 Lower Weekly Goal"
	case optimizer.SuggestionFocusSubject:
		return "🎯 Focus Subject"
	case optimizer.SuggestionRemoveHabit:
		return "🗑️  Remove Habit"
	default:
		return "🔧 Suggestion"
	}
}
