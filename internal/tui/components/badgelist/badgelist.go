package badgelist

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/studylit/internal/badges"
	"github.com/julianstephens/studylit/internal/models"
)

type Item struct {
	Badge models.Badge
	now   time.Time
}

func (i Item) Title() string {
	if i.Badge.UnlockedAt == nil {
		return "🔒 " + i.Badge.Title
	}
	return badges.Glyph(i.Badge.Icon) + " " + i.Badge.Title
}

func (i Item) Description() string {
	if i.Badge.UnlockedAt == nil {
		return i.Badge.Description
	}
	return i.Badge.Description + " · unlocked " + humanize.RelTime(*i.Badge.UnlockedAt, i.now, "ago", "from now")
}

func (i Item) FilterValue() string { return i.Badge.Title }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Badges"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return Model{list: l}
}

// SetBadges shows the catalog in order, unlocked or not.
func (m *Model) SetBadges(all []models.Badge, now time.Time) {
	items := make([]list.Item, len(all))
	for i, b := range all {
		items[i] = Item{Badge: b, now: now}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
