package rankings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/stats"
	"github.com/julianstephens/studylit/internal/utils"
)

type Model struct {
	totals []stats.SubjectTotal
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetSnapshot(snap stats.Snapshot) {
	m.totals = snap.SubjectTotals()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	if len(m.totals) == 0 {
		return "\n  No study sessions yet.\n  Press 'l' to log one."
	}

	rows := len(m.totals)
	if m.height > 0 && rows > m.height {
		rows = m.height
	}

	var b strings.Builder
	for i, t := range m.totals[:rows] {
		fmt.Fprintf(&b, "%2d. %-20s %8s %5.1f%% %s\n",
			i+1, t.Subject, utils.FormatHours(t.Hours), t.Percentage, utils.ProgressBar(t.Percentage, 20))
	}
	if rows < len(m.totals) {
		fmt.Fprintf(&b, "    … %d more\n", len(m.totals)-rows)
	}
	return b.String()
}
