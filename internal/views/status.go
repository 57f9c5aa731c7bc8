package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/rxtrack/internal/model"
	"github.com/sandeepkv93/rxtrack/internal/scorecard"
)

var (
	redStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	amberStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func LightStyle(l model.TrafficLight) lipgloss.Style {
	switch l {
	case model.TrafficRed:
		return redStyle
	case model.TrafficAmber:
		return amberStyle
	default:
		return greenStyle
	}
}

func LightBadge(l model.TrafficLight) string {
	return LightStyle(l).Render(l.Label())
}

func TaskBadge(s model.TaskStatus) string {
	switch s {
	case model.TaskOverdue:
		return redStyle.Render(s.Label())
	case model.TaskDue:
		return amberStyle.Render(s.Label())
	case model.TaskDone:
		return greenStyle.Render(s.Label())
	default:
		return mutedStyle.Render(s.Label())
	}
}

func SafeguardingBadge(s model.SafeguardingStatus) string {
	switch s {
	case model.SafeguardingOverdue:
		return redStyle.Render(s.Label())
	case model.SafeguardingDueSoon:
		return amberStyle.Render(s.Label())
	default:
		return greenStyle.Render(s.Label())
	}
}

func TrainingBadge(s model.TrainingStatus) string {
	switch s {
	case model.TrainingPending:
		return redStyle.Render(string(s))
	case model.TrainingInProgress:
		return amberStyle.Render(string(s))
	default:
		return greenStyle.Render(string(s))
	}
}

func BandStyle(b scorecard.Band) lipgloss.Style {
	switch b {
	case scorecard.BandGood:
		return greenStyle
	case scorecard.BandWarn:
		return amberStyle
	default:
		return redStyle
	}
}

// ScoreBadge renders a percentage in its band colour.
func ScoreBadge(score int) string {
	return BandStyle(scorecard.BandFor(score)).Render(fmt.Sprintf("%d%%", score))
}

func TemperatureBadge(celsius float64, inRange bool) string {
	text := fmt.Sprintf("%.1f°C", celsius)
	if inRange {
		return greenStyle.Render(text)
	}
	return redStyle.Render(text)
}
