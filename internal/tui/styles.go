package tui

import (
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Width(64).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)

	etherStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C4B5FD")).
			Italic(true)

	crisisStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#DC2626")).
			Foreground(lipgloss.Color("#FCA5A5")).
			Padding(0, 1).
			Width(62)

	bagStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#A8A29E")).
			Padding(0, 1).
			Width(62)

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#57534E")).
			Padding(0, 1)

	cursorSlotStyle = slotStyle.
			BorderForeground(lipgloss.Color("#FBBF24"))

	packedSlotStyle = slotStyle.
			Foreground(lipgloss.Color("#34D399"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	achievementStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#854D0E")).
				Background(lipgloss.Color("#FEF9C3")).
				Bold(true).
				Padding(0, 1)
)

var elementColors = map[models.Element]lipgloss.Color{
	models.ElementEarth: lipgloss.Color("#D97706"),
	models.ElementWater: lipgloss.Color("#3B82F6"),
	models.ElementFire:  lipgloss.Color("#EF4444"),
	models.ElementAir:   lipgloss.Color("#A5F3FC"),
	models.ElementEther: lipgloss.Color("#A855F7"),
}

func elementStyle(e models.Element) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(elementColors[e]).Bold(true)
}
