package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/hike"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const trailWidth = 60

func (m model) View() string {
	var parts []string
	if m.showHUD() {
		parts = append(parts, m.hudView())
	}

	switch {
	case m.state.Crisis != nil:
		parts = append(parts, m.crisisView())
	default:
		parts = append(parts, m.phaseView())
		if m.bagOpen {
			parts = append(parts, m.bagView())
		}
	}

	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, "", m.help.View(m.helpKeys()))
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m model) showHUD() bool {
	switch m.state.Phase {
	case models.PhaseStartMenu, models.PhaseEndingWin:
		return false
	case models.PhaseHikingGame:
		return m.state.Crisis != nil
	}
	return true
}

func (m model) phaseView() string {
	switch m.state.Phase {
	case models.PhaseStartMenu:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("L O O P I N G   T R A I L S"),
			"",
			helpStyle.Render("A hike you may have to take more than once."),
		)
	case models.PhaseIntro:
		return m.choiceView("1  Go with friends", "2  Go alone")
	case models.PhaseCh1Choice:
		return m.choiceView("1  Wait for clear skies", "2  Rush out now")
	case models.PhaseGearSelection:
		return m.gearView()
	case models.PhaseHikingGame:
		return m.hikeView()
	case models.PhaseCh1Resolution, models.PhaseCh2Resolution:
		return m.reportView()
	case models.PhaseEtherLoop:
		return m.etherView()
	case models.PhaseEtherPackage:
		return m.packageView()
	case models.PhaseCh3Reflection:
		return m.reflectionView()
	case models.PhaseEndingWin:
		return m.winView()
	}
	return m.narrative()
}

func (m model) narrative() string {
	return narrativeStyle.Render(m.typer.text())
}

func (m model) choiceView(options ...string) string {
	lines := []string{m.narrative(), ""}
	if m.typer.done() {
		for _, o := range options {
			lines = append(lines, "  "+o)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m model) hudView() string {
	energy, mood := m.state.Stats.Clamped()
	buff := "none"
	if pkg, ok := models.LookupPackage(m.state.Stats.SaverBuff); ok {
		buff = elementStyle(pkg.Element).Render(pkg.Icon + " " + pkg.Item)
	}
	line := fmt.Sprintf("Loop %d   Energy %s %3.0f%%   Mood %s %3.0f%%   Buff %s",
		m.state.LoopCount,
		m.energy.ViewAs(energy/100), energy,
		m.mood.ViewAs(mood/100), mood,
		buff,
	)
	return hudStyle.Render(line)
}

func (m model) gearView() string {
	game := m.engine.Game()
	items := models.RoomItems()

	var rows []string
	var row []string
	for i, it := range items {
		style := slotStyle
		if game.Selected(it.ID) {
			style = packedSlotStyle
		}
		if i == m.cursor {
			style = style.BorderForeground(cursorSlotStyle.GetBorderTopForeground())
		}
		mark := "[ ]"
		if game.Selected(it.ID) {
			mark = "[x]"
		}
		row = append(row, style.Width(20).Render(fmt.Sprintf("%s %s %s", mark, it.Icon, it.Name)))
		if len(row) == 3 || i == len(items)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	cur := items[m.cursor%len(items)]
	return lipgloss.JoinVertical(lipgloss.Left,
		m.narrative(),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		helpStyle.Render(cur.Description),
		fmt.Sprintf("Packed %d/%d", len(game.Selection), m.state.MaxGearItems()),
	)
}

func (m model) hikeView() string {
	if m.run == nil {
		return m.narrative()
	}
	snap := m.run.Snapshot()
	cfg := m.run.Config()
	energy, mood := snap.Stats.Clamped()

	sky := []rune(strings.Repeat(" ", trailWidth))
	ground := []rune(strings.Repeat(" ", trailWidth))
	for _, o := range snap.Obstacles {
		col, ok := column(o.X)
		if !ok {
			continue
		}
		if o.Kind == hike.Star {
			sky[col] = glyph(o)
		} else {
			ground[col] = glyph(o)
		}
	}
	if col, ok := column(cfg.PlayerX); ok {
		if snap.Jumping {
			sky[col] = '@'
		} else {
			ground[col] = '@'
		}
	}
	if col, ok := column(cfg.PlayerX - 6); ok && m.state.IsWithFriends {
		ground[col] = '&'
	}

	face := "(^_^)"
	if mood < 30 {
		face = "(-_-)"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  Energy %s %3.0f%%   Mood %s %3.0f%%", face, m.energy.ViewAs(energy/100), energy, m.mood.ViewAs(mood/100), mood),
		"Trail  "+m.trail.ViewAs(snap.Progress),
		"",
		statusStyle.Render(snap.Message),
		string(sky),
		string(ground),
		strings.Repeat("‾", trailWidth),
	)
}

// column maps a trail position onto the drawn strip.
func column(x float64) (int, bool) {
	col := int(math.Round(x / 100 * float64(trailWidth-1)))
	return col, col >= 0 && col < trailWidth
}

func glyph(o hike.Obstacle) rune {
	switch o.Kind {
	case hike.Rock:
		return 'o'
	case hike.Mushroom:
		if o.Hit {
			return 't'
		}
		return 'T'
	case hike.Star:
		return '*'
	case hike.Bear:
		return 'B'
	}
	return '?'
}

func (m model) crisisView() string {
	c := m.state.Crisis
	banner := crisisStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		elementStyle(c.Element).Render("CRISIS: "+string(c.Element)),
		m.typer.text(),
	))
	if !m.bagOpen {
		return lipgloss.JoinVertical(lipgloss.Left, banner, "", helpStyle.Render("Open your bag to look for help, or give up."))
	}

	choices := rescueChoices(m.state)
	lines := []string{titleStyle.Render("BACKPACK")}
	if len(m.state.Inventory) == 0 {
		lines = append(lines, "(empty)")
	}
	for _, id := range m.state.Inventory {
		if it, ok := models.LookupItem(id); ok {
			lines = append(lines, "  "+it.Icon+" "+it.Name)
		}
	}
	lines = append(lines, "")
	if len(choices) == 0 {
		lines = append(lines, helpStyle.Render("Nothing here can help with this."))
	}
	for i, ch := range choices {
		prefix := "  "
		if i == m.cursor%len(choices) {
			prefix = "> "
		}
		lines = append(lines, prefix+"use "+ch.label)
	}
	return lipgloss.JoinVertical(lipgloss.Left, banner, bagStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// bagView lists what is packed and the gift being carried.
func (m model) bagView() string {
	lines := []string{titleStyle.Render("BACKPACK")}
	if len(m.state.Inventory) == 0 {
		lines = append(lines, "(empty)")
	}
	for _, id := range m.state.Inventory {
		if it, ok := models.LookupItem(id); ok {
			lines = append(lines, "  "+it.Icon+" "+it.Name+"  "+helpStyle.Render(it.Description))
		}
	}
	if pkg, ok := models.LookupPackage(m.state.Stats.SaverBuff); ok {
		lines = append(lines, "", elementStyle(pkg.Element).Render(pkg.Icon+" "+pkg.Item), helpStyle.Render(pkg.Effect))
	}
	return bagStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func setbackHeading(e models.Element) string {
	switch e {
	case models.ElementAir:
		return "LOST / PANIC"
	case models.ElementFire:
		return "POISON / EXHAUSTED"
	case models.ElementWater:
		return "FROZEN"
	}
	return "INJURY: SPRAIN"
}

func (m model) reportView() string {
	energy, mood := m.state.Stats.Clamped()
	heading := m.state.Setback
	if heading == models.ElementNone {
		heading = models.ElementEarth
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		elementStyle(heading).Render(setbackHeading(m.state.Setback))+"   "+crisisStyle.UnsetWidth().Render("BAD HIKE"),
		"",
		m.narrative(),
		"",
		fmt.Sprintf("ENERGY: %d%%   MOOD: %d%%", int(math.Floor(energy)), int(math.Floor(mood))),
	)
}

func (m model) etherView() string {
	lesson := helpStyle.Render("Ether is listening...")
	if m.lesson != "" {
		lesson = etherStyle.Render("\"" + m.lesson + "\"")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		elementStyle(models.ElementEther).Render("ETHER'S LESSON"),
		"",
		m.narrative(),
		"",
		lesson,
	)
}

func (m model) packageView() string {
	pkgs := models.Packages()
	var slots []string
	for i, p := range pkgs {
		style := slotStyle
		if i == m.cursor {
			style = cursorSlotStyle
		}
		if m.pendingPackage == p.Element {
			style = style.BorderForeground(elementColors[p.Element])
		}
		slots = append(slots, style.Width(16).Render(lipgloss.JoinVertical(lipgloss.Left,
			elementStyle(p.Element).Render(p.Icon+" "+p.Name),
			helpStyle.Render(p.Description),
		)))
	}

	lines := []string{m.narrative(), "", lipgloss.JoinHorizontal(lipgloss.Top, slots...)}
	if p, ok := models.LookupPackage(m.pendingPackage); ok {
		if m.revealed {
			lines = append(lines, "", elementStyle(p.Element).Render("You receive the "+p.Item+"."), p.Effect+".")
		} else {
			lines = append(lines, "", etherStyle.Render("Ether weighs your choice..."))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m model) reflectionView() string {
	var chips []string
	for _, h := range models.ReflectionHints() {
		chips = append(chips, slotStyle.Render(h))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		etherStyle.Render(m.typer.text()),
		"",
		m.input.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, chips...),
	)
}

func (m model) winView() string {
	var unlocked []string
	for _, a := range m.state.Achievements {
		if a.Unlocked {
			unlocked = append(unlocked, achievementStyle.Render("🏆 "+a.Name))
		}
	}
	lines := []string{
		titleStyle.Render("SUMMIT REACHED"),
		"",
		m.narrative(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, unlocked...),
	}
	if m.cardShown {
		lines = append(lines, "", m.cardText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMarkdown styles md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m model) helpKeys() helpKeys {
	base := []key.Binding{keys.Bag, keys.Restart, keys.Quit}
	if m.state.Crisis != nil {
		if m.bagOpen {
			return helpKeys{keys.Left, keys.Right, keys.Use, withHelp(keys.Bag, "close bag"), keys.GiveUp, keys.Restart, keys.Quit}
		}
		return helpKeys{keys.Bag, keys.GiveUp, keys.Restart, keys.Quit}
	}
	switch m.state.Phase {
	case models.PhaseStartMenu:
		return helpKeys{withHelp(keys.Confirm, "start"), keys.Quit}
	case models.PhaseIntro, models.PhaseCh1Choice:
		return append(helpKeys{keys.First, keys.Second}, base...)
	case models.PhaseGearSelection:
		return append(helpKeys{keys.Left, keys.Right, keys.Toggle, withHelp(keys.Confirm, "hit the trail")}, base...)
	case models.PhaseHikingGame:
		return helpKeys{keys.Jump, keys.Restart, keys.Quit}
	case models.PhaseCh1Resolution, models.PhaseCh2Resolution:
		return append(helpKeys{withHelp(keys.Confirm, "learn & restart")}, base...)
	case models.PhaseEtherLoop:
		return append(helpKeys{withHelp(keys.Confirm, "accept gift")}, base...)
	case models.PhaseEtherPackage:
		return append(helpKeys{keys.Left, keys.Right, withHelp(keys.Confirm, "choose")}, base...)
	case models.PhaseCh3Reflection:
		return helpKeys{keys.Hint, withHelp(keys.Confirm, "answer")}
	case models.PhaseEndingWin:
		return append(helpKeys{withHelp(keys.Confirm, "toggle card"), keys.Save}, base...)
	}
	return base
}
