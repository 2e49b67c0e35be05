// Package tui is the terminal renderer for the game. It shows the current
// snapshot, turns key presses into engine intents and drives the hike
// minigame one frame at a time.
package tui

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/card"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/engine"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/hike"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/mentor"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/rules"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	hikeDoneDelay      = time.Second
	packageRevealDelay = 500 * time.Millisecond
	packageCommitDelay = 2 * time.Second
	cardRevealDelay    = 2 * time.Second
)

// Options configures the renderer. Zero values fall back to defaults.
type Options struct {
	Engine        *engine.Engine
	Mentor        mentor.Mentor
	Logger        *log.Logger
	RunID         string
	Hike          hike.Config
	Rand          *rand.Rand
	FPS           int
	TypeDelay     time.Duration
	CardDir       string
	LessonTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Engine == nil {
		o.Engine = engine.NewEngine(o.Logger)
	}
	if o.Mentor == nil {
		o.Mentor = mentor.Scripted{}
	}
	if o.Hike.TrailLength == 0 {
		o.Hike = hike.DefaultConfig()
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.CardDir == "" {
		o.CardDir = "."
	}
	if o.LessonTimeout <= 0 {
		o.LessonTimeout = 10 * time.Second
	}
	return o
}

type model struct {
	opts   Options
	engine *engine.Engine
	state  models.GameState
	timers *timers

	typer   typewriter
	cursor  int
	bagOpen bool

	run     *hike.Run
	hikeGen int

	pendingPackage models.Element
	revealed       bool

	cardShown bool
	cardText  string

	lesson string
	status string

	input  textinput.Model
	energy progress.Model
	mood   progress.Model
	trail  progress.Model
	help   help.Model
	width  int
	height int
}

type frameMsg struct {
	gen int
}

type lessonMsg struct {
	loop int
	text string
	err  error
}

type cardSavedMsg struct {
	path string
	err  error
}

func NewModel(opts Options) model {
	opts = opts.withDefaults()

	ti := textinput.New()
	ti.Placeholder = "What one thing do you wish you had?"
	ti.CharLimit = 80
	ti.Width = 50

	bar := func(color string) progress.Model {
		return progress.New(progress.WithSolidFill(color), progress.WithWidth(20), progress.WithoutPercentage())
	}

	return model{
		opts:   opts,
		engine: opts.Engine,
		state:  opts.Engine.State(),
		timers: newTimers(),
		input:  ti,
		energy: bar("#FBBF24"),
		mood:   bar("#60A5FA"),
		trail:  bar("#34D399"),
		help:   help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle("Looping Trails")
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		return m.onFrame(msg)

	case timerFiredMsg:
		if !m.timers.fire(msg) {
			return m, nil
		}
		return m.onTimer(msg)

	case lessonMsg:
		if msg.loop != m.state.LoopCount || m.state.Phase != models.PhaseEtherLoop {
			m.opts.Logger.Printf("dropping stale lesson for loop %d", msg.loop)
			return m, nil
		}
		if msg.err != nil {
			m.opts.Logger.Printf("lesson failed: %v", msg.err)
			return m, nil
		}
		m.lesson = msg.text
		return m, nil

	case cardSavedMsg:
		if msg.err != nil {
			m.opts.Logger.Printf("saving card: %v", msg.err)
			m.status = "Could not save the card: " + msg.err.Error()
			return m, nil
		}
		m.status = "Card saved to " + msg.path
		return m, nil

	case tea.KeyMsg:
		if m.reflecting() && !key.Matches(msg, keys.Confirm, keys.Hint) && msg.Type != tea.KeyCtrlC {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m.onKey(msg)
	}

	if m.reflecting() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) reflecting() bool {
	return m.state.Phase == models.PhaseCh3Reflection && m.state.Crisis == nil
}

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC || (!m.reflecting() && key.Matches(msg, keys.Quit)) {
		return m, tea.Quit
	}
	if !m.typer.done() && key.Matches(msg, keys.Confirm) {
		m.timers.cancel(m.typer.timer)
		m.typer.finish()
		return m, nil
	}
	if !m.reflecting() && key.Matches(msg, keys.Restart) {
		return m.dispatch(engine.Restart{})
	}
	if m.state.Crisis != nil {
		return m.crisisKey(msg)
	}
	if key.Matches(msg, keys.Bag) && m.state.Phase != models.PhaseHikingGame && m.state.Phase != models.PhaseStartMenu {
		m.bagOpen = !m.bagOpen
		return m, nil
	}

	switch m.state.Phase {
	case models.PhaseStartMenu:
		if key.Matches(msg, keys.Confirm) {
			return m.dispatch(engine.StartIntro{})
		}

	case models.PhaseIntro:
		switch {
		case key.Matches(msg, keys.First):
			return m.dispatch(engine.ChooseCompanionship{WithFriends: true})
		case key.Matches(msg, keys.Second):
			return m.dispatch(engine.ChooseCompanionship{WithFriends: false})
		}

	case models.PhaseCh1Choice:
		switch {
		case key.Matches(msg, keys.First):
			return m.dispatch(engine.ChooseWeather{Wait: true})
		case key.Matches(msg, keys.Second):
			return m.dispatch(engine.ChooseWeather{Wait: false})
		}

	case models.PhaseGearSelection:
		return m.gearKey(msg)

	case models.PhaseHikingGame:
		if m.run != nil && key.Matches(msg, keys.Jump) {
			m.run.Jump()
		}

	case models.PhaseCh1Resolution, models.PhaseCh2Resolution:
		if key.Matches(msg, keys.Confirm) {
			return m.dispatch(engine.LoopViaEther{})
		}

	case models.PhaseEtherLoop:
		if key.Matches(msg, keys.Confirm) {
			return m.dispatch(engine.AcceptEtherGift{})
		}

	case models.PhaseEtherPackage:
		return m.packageKey(msg)

	case models.PhaseCh3Reflection:
		switch {
		case key.Matches(msg, keys.Hint):
			hints := models.ReflectionHints()
			m.input.SetValue(hints[m.cursor%len(hints)])
			m.input.CursorEnd()
			m.cursor++
		case key.Matches(msg, keys.Confirm):
			if m.input.Value() == "" {
				return m, nil
			}
			return m.dispatch(engine.SubmitReflection{Text: m.input.Value()})
		}

	case models.PhaseEndingWin:
		switch {
		case key.Matches(msg, keys.Confirm):
			if m.cardShown {
				m.cardShown = false
				return m, nil
			}
			m.revealCard()
		case key.Matches(msg, keys.Save) && m.cardShown:
			m.status = "Saving card..."
			return m, m.saveCard()
		}
	}
	return m, nil
}

func (m model) gearKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := models.RoomItems()
	switch {
	case key.Matches(msg, keys.Left):
		m.cursor = (m.cursor + len(items) - 1) % len(items)
	case key.Matches(msg, keys.Right):
		m.cursor = (m.cursor + 1) % len(items)
	case key.Matches(msg, keys.Toggle):
		item := items[m.cursor]
		before := len(m.engine.Game().Selection)
		next, cmd := m.dispatch(engine.ToggleGearItem{Item: item.ID})
		nm := next.(model)
		nm.status = ""
		if len(nm.engine.Game().Selection) == before {
			nm.status = "Your bag is full."
		}
		return nm, cmd
	case key.Matches(msg, keys.Confirm):
		if len(m.engine.Game().Selection) == 0 {
			m.status = "Pack at least one item."
			return m, nil
		}
		return m.dispatch(engine.ConfirmGear{})
	}
	return m, nil
}

func (m model) packageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingPackage != models.ElementNone {
		return m, nil
	}
	pkgs := models.Packages()
	switch {
	case key.Matches(msg, keys.Left):
		m.cursor = (m.cursor + len(pkgs) - 1) % len(pkgs)
	case key.Matches(msg, keys.Right):
		m.cursor = (m.cursor + 1) % len(pkgs)
	case key.Matches(msg, keys.Confirm):
		m.pendingPackage = pkgs[m.cursor].Element
		_, cmd := m.timers.after(packageRevealDelay, timerPackageReveal)
		return m, cmd
	}
	return m, nil
}

// rescueChoice is one way out of the current crisis.
type rescueChoice struct {
	label  string
	intent engine.ManualRescue
}

func rescueChoices(st models.GameState) []rescueChoice {
	if st.Crisis == nil {
		return nil
	}
	opts := rules.Options(st.Crisis.Element, st.Inventory, st.Stats.SaverBuff)
	var out []rescueChoice
	for _, id := range opts.Items {
		if it, ok := models.LookupItem(id); ok {
			out = append(out, rescueChoice{label: it.Icon + " " + it.Name, intent: engine.RescueWith(id)})
		}
	}
	if opts.Buff {
		if pkg, ok := models.LookupPackage(st.Crisis.Element); ok {
			out = append(out, rescueChoice{label: pkg.Icon + " " + pkg.Item, intent: engine.RescueWithBuff()})
		}
	}
	return out
}

func (m model) crisisKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.GiveUp):
		return m.dispatch(engine.GiveUp{})
	case key.Matches(msg, keys.Bag, keys.Confirm):
		if !m.bagOpen {
			m.bagOpen = true
			m.cursor = 0
			return m, nil
		}
		if key.Matches(msg, keys.Bag) {
			m.bagOpen = false
		}
	}
	if !m.bagOpen {
		return m, nil
	}

	choices := rescueChoices(m.state)
	if len(choices) == 0 {
		if key.Matches(msg, keys.Use) {
			m.status = "Nothing in your bag can help."
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Left):
		m.cursor = (m.cursor + len(choices) - 1) % len(choices)
	case key.Matches(msg, keys.Right):
		m.cursor = (m.cursor + 1) % len(choices)
	case key.Matches(msg, keys.Use, keys.Confirm):
		return m.dispatch(choices[m.cursor%len(choices)].intent)
	}
	return m, nil
}

// dispatch sends in to the engine and resets the screen when it changed.
func (m model) dispatch(in engine.Intent) (tea.Model, tea.Cmd) {
	prev := m.state
	m.state = m.engine.Dispatch(in)
	if screenChanged(prev, m.state) {
		return m.enterScreen()
	}
	if prev.NarrativeText != m.state.NarrativeText {
		return m, m.startTyping()
	}
	return m, nil
}

func screenChanged(prev, cur models.GameState) bool {
	return prev.Phase != cur.Phase ||
		prev.LoopCount != cur.LoopCount ||
		(prev.Crisis == nil) != (cur.Crisis == nil)
}

// enterScreen cancels everything the old screen scheduled and starts the
// new one.
func (m model) enterScreen() (tea.Model, tea.Cmd) {
	m.timers.cancelAll()
	m.hikeGen++
	m.run = nil
	m.cursor = 0
	m.bagOpen = false
	m.pendingPackage = models.ElementNone
	m.revealed = false
	m.cardShown = false
	m.cardText = ""
	m.status = ""
	m.input.Blur()

	cmds := []tea.Cmd{m.startTyping()}
	if m.state.Crisis != nil {
		return m, tea.Batch(cmds...)
	}

	switch m.state.Phase {
	case models.PhaseHikingGame:
		m.run = hike.New(m.opts.Hike, m.opts.Rand)
		cmds = append(cmds, m.nextFrame())
	case models.PhaseEtherLoop:
		m.lesson = ""
		cmds = append(cmds, m.fetchLesson())
	case models.PhaseCh3Reflection:
		m.input.Reset()
		cmds = append(cmds, m.input.Focus(), textinput.Blink)
	case models.PhaseEndingWin:
		_, cmd := m.timers.after(cardRevealDelay, timerCardReveal)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m model) onTimer(msg timerFiredMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case timerType:
		m.typer.advance()
		return m, m.typeNext()

	case timerHikeDone:
		if m.run == nil {
			return m, nil
		}
		res := m.run.Result()
		return m.dispatch(engine.CompleteHike{Stats: res.Stats, FailReason: res.FailReason})

	case timerPackageReveal:
		m.revealed = true
		_, cmd := m.timers.after(packageCommitDelay, timerPackageCommit)
		return m, cmd

	case timerPackageCommit:
		return m.dispatch(engine.SelectPackage{Element: m.pendingPackage})

	case timerCardReveal:
		m.revealCard()
	}
	return m, nil
}

func (m model) nextFrame() tea.Cmd {
	gen := m.hikeGen
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(time.Time) tea.Msg {
		return frameMsg{gen: gen}
	})
}

func (m model) onFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.hikeGen || m.run == nil || m.run.Done() {
		return m, nil
	}
	res := m.run.Tick()
	if res.Status == hike.Running {
		return m, m.nextFrame()
	}
	m.opts.Logger.Printf("hike %s after %d ticks (reason %q)", res.Status, m.run.Snapshot().Ticks, res.FailReason)
	_, cmd := m.timers.after(hikeDoneDelay, timerHikeDone)
	return m, cmd
}

func (m *model) startTyping() tea.Cmd {
	m.timers.cancel(m.typer.timer)
	m.typer = newTypewriter(m.screenText())
	if m.opts.TypeDelay <= 0 {
		m.typer.finish()
		return nil
	}
	return m.typeNext()
}

func (m *model) typeNext() tea.Cmd {
	if m.typer.done() {
		return nil
	}
	id, cmd := m.timers.after(m.opts.TypeDelay, timerType)
	m.typer.timer = id
	return cmd
}

func (m model) screenText() string {
	if m.state.Crisis != nil {
		return m.state.Crisis.Message
	}
	return m.state.NarrativeText
}

func (m *model) revealCard() {
	for id, k := range m.timers.live {
		if k == timerCardReveal {
			m.timers.cancel(id)
		}
	}
	m.cardShown = true
	if m.cardText == "" {
		m.cardText = renderMarkdown(card.New(m.opts.RunID, m.state).Markdown(), 60)
	}
}

func (m model) fetchLesson() tea.Cmd {
	guide := m.opts.Mentor
	situation := mentor.SituationFor(m.state)
	loop := m.state.LoopCount
	timeout := m.opts.LessonTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := guide.Lesson(ctx, situation)
		return lessonMsg{loop: loop, text: text, err: err}
	}
}

func (m model) saveCard() tea.Cmd {
	c := card.New(m.opts.RunID, m.state)
	dir := m.opts.CardDir
	return func() tea.Msg {
		path, err := c.Save(dir)
		return cardSavedMsg{path: path, err: err}
	}
}

// Run starts the game in the alternate screen and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start runs an offline game with default settings.
func Start() error {
	return Run(Options{})
}
