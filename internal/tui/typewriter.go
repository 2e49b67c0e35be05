package tui

// typewriter reveals a line one rune per tick.
type typewriter struct {
	full  []rune
	shown int
	timer timerID
}

func newTypewriter(text string) typewriter {
	return typewriter{full: []rune(text)}
}

func (t typewriter) text() string { return string(t.full[:t.shown]) }

func (t typewriter) done() bool { return t.shown >= len(t.full) }

func (t *typewriter) advance() {
	if !t.done() {
		t.shown++
	}
}

func (t *typewriter) finish() { t.shown = len(t.full) }
