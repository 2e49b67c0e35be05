package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type timerKind int

const (
	timerHikeDone timerKind = iota
	timerPackageReveal
	timerPackageCommit
	timerCardReveal
	timerType
)

type timerID uint64

// timerFiredMsg arrives when a scheduled timer elapses. It is ignored unless
// its handle is still live.
type timerFiredMsg struct {
	id   timerID
	kind timerKind
}

// timers hands out cancelable one-shot timers for a view.
type timers struct {
	next timerID
	live map[timerID]timerKind
}

func newTimers() *timers {
	return &timers{live: make(map[timerID]timerKind)}
}

// after schedules kind to fire once d has passed.
func (t *timers) after(d time.Duration, kind timerKind) (timerID, tea.Cmd) {
	t.next++
	id := t.next
	t.live[id] = kind
	return id, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id, kind: kind}
	})
}

// fire consumes msg's handle. It reports false for canceled or unknown timers.
func (t *timers) fire(msg timerFiredMsg) bool {
	if _, ok := t.live[msg.id]; !ok {
		return false
	}
	delete(t.live, msg.id)
	return true
}

func (t *timers) cancel(id timerID) {
	delete(t.live, id)
}

// cancelAll drops every pending timer.
func (t *timers) cancelAll() {
	clear(t.live)
}

// pending reports whether a timer of kind is waiting to fire.
func (t *timers) pending(kind timerKind) bool {
	for _, k := range t.live {
		if k == kind {
			return true
		}
	}
	return false
}
