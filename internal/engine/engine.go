// Package engine is the game controller. Dispatch folds player intents into
// new game snapshots; it never mutates the snapshot it was given.
package engine

import (
	"io"
	"log"
	"strings"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/rules"
)

// Crisis stats pin the hiker in the danger zone; rescue stats are where a
// successful bag check leaves them.
const (
	crisisEnergy  = 10
	crisisMood    = 10
	rescueEnergy  = 50
	rescueMood    = 60
	persistentMin = 2
)

// Game is the reducer value: the snapshot plus the gear picked so far.
type Game struct {
	State     models.GameState
	Selection []models.ItemID
}

// NewGame returns the state the game boots into.
func NewGame() Game {
	return Game{State: models.NewGameState()}
}

// Selected reports whether id is in the pending gear selection.
func (g Game) Selected(id models.ItemID) bool {
	return models.Contains(g.Selection, id)
}

// clone copies every slice a reducer step may change.
func (g Game) clone() Game {
	g.Selection = append([]models.ItemID(nil), g.Selection...)
	g.State.Inventory = append([]models.ItemID(nil), g.State.Inventory...)
	g.State.Achievements = append([]models.Achievement(nil), g.State.Achievements...)
	return g
}

// Dispatch applies in to g. Intents that make no sense in the current phase
// leave the game unchanged. While a crisis is pending only a rescue, giving
// up or a restart get through.
func Dispatch(g Game, in Intent) Game {
	if g.State.Crisis != nil {
		switch in := in.(type) {
		case ManualRescue:
			return manualRescue(g.clone(), in)
		case GiveUp:
			return giveUp(g.clone())
		case UnlockAchievement:
			return unlock(g.clone(), in.ID)
		case Restart:
			return NewGame()
		}
		return g
	}

	next := g.clone()
	s := &next.State
	switch in := in.(type) {
	case StartIntro:
		if s.Phase != models.PhaseStartMenu {
			return g
		}
		s.Phase = models.PhaseIntro
		s.NarrativeText = story.Intro

	case ChooseCompanionship:
		if s.Phase != models.PhaseIntro {
			return g
		}
		s.Phase = models.PhaseCh1Choice
		s.IsWithFriends = in.WithFriends
		s.NarrativeText = story.Solo
		if in.WithFriends {
			s.NarrativeText = story.WithFriends
		}

	case ChooseWeather:
		if s.Phase != models.PhaseCh1Choice {
			return g
		}
		if !in.Wait {
			return triggerCrisis(next, models.ElementWater, story.RushOut)
		}
		s.Phase = models.PhaseGearSelection
		s.NarrativeText = story.WaitForWeather

	case ToggleGearItem:
		if s.Phase != models.PhaseGearSelection {
			return g
		}
		return toggleGear(next, in.Item)

	case ConfirmGear:
		if s.Phase != models.PhaseGearSelection || len(next.Selection) == 0 {
			return g
		}
		s.Inventory = append([]models.ItemID(nil), next.Selection...)
		s.Stats.Outfit = models.OutfitHiking
		s.Phase = models.PhaseHikingGame

	case CompleteHike:
		if s.Phase != models.PhaseHikingGame {
			return g
		}
		return completeHike(next, in)

	case TriggerCrisis:
		if !in.Element.Injurious() {
			return g
		}
		return triggerCrisis(next, in.Element, in.Message)

	case ManualRescue, GiveUp:
		return g

	case LoopViaEther:
		if !s.Phase.Resolution() {
			return g
		}
		return loopViaEther(next)

	case AcceptEtherGift:
		if s.Phase != models.PhaseEtherLoop {
			return g
		}
		s.Phase = models.PhaseEtherPackage
		s.NarrativeText = story.EtherGift

	case SelectPackage:
		if s.Phase != models.PhaseEtherPackage || !in.Element.Injurious() {
			return g
		}
		s.Stats.SaverBuff = in.Element
		next.Selection = nil
		s.Phase = models.PhaseGearSelection
		s.NarrativeText = story.WakeUp

	case SubmitReflection:
		if s.Phase != models.PhaseCh3Reflection {
			return g
		}
		if MatchesLesson(in.Text) {
			s.Phase = models.PhaseEndingWin
			s.NarrativeText = story.ReflectionWin
			return next
		}
		// A wrong answer costs the saver buff too.
		s.Phase = models.PhaseEtherLoop
		s.LoopCount++
		s.Stats = models.InitialStats
		s.NarrativeText = story.ReflectionRebuff

	case UnlockAchievement:
		return unlock(next, in.ID)

	case Restart:
		return NewGame()

	default:
		return g
	}
	return next
}

func toggleGear(g Game, id models.ItemID) Game {
	item, ok := models.LookupItem(id)
	if !ok || item.Virtual() {
		return g
	}
	for i, picked := range g.Selection {
		if picked == id {
			g.Selection = append(g.Selection[:i], g.Selection[i+1:]...)
			return g
		}
	}
	if len(g.Selection) < g.State.MaxGearItems() {
		g.Selection = append(g.Selection, id)
	}
	return g
}

func completeHike(g Game, in CompleteHike) Game {
	s := &g.State
	buff := s.Stats.SaverBuff
	s.Stats = in.Stats
	s.Stats.SaverBuff = buff

	if in.FailReason != models.ElementNone || s.Stats.Depleted() {
		injury := in.FailReason
		if !injury.Injurious() {
			injury = models.ElementAir
			if s.Stats.Energy <= 0 {
				injury = models.ElementFire
			}
		}
		return triggerCrisis(g, injury, story.hikeFailLine(injury))
	}
	return resolveAdventure(g, false, "")
}

func resolveAdventure(g Game, rescued bool, message string) Game {
	s := &g.State
	out := rules.Resolve(rules.Adventure{
		Stats:          s.Stats,
		Inventory:      s.Inventory,
		IsWithFriends:  s.IsWithFriends,
		LoopCount:      s.LoopCount,
		MaxGearItems:   s.MaxGearItems(),
		AlreadyRescued: rescued,
		CustomMessage:  message,
	})
	if !out.Success() {
		return triggerCrisis(g, out.Crisis, out.Narrative)
	}
	for _, id := range out.Unlocks {
		g = unlock(g, id)
	}
	g.State.Phase = models.PhaseEndingWin
	g.State.NarrativeText = out.Narrative
	return g
}

func triggerCrisis(g Game, e models.Element, message string) Game {
	g.State.Crisis = &models.Crisis{Element: e, Message: message}
	g.State.Stats.Energy = crisisEnergy
	g.State.Stats.Mood = crisisMood
	return g
}

func manualRescue(g Game, in ManualRescue) Game {
	s := &g.State
	crisis := s.Crisis.Element
	opts := rules.Options(crisis, s.Inventory, s.Stats.SaverBuff)

	var line string
	switch {
	case in.UseBuff:
		pkg, ok := models.LookupPackage(crisis)
		if !opts.Buff || !ok {
			return g
		}
		line = story.buffRescueLine(pkg)
	default:
		item, ok := models.LookupItem(in.Item)
		if !ok || !models.Contains(opts.Items, in.Item) {
			return g
		}
		line = story.itemRescueLine(item)
	}

	s.Crisis = nil
	s.Stats.Energy = rescueEnergy
	s.Stats.Mood = rescueMood
	return resolveAdventure(g, true, line)
}

func giveUp(g Game) Game {
	s := &g.State
	crisis := *s.Crisis
	s.Crisis = nil
	s.Setback = crisis.Element
	s.NarrativeText = crisis.Message + story.GiveUpSuffix[crisis.Element]
	s.Phase = models.PhaseCh1Resolution
	if s.LoopCount > 0 {
		s.Phase = models.PhaseCh2Resolution
	}
	return g
}

func loopViaEther(g Game) Game {
	s := &g.State
	if s.LoopCount >= persistentMin {
		g = unlock(g, models.AchievementPersistent)
	}
	if s.Phase == models.PhaseCh2Resolution && s.LoopCount > 1 {
		s.Phase = models.PhaseCh3Reflection
		s.NarrativeText = story.ReflectionPrompt
		return g
	}
	buff := s.Stats.SaverBuff
	s.Phase = models.PhaseEtherLoop
	s.LoopCount++
	s.Stats = models.InitialStats
	s.Stats.SaverBuff = buff
	s.NarrativeText = story.EtherLoop
	return g
}

func unlock(g Game, id models.AchievementID) Game {
	for i, a := range g.State.Achievements {
		if a.ID == id {
			g.State.Achievements[i].Unlocked = true
			break
		}
	}
	return g
}

// MatchesLesson reports whether a reflection names something that would
// have saved the hike.
func MatchesLesson(text string) bool {
	lower := strings.ToLower(text)
	for _, answer := range models.ReflectionAnswers() {
		if strings.Contains(lower, answer) {
			return true
		}
	}
	return false
}

// Engine owns the current game and is the only thing that changes it.
type Engine struct {
	game   Game
	logger *log.Logger
}

// NewEngine creates an engine at the start menu. A nil logger discards output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{game: NewGame(), logger: logger}
}

// Dispatch applies in and returns the resulting snapshot.
func (e *Engine) Dispatch(in Intent) models.GameState {
	prev := e.game.State
	e.game = Dispatch(e.game, in)
	cur := e.game.State
	if prev.Phase != cur.Phase || prev.LoopCount != cur.LoopCount {
		e.logger.Printf("phase %s -> %s (loop %d) after %T", prev.Phase, cur.Phase, cur.LoopCount, in)
	}
	if prev.Crisis == nil && cur.Crisis != nil {
		e.logger.Printf("crisis %s raised: %s", cur.Crisis.Element, cur.Crisis.Message)
	}
	return cur
}

// Game returns the current reducer value.
func (e *Engine) Game() Game { return e.game }

// State returns the current snapshot.
func (e *Engine) State() models.GameState { return e.game.State }
