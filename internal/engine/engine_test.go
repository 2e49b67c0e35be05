package engine

import (
	"slices"
	"strings"
	"testing"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
)

func play(g Game, intents ...Intent) Game {
	for _, in := range intents {
		g = Dispatch(g, in)
	}
	return g
}

var okStats = models.PlayerStats{Energy: 60, Mood: 70, Outfit: models.OutfitHiking}

// toGear walks a fresh game to the gear room.
func toGear(withFriends bool) Game {
	return play(NewGame(), StartIntro{}, ChooseCompanionship{WithFriends: withFriends}, ChooseWeather{Wait: true})
}

// hikeWith packs items and starts the minigame.
func hikeWith(g Game, items ...models.ItemID) Game {
	for _, it := range items {
		g = Dispatch(g, ToggleGearItem{Item: it})
	}
	return Dispatch(g, ConfirmGear{})
}

func TestOpeningBranches(t *testing.T) {
	g := play(NewGame(), StartIntro{})
	if g.State.Phase != models.PhaseIntro {
		t.Fatalf("Expected INTRO, got %s", g.State.Phase)
	}
	if g.State.NarrativeText != story.Intro {
		t.Errorf("Expected intro line, got %q", g.State.NarrativeText)
	}

	g = Dispatch(g, ChooseCompanionship{WithFriends: true})
	if g.State.Phase != models.PhaseCh1Choice || !g.State.IsWithFriends {
		t.Errorf("Expected CH1_CHOICE with friends, got %s %v", g.State.Phase, g.State.IsWithFriends)
	}
	if g.State.NarrativeText != story.WithFriends {
		t.Errorf("Expected friends line, got %q", g.State.NarrativeText)
	}

	g = Dispatch(g, ChooseWeather{Wait: true})
	if g.State.Phase != models.PhaseGearSelection {
		t.Errorf("Expected GEAR_SELECTION, got %s", g.State.Phase)
	}
	if g.State.MaxGearItems() != 2 {
		t.Errorf("Expected 2 gear slots on first attempt, got %d", g.State.MaxGearItems())
	}
}

func TestInvalidIntentsAreIgnored(t *testing.T) {
	start := NewGame()
	for _, in := range []Intent{
		ChooseCompanionship{WithFriends: true},
		ChooseWeather{Wait: true},
		ConfirmGear{},
		CompleteHike{Stats: okStats},
		LoopViaEther{},
		AcceptEtherGift{},
		SelectPackage{Element: models.ElementFire},
		SubmitReflection{Text: "map"},
		GiveUp{},
		RescueWith(models.ItemJacket),
	} {
		got := Dispatch(start, in)
		if got.State.Phase != models.PhaseStartMenu || got.State.Crisis != nil {
			t.Errorf("%T: expected no-op at START_MENU, got %s", in, got.State.Phase)
		}
	}
}

func TestRushingOutRaisesWaterCrisis(t *testing.T) {
	g := play(NewGame(), StartIntro{}, ChooseCompanionship{}, ChooseWeather{Wait: false})
	if g.State.CurrentInjury() != models.ElementWater {
		t.Fatalf("Expected WATER crisis, got %q", g.State.CurrentInjury())
	}
	if g.State.Crisis.Message != story.RushOut {
		t.Errorf("Expected rush-out line, got %q", g.State.Crisis.Message)
	}
	if g.State.Stats.Energy != 10 || g.State.Stats.Mood != 10 {
		t.Errorf("Expected stats pinned at 10/10, got %v/%v", g.State.Stats.Energy, g.State.Stats.Mood)
	}

	// Nothing in the bag, so no rescue gets through.
	if still := Dispatch(g, RescueWith(models.ItemJacket)); still.State.Crisis == nil {
		t.Errorf("Expected rescue with unpacked jacket to be ignored")
	}

	g = Dispatch(g, GiveUp{})
	if g.State.Crisis != nil {
		t.Errorf("Expected crisis cleared after giving up")
	}
	if g.State.Phase != models.PhaseCh1Resolution {
		t.Errorf("Expected CH1_RESOLUTION, got %s", g.State.Phase)
	}
	if g.State.NarrativeText != story.RushOut {
		t.Errorf("Expected WATER to get no suffix, got %q", g.State.NarrativeText)
	}
	if g.State.Setback != models.ElementWater {
		t.Errorf("Expected setback WATER, got %q", g.State.Setback)
	}
}

func TestCrisisBlocksNormalIntents(t *testing.T) {
	g := play(NewGame(), StartIntro{}, ChooseCompanionship{}, ChooseWeather{Wait: false})
	for _, in := range []Intent{ChooseWeather{Wait: true}, ConfirmGear{}, LoopViaEther{}, TriggerCrisis{Element: models.ElementEarth}} {
		got := Dispatch(g, in)
		if got.State.Phase != g.State.Phase || got.State.CurrentInjury() != models.ElementWater {
			t.Errorf("%T: expected to be blocked by crisis", in)
		}
	}
	if got := Dispatch(g, Restart{}); got.State.Phase != models.PhaseStartMenu || got.State.Crisis != nil {
		t.Errorf("Expected restart to clear everything, got %s", got.State.Phase)
	}
}

func TestToggleGear(t *testing.T) {
	g := toGear(false)
	g = Dispatch(g, ToggleGearItem{Item: models.ItemJacket})
	g = Dispatch(g, ToggleGearItem{Item: models.ItemWaterBottle})
	want := []models.ItemID{models.ItemJacket, models.ItemWaterBottle}
	if !slices.Equal(g.Selection, want) {
		t.Fatalf("Expected %v, got %v", want, g.Selection)
	}

	full := Dispatch(g, ToggleGearItem{Item: models.ItemMap})
	if !slices.Equal(full.Selection, want) {
		t.Errorf("Expected full bag to drop MAP, got %v", full.Selection)
	}

	removed := Dispatch(g, ToggleGearItem{Item: models.ItemJacket})
	if !slices.Equal(removed.Selection, []models.ItemID{models.ItemWaterBottle}) {
		t.Errorf("Expected jacket removed, got %v", removed.Selection)
	}
	if !slices.Equal(g.Selection, want) {
		t.Errorf("Expected earlier snapshot untouched, got %v", g.Selection)
	}

	for _, id := range []models.ItemID{models.ItemFriend, "ICE_AXE"} {
		if got := Dispatch(removed, ToggleGearItem{Item: id}); len(got.Selection) != 1 {
			t.Errorf("Expected %s to be rejected, got %v", id, got.Selection)
		}
	}
}

func TestConfirmGearNeedsSelection(t *testing.T) {
	g := toGear(false)
	if got := Dispatch(g, ConfirmGear{}); got.State.Phase != models.PhaseGearSelection {
		t.Errorf("Expected empty bag confirm to be ignored, got %s", got.State.Phase)
	}
	g = hikeWith(g, models.ItemWaterBottle)
	if g.State.Phase != models.PhaseHikingGame {
		t.Fatalf("Expected HIKING_GAME, got %s", g.State.Phase)
	}
	if g.State.Stats.Outfit != models.OutfitHiking {
		t.Errorf("Expected hiking outfit")
	}
	if !slices.Equal(g.State.Inventory, []models.ItemID{models.ItemWaterBottle}) {
		t.Errorf("Expected inventory committed, got %v", g.State.Inventory)
	}
}

func TestPreparedHikeReachesSummit(t *testing.T) {
	g := hikeWith(toGear(false), models.ItemWaterBottle, models.ItemJacket)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	if g.State.Phase != models.PhaseEndingWin {
		t.Fatalf("Expected ENDING_WIN, got %s (crisis %v)", g.State.Phase, g.State.Crisis)
	}
	if !g.State.Unlocked(models.AchievementSurvivor) || !g.State.Unlocked(models.AchievementPrepared) {
		t.Errorf("Expected SURVIVOR and PREPARED, got %+v", g.State.Achievements)
	}
	if g.State.Unlocked(models.AchievementSocial) {
		t.Errorf("Expected no SOCIAL when hiking solo")
	}
}

func TestPassiveCrisisAndItemRescue(t *testing.T) {
	g := hikeWith(toGear(true), models.ItemJacket, models.ItemSnack)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	if g.State.CurrentInjury() != models.ElementFire {
		t.Fatalf("Expected FIRE crisis, got %q", g.State.CurrentInjury())
	}
	if g.State.Phase != models.PhaseHikingGame {
		t.Errorf("Expected phase to stay put during crisis, got %s", g.State.Phase)
	}

	if wrong := Dispatch(g, RescueWith(models.ItemJacket)); wrong.State.Crisis == nil {
		t.Errorf("Expected jacket not to rescue FIRE")
	}

	g = Dispatch(g, RescueWith(models.ItemSnack))
	if g.State.Crisis != nil {
		t.Fatalf("Expected crisis cleared")
	}
	if g.State.Phase != models.PhaseEndingWin {
		t.Errorf("Expected ENDING_WIN, got %s", g.State.Phase)
	}
	if g.State.Stats.Energy != 50 || g.State.Stats.Mood != 60 {
		t.Errorf("Expected 50/60, got %v/%v", g.State.Stats.Energy, g.State.Stats.Mood)
	}
	if !strings.Contains(g.State.NarrativeText, "Energy Bar") {
		t.Errorf("Expected rescue line naming the item, got %q", g.State.NarrativeText)
	}
	if !g.State.Unlocked(models.AchievementSocial) {
		t.Errorf("Expected SOCIAL when hiking with friends")
	}
	if !slices.Equal(g.State.Inventory, []models.ItemID{models.ItemJacket, models.ItemSnack}) {
		t.Errorf("Expected items kept after use, got %v", g.State.Inventory)
	}
}

func TestHikeFailureRaisesCrisis(t *testing.T) {
	tests := []struct {
		name   string
		hike   CompleteHike
		injury models.Element
		line   string
	}{
		{"rock", CompleteHike{Stats: models.PlayerStats{}, FailReason: models.ElementEarth}, models.ElementEarth, story.HikeFail[models.ElementEarth]},
		{"bear", CompleteHike{Stats: models.PlayerStats{}, FailReason: models.ElementAir}, models.ElementAir, story.HikeFail[models.ElementAir]},
		{"exhausted", CompleteHike{Stats: models.PlayerStats{Energy: -3, Mood: 40}}, models.ElementFire, story.HikeFail[models.ElementFire]},
		{"gloomy", CompleteHike{Stats: models.PlayerStats{Energy: 40, Mood: 0}}, models.ElementAir, story.HikeFail[models.ElementAir]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := hikeWith(toGear(false), models.ItemWaterBottle, models.ItemJacket)
			g = Dispatch(g, tt.hike)
			if g.State.CurrentInjury() != tt.injury {
				t.Fatalf("Expected %s, got %q", tt.injury, g.State.CurrentInjury())
			}
			if g.State.Crisis.Message != tt.line {
				t.Errorf("Expected %q, got %q", tt.line, g.State.Crisis.Message)
			}
		})
	}
}

func TestGiveUpSuffixes(t *testing.T) {
	tests := []struct {
		element models.Element
		suffix  string
	}{
		{models.ElementEarth, "ankle"},
		{models.ElementFire, "exhaustion"},
		{models.ElementAir, "lost"},
	}
	for _, tt := range tests {
		g := hikeWith(toGear(false), models.ItemSunglasses)
		g = Dispatch(g, CompleteHike{FailReason: tt.element})
		g = Dispatch(g, GiveUp{})
		if !strings.Contains(g.State.NarrativeText, tt.suffix) {
			t.Errorf("%s: expected suffix mentioning %q, got %q", tt.element, tt.suffix, g.State.NarrativeText)
		}
		if g.State.Phase != models.PhaseCh1Resolution {
			t.Errorf("%s: expected CH1_RESOLUTION, got %s", tt.element, g.State.Phase)
		}
	}
}

// failAttempt hikes with nothing useful and gives up on the crisis.
func failAttempt(g Game) Game {
	g = hikeWith(g, models.ItemSunglasses)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	return Dispatch(g, GiveUp{})
}

func TestLoopingKeepsBuffAndRaisesCap(t *testing.T) {
	g := failAttempt(toGear(false))
	g = Dispatch(g, LoopViaEther{})
	if g.State.Phase != models.PhaseEtherLoop || g.State.LoopCount != 1 {
		t.Fatalf("Expected ETHER_LOOP loop 1, got %s loop %d", g.State.Phase, g.State.LoopCount)
	}
	if g.State.Stats.Energy != 100 || g.State.Stats.Mood != 30 || g.State.Stats.Outfit != models.OutfitCasual {
		t.Errorf("Expected stats reset, got %+v", g.State.Stats)
	}

	g = play(g, AcceptEtherGift{})
	if g.State.Phase != models.PhaseEtherPackage {
		t.Fatalf("Expected ETHER_PACKAGE, got %s", g.State.Phase)
	}
	if got := Dispatch(g, SelectPackage{Element: models.ElementEther}); got.State.Phase != models.PhaseEtherPackage {
		t.Errorf("Expected ETHER package to be refused")
	}
	g = Dispatch(g, SelectPackage{Element: models.ElementWater})
	if g.State.Phase != models.PhaseGearSelection || g.State.Stats.SaverBuff != models.ElementWater {
		t.Fatalf("Expected GEAR_SELECTION with WATER buff, got %s %q", g.State.Phase, g.State.Stats.SaverBuff)
	}
	if len(g.Selection) != 0 {
		t.Errorf("Expected selection cleared, got %v", g.Selection)
	}
	if g.State.MaxGearItems() != 3 {
		t.Errorf("Expected 3 gear slots after a loop, got %d", g.State.MaxGearItems())
	}

	// Second failure lands in CH2 and the buff survives the next loop.
	g = failAttempt(g)
	if g.State.Phase != models.PhaseCh2Resolution {
		t.Fatalf("Expected CH2_RESOLUTION, got %s", g.State.Phase)
	}
	g = Dispatch(g, LoopViaEther{})
	if g.State.LoopCount != 2 || g.State.Stats.SaverBuff != models.ElementWater {
		t.Errorf("Expected loop 2 with buff kept, got loop %d buff %q", g.State.LoopCount, g.State.Stats.SaverBuff)
	}
	if g.State.Unlocked(models.AchievementPersistent) {
		t.Errorf("Expected PERSISTENT to wait until loop 2")
	}
}

func TestBuffSurvivesHike(t *testing.T) {
	g := failAttempt(toGear(false))
	g = play(g, LoopViaEther{}, AcceptEtherGift{}, SelectPackage{Element: models.ElementEarth})
	g = hikeWith(g, models.ItemSunglasses)
	g = Dispatch(g, CompleteHike{FailReason: models.ElementEarth, Stats: models.PlayerStats{Outfit: models.OutfitHiking}})
	if g.State.Stats.SaverBuff != models.ElementEarth {
		t.Fatalf("Expected buff kept through hike, got %q", g.State.Stats.SaverBuff)
	}
	g = Dispatch(g, RescueWithBuff())
	if g.State.Phase != models.PhaseEndingWin {
		t.Fatalf("Expected buff rescue to win, got %s", g.State.Phase)
	}
	if !strings.Contains(g.State.NarrativeText, "Emergency Beacon") {
		t.Errorf("Expected buff line naming the package item, got %q", g.State.NarrativeText)
	}
}

func TestBuffRescueRequiresMatch(t *testing.T) {
	g := failAttempt(toGear(false))
	g = play(g, LoopViaEther{}, AcceptEtherGift{}, SelectPackage{Element: models.ElementWater})
	g = hikeWith(g, models.ItemSunglasses)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	if g.State.CurrentInjury() != models.ElementFire {
		t.Fatalf("Expected FIRE crisis, got %q", g.State.CurrentInjury())
	}
	if got := Dispatch(g, RescueWithBuff()); got.State.Crisis == nil {
		t.Errorf("Expected WATER buff not to rescue FIRE")
	}
}

func TestWaterBuffWardsPassiveCold(t *testing.T) {
	g := failAttempt(toGear(false))
	g = play(g, LoopViaEther{}, AcceptEtherGift{}, SelectPackage{Element: models.ElementWater})
	g = hikeWith(g, models.ItemWaterBottle, models.ItemMap)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	if g.State.Phase != models.PhaseEndingWin {
		t.Errorf("Expected WATER buff to cover the missing jacket, got %s crisis %v", g.State.Phase, g.State.Crisis)
	}
}

// toReflection loops until CH3_REFLECTION opens.
func toReflection(t *testing.T) Game {
	t.Helper()
	g := failAttempt(toGear(false))
	for i := 0; i < 5; i++ {
		g = Dispatch(g, LoopViaEther{})
		if g.State.Phase == models.PhaseCh3Reflection {
			return g
		}
		g = play(g, AcceptEtherGift{}, SelectPackage{Element: models.ElementAir})
		g = failAttempt(g)
	}
	t.Fatalf("Expected to reach CH3_REFLECTION, stuck at %s", g.State.Phase)
	return g
}

func TestReflectionOpensOnThirdFailure(t *testing.T) {
	g := toReflection(t)
	if g.State.LoopCount != 2 {
		t.Errorf("Expected reflection at loop 2, got %d", g.State.LoopCount)
	}
	if !g.State.Unlocked(models.AchievementPersistent) {
		t.Errorf("Expected PERSISTENT unlocked")
	}
	if g.State.NarrativeText != story.ReflectionPrompt {
		t.Errorf("Expected reflection prompt, got %q", g.State.NarrativeText)
	}
}

func TestReflectionAnswers(t *testing.T) {
	g := toReflection(t)

	win := Dispatch(g, SubmitReflection{Text: "I forgot my MAP"})
	if win.State.Phase != models.PhaseEndingWin {
		t.Errorf("Expected ENDING_WIN, got %s", win.State.Phase)
	}

	miss := Dispatch(g, SubmitReflection{Text: "nothing"})
	if miss.State.Phase != models.PhaseEtherLoop {
		t.Fatalf("Expected ETHER_LOOP, got %s", miss.State.Phase)
	}
	if miss.State.LoopCount != g.State.LoopCount+1 {
		t.Errorf("Expected loop %d, got %d", g.State.LoopCount+1, miss.State.LoopCount)
	}
	if miss.State.Stats.SaverBuff != models.ElementNone {
		t.Errorf("Expected buff lost on a wrong answer, got %q", miss.State.Stats.SaverBuff)
	}
	if miss.State.NarrativeText != story.ReflectionRebuff {
		t.Errorf("Expected rebuff line, got %q", miss.State.NarrativeText)
	}
}

func TestMatchesLesson(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I forgot my MAP", true},
		{"a First Aid kit", true},
		{"trekking poles", true},
		{"GPS", true},
		{"nothing", false},
		{"", false},
		{"courage", false},
	}
	for _, tt := range tests {
		if got := MatchesLesson(tt.text); got != tt.want {
			t.Errorf("MatchesLesson(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestNavigationCheckAfterLoop(t *testing.T) {
	g := failAttempt(toGear(false))
	g = play(g, LoopViaEther{}, AcceptEtherGift{}, SelectPackage{Element: models.ElementEarth})
	g = hikeWith(g, models.ItemWaterBottle, models.ItemJacket)
	g = Dispatch(g, CompleteHike{Stats: okStats})
	if g.State.CurrentInjury() != models.ElementAir {
		t.Fatalf("Expected AIR crisis, got %q", g.State.CurrentInjury())
	}
	g = Dispatch(g, GiveUp{})
	if g.State.Phase != models.PhaseCh2Resolution {
		t.Errorf("Expected CH2_RESOLUTION, got %s", g.State.Phase)
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	g := Dispatch(NewGame(), UnlockAchievement{ID: models.AchievementSocial})
	again := Dispatch(g, UnlockAchievement{ID: models.AchievementSocial})
	if !again.State.Unlocked(models.AchievementSocial) {
		t.Errorf("Expected SOCIAL unlocked")
	}
	unknown := Dispatch(again, UnlockAchievement{ID: "SPEEDRUN"})
	if !slices.Equal(unknown.State.Achievements, again.State.Achievements) {
		t.Errorf("Expected unknown achievement to change nothing")
	}
	if NewGame().State.Unlocked(models.AchievementSocial) {
		t.Errorf("Expected a fresh game to start locked")
	}
}

func TestRestartReplacesEverything(t *testing.T) {
	g := hikeWith(toGear(true), models.ItemWaterBottle, models.ItemJacket)
	g = play(g, CompleteHike{Stats: okStats}, Restart{})
	fresh := NewGame()
	if g.State.Phase != fresh.State.Phase || g.State.IsWithFriends || len(g.State.Inventory) != 0 || len(g.Selection) != 0 {
		t.Errorf("Expected a fresh game, got %+v", g)
	}
	if g.State.Unlocked(models.AchievementSurvivor) {
		t.Errorf("Expected achievements reset")
	}
}

func TestEngineTracksState(t *testing.T) {
	e := NewEngine(nil)
	e.Dispatch(StartIntro{})
	st := e.Dispatch(ChooseCompanionship{WithFriends: false})
	if st.Phase != models.PhaseCh1Choice {
		t.Errorf("Expected CH1_CHOICE, got %s", st.Phase)
	}
	if e.State().Phase != st.Phase || e.Game().State.Phase != st.Phase {
		t.Errorf("Expected engine to hold the latest snapshot")
	}
}
