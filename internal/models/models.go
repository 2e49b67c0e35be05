package models

// Element tags both what an item protects against and the kind of crisis
// an injury belongs to. The zero value means "none".
type Element string

const (
	ElementNone  Element = ""
	ElementEarth Element = "EARTH" // sprain
	ElementAir   Element = "AIR"   // lost
	ElementFire  Element = "FIRE"  // dehydration / exhaustion
	ElementWater Element = "WATER" // cold
	ElementEther Element = "ETHER" // loop / insight, never a crisis
)

// Elements lists every element in display order.
var Elements = []Element{ElementEarth, ElementAir, ElementFire, ElementWater, ElementEther}

// Valid reports whether e is one of the five known elements.
func (e Element) Valid() bool {
	switch e {
	case ElementEarth, ElementAir, ElementFire, ElementWater, ElementEther:
		return true
	}
	return false
}

// Injurious reports whether e can be raised as a crisis.
func (e Element) Injurious() bool {
	return e.Valid() && e != ElementEther
}

// ItemID identifies an entry of the item catalog.
type ItemID string

const (
	ItemJacket      ItemID = "JACKET"
	ItemWaterBottle ItemID = "WATER_BOTTLE"
	ItemPhone       ItemID = "PHONE"
	ItemSunglasses  ItemID = "SUNGLASSES"
	ItemSnack       ItemID = "SNACK"
	ItemFirstAid    ItemID = "FIRST_AID"
	ItemMap         ItemID = "MAP"
	ItemWhistle     ItemID = "WHISTLE"
	ItemPoles       ItemID = "POLES"
	ItemFriend      ItemID = "FRIEND" // companion, not a physical pick-up
)

// Position is a spot in the gear room, in percent of the room's width and height.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Item is a piece of gear (or the companion) the player can carry.
type Item struct {
	ID          ItemID    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon"`
	Protects    []Element `yaml:"protects"`
	Position    *Position `yaml:"position,omitempty"` // nil for virtual items
}

// Virtual reports whether the item has no place in the gear room.
func (i Item) Virtual() bool { return i.Position == nil }

// ElementPackage is Ether's gift: a permanent ward against one element.
type ElementPackage struct {
	Element     Element `yaml:"element"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Item        string  `yaml:"item"`
	Effect      string  `yaml:"effect"`
	Icon        string  `yaml:"icon"`
}

// Outfit is presentation only.
type Outfit string

const (
	OutfitCasual Outfit = "casual"
	OutfitHiking Outfit = "hiking"
)

// PlayerStats holds energy and mood. Values are stored raw and may dip
// below zero after a penalty; use Clamped for display.
type PlayerStats struct {
	Energy    float64 `yaml:"energy"`
	Mood      float64 `yaml:"mood"`
	Outfit    Outfit  `yaml:"outfit"`
	SaverBuff Element `yaml:"saver_buff,omitempty"`
}

// InitialStats are the stats of a fresh run.
var InitialStats = PlayerStats{Energy: 100, Mood: 30, Outfit: OutfitCasual}

// Clamped returns energy and mood limited to [0,100].
func (s PlayerStats) Clamped() (energy, mood float64) {
	return clamp(s.Energy), clamp(s.Mood)
}

// Depleted reports whether either stat has reached zero.
func (s PlayerStats) Depleted() bool {
	return s.Energy <= 0 || s.Mood <= 0
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// AchievementID identifies one of the fixed achievements.
type AchievementID string

const (
	AchievementSurvivor   AchievementID = "SURVIVOR"
	AchievementSocial     AchievementID = "SOCIAL"
	AchievementPrepared   AchievementID = "PREPARED"
	AchievementPersistent AchievementID = "PERSISTENT"
)

type Achievement struct {
	ID          AchievementID `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Unlocked    bool          `yaml:"unlocked"`
}

// Phase is a node of the narrative graph.
type Phase string

const (
	PhaseStartMenu     Phase = "START_MENU"
	PhaseIntro         Phase = "INTRO"
	PhaseCh1Choice     Phase = "CH1_CHOICE"
	PhaseGearSelection Phase = "GEAR_SELECTION"
	PhaseEtherPackage  Phase = "ETHER_PACKAGE"
	PhaseHikingGame    Phase = "HIKING_GAME"
	PhaseCh1Resolution Phase = "CH1_RESOLUTION"
	PhaseEtherLoop     Phase = "ETHER_LOOP"
	PhaseCh2Resolution Phase = "CH2_RESOLUTION"
	PhaseCh3Reflection Phase = "CH3_REFLECTION"
	PhaseEndingWin     Phase = "ENDING_WIN"
	PhaseEndingFail    Phase = "ENDING_FAIL" // reserved, nothing transitions here
)

// Resolution reports whether p is one of the "bad hike" report phases.
func (p Phase) Resolution() bool {
	return p == PhaseCh1Resolution || p == PhaseCh2Resolution
}

// Crisis is an injury waiting to be rescued or given up on.
type Crisis struct {
	Element Element `yaml:"element"`
	Message string  `yaml:"message"`
}

// GameState is the authoritative snapshot handed to the renderer.
type GameState struct {
	Phase         Phase         `yaml:"phase"`
	LoopCount     int           `yaml:"loop_count"`
	Inventory     []ItemID      `yaml:"inventory"`
	Crisis        *Crisis       `yaml:"crisis,omitempty"`  // the current injury, nil when none is pending
	Setback       Element       `yaml:"setback,omitempty"` // element of the crisis that ended the last attempt
	NarrativeText string        `yaml:"narrative_text"`
	IsWithFriends bool          `yaml:"is_with_friends"`
	Stats         PlayerStats   `yaml:"stats"`
	Achievements  []Achievement `yaml:"achievements"`
}

// NewGameState returns the snapshot the game starts from.
func NewGameState() GameState {
	return GameState{
		Phase:        PhaseStartMenu,
		Stats:        InitialStats,
		Achievements: AchievementCatalog(),
	}
}

// CurrentInjury returns the pending crisis element, or ElementNone.
func (s GameState) CurrentInjury() Element {
	if s.Crisis == nil {
		return ElementNone
	}
	return s.Crisis.Element
}

// MaxGearItems is the bag size for the given loop count.
func MaxGearItems(loopCount int) int {
	if loopCount > 0 {
		return 3
	}
	return 2
}

// MaxGearItems is the bag size for the current loop.
func (s GameState) MaxGearItems() int {
	return MaxGearItems(s.LoopCount)
}

// Has reports whether the inventory holds id.
func (s GameState) Has(id ItemID) bool {
	return Contains(s.Inventory, id)
}

// Unlocked reports whether the achievement id has been unlocked.
func (s GameState) Unlocked(id AchievementID) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return a.Unlocked
		}
	}
	return false
}

// Contains reports whether items holds id.
func Contains(items []ItemID, id ItemID) bool {
	for _, it := range items {
		if it == id {
			return true
		}
	}
	return false
}
