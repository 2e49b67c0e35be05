package rules

import "github.com/JasLovesSleeping/looping-trail-1.0/internal/models"

const (
	DehydrationMessage = "Dehydration strikes. The view spins."
	FreezingMessage    = "The summit is freezing. Your sweat turns to ice."
	LostMessage        = "The path splits. You guess wrong. Darkness falls."
	SummitMessage      = "You move with rhythm. You drink before you thirst. You layer up before you freeze. The summit greets you in silence."
)

// Adventure is everything the end-of-hike evaluation looks at.
type Adventure struct {
	Stats          models.PlayerStats
	Inventory      []models.ItemID
	IsWithFriends  bool
	LoopCount      int
	MaxGearItems   int
	AlreadyRescued bool
	CustomMessage  string
}

// Outcome is the result of Resolve. Crisis is ElementNone on success.
type Outcome struct {
	Crisis    models.Element
	Narrative string
	Unlocks   []models.AchievementID
}

// Success reports whether the hike reached the summit.
func (o Outcome) Success() bool { return o.Crisis == models.ElementNone }

type gearCheck struct {
	element models.Element
	message string
	failed  func(a Adventure) bool
}

// Checks run in this order and the first failure wins.
var gearChecks = []gearCheck{
	{
		element: models.ElementFire,
		message: DehydrationMessage,
		failed: func(a Adventure) bool {
			return !models.Contains(a.Inventory, models.ItemWaterBottle)
		},
	},
	{
		element: models.ElementWater,
		message: FreezingMessage,
		failed: func(a Adventure) bool {
			return !models.Contains(a.Inventory, models.ItemJacket)
		},
	},
	{
		// Nobody knows they need a map on the first attempt.
		element: models.ElementAir,
		message: LostMessage,
		failed: func(a Adventure) bool {
			return a.LoopCount > 0 &&
				!models.Contains(a.Inventory, models.ItemPhone) &&
				!models.Contains(a.Inventory, models.ItemMap)
		},
	},
}

// Resolve evaluates the end of a hike. Unless the player was already
// rescued, missing gear raises a passive crisis; a saver buff wards off the
// check for its own element only.
func Resolve(a Adventure) Outcome {
	if !a.AlreadyRescued {
		for _, c := range gearChecks {
			if BuffRescues(c.element, a.Stats.SaverBuff) {
				continue
			}
			if c.failed(a) {
				return Outcome{Crisis: c.element, Narrative: c.message}
			}
		}
	}

	out := Outcome{Narrative: SummitMessage}
	if a.CustomMessage != "" {
		out.Narrative = a.CustomMessage
	}
	out.Unlocks = append(out.Unlocks, models.AchievementSurvivor)
	if a.IsWithFriends || models.Contains(a.Inventory, models.ItemFriend) {
		out.Unlocks = append(out.Unlocks, models.AchievementSocial)
	}
	if len(a.Inventory) == a.MaxGearItems {
		out.Unlocks = append(out.Unlocks, models.AchievementPrepared)
	}
	return out
}
