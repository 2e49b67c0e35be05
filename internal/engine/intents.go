package engine

import "github.com/JasLovesSleeping/looping-trail-1.0/internal/models"

// Intent is a player action dispatched by the renderer.
type Intent interface {
	intent()
}

type (
	StartIntro          struct{}
	ChooseCompanionship struct{ WithFriends bool }
	ChooseWeather       struct{ Wait bool }
	ToggleGearItem      struct{ Item models.ItemID }
	ConfirmGear         struct{}

	// CompleteHike reports the end of the minigame. FailReason is set when
	// a hazard ended the run.
	CompleteHike struct {
		Stats      models.PlayerStats
		FailReason models.Element
	}

	TriggerCrisis struct {
		Element models.Element
		Message string
	}

	// ManualRescue answers a bag check with one item, or with the held
	// saver buff when UseBuff is set.
	ManualRescue struct {
		Item    models.ItemID
		UseBuff bool
	}

	GiveUp            struct{}
	LoopViaEther      struct{}
	AcceptEtherGift   struct{}
	SelectPackage     struct{ Element models.Element }
	SubmitReflection  struct{ Text string }
	UnlockAchievement struct{ ID models.AchievementID }
	Restart           struct{}
)

func (StartIntro) intent()          {}
func (ChooseCompanionship) intent() {}
func (ChooseWeather) intent()       {}
func (ToggleGearItem) intent()      {}
func (ConfirmGear) intent()         {}
func (CompleteHike) intent()        {}
func (TriggerCrisis) intent()       {}
func (ManualRescue) intent()        {}
func (GiveUp) intent()              {}
func (LoopViaEther) intent()        {}
func (AcceptEtherGift) intent()     {}
func (SelectPackage) intent()       {}
func (SubmitReflection) intent()    {}
func (UnlockAchievement) intent()   {}
func (Restart) intent()             {}

// RescueWith is a ManualRescue using item.
func RescueWith(item models.ItemID) ManualRescue { return ManualRescue{Item: item} }

// RescueWithBuff is a ManualRescue using the held saver buff.
func RescueWithBuff() ManualRescue { return ManualRescue{UseBuff: true} }
