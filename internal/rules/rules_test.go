package rules

import (
	"slices"
	"testing"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
)

func TestItemRescues(t *testing.T) {
	tests := []struct {
		crisis models.Element
		item   models.ItemID
		want   bool
	}{
		{models.ElementFire, models.ItemWaterBottle, true},
		{models.ElementFire, models.ItemSnack, true},
		{models.ElementFire, models.ItemJacket, false},
		{models.ElementWater, models.ItemJacket, true},
		{models.ElementEarth, models.ItemFirstAid, true},
		{models.ElementEarth, models.ItemPoles, true},
		{models.ElementAir, models.ItemWhistle, true},
		{models.ElementAir, models.ItemSunglasses, false},
		{models.ElementEther, models.ItemMap, false},
	}
	for _, tt := range tests {
		if got := ItemRescues(tt.crisis, tt.item); got != tt.want {
			t.Errorf("ItemRescues(%s, %s): expected %v, got %v", tt.crisis, tt.item, tt.want, got)
		}
	}
}

func TestOptionsListsEveryEligibleItem(t *testing.T) {
	inv := []models.ItemID{models.ItemWhistle, models.ItemJacket, models.ItemMap}
	opts := Options(models.ElementAir, inv, models.ElementAir)
	want := []models.ItemID{models.ItemWhistle, models.ItemMap}
	if !slices.Equal(opts.Items, want) {
		t.Errorf("Expected items %v, got %v", want, opts.Items)
	}
	if !opts.Buff {
		t.Errorf("Expected matching buff to be offered")
	}

	none := Options(models.ElementEarth, inv, models.ElementWater)
	if none.Any() {
		t.Errorf("Expected no rescue for EARTH, got %+v", none)
	}
}

func TestBuffRescuesNeedsAHeldBuff(t *testing.T) {
	if BuffRescues(models.ElementNone, models.ElementNone) {
		t.Errorf("Expected an empty buff never to rescue")
	}
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name   string
		adv    Adventure
		crisis models.Element
	}{
		{
			name:   "empty bag dehydrates",
			adv:    Adventure{LoopCount: 0, MaxGearItems: 2},
			crisis: models.ElementFire,
		},
		{
			name:   "water checked before cold",
			adv:    Adventure{Inventory: []models.ItemID{models.ItemMap}, LoopCount: 1, MaxGearItems: 3},
			crisis: models.ElementFire,
		},
		{
			name:   "no jacket freezes",
			adv:    Adventure{Inventory: []models.ItemID{models.ItemWaterBottle}, MaxGearItems: 2},
			crisis: models.ElementWater,
		},
		{
			name:   "first attempt needs no map",
			adv:    Adventure{Inventory: []models.ItemID{models.ItemWaterBottle, models.ItemJacket}, MaxGearItems: 2},
			crisis: models.ElementNone,
		},
		{
			name:   "later attempt gets lost without navigation",
			adv:    Adventure{Inventory: []models.ItemID{models.ItemWaterBottle, models.ItemJacket}, LoopCount: 1, MaxGearItems: 3},
			crisis: models.ElementAir,
		},
		{
			name:   "phone counts as navigation",
			adv:    Adventure{Inventory: []models.ItemID{models.ItemWaterBottle, models.ItemJacket, models.ItemPhone}, LoopCount: 2, MaxGearItems: 3},
			crisis: models.ElementNone,
		},
		{
			name: "water buff does not cover dehydration",
			adv: Adventure{
				Stats:        models.PlayerStats{SaverBuff: models.ElementWater},
				MaxGearItems: 2,
			},
			crisis: models.ElementFire,
		},
		{
			name: "fire buff wards dehydration only",
			adv: Adventure{
				Stats:        models.PlayerStats{SaverBuff: models.ElementFire},
				MaxGearItems: 2,
			},
			crisis: models.ElementWater,
		},
		{
			name: "air buff wards navigation",
			adv: Adventure{
				Stats:        models.PlayerStats{SaverBuff: models.ElementAir},
				Inventory:    []models.ItemID{models.ItemWaterBottle, models.ItemJacket},
				LoopCount:    1,
				MaxGearItems: 3,
			},
			crisis: models.ElementNone,
		},
		{
			name:   "already rescued skips gear checks",
			adv:    Adventure{AlreadyRescued: true, CustomMessage: "Relief.", MaxGearItems: 2},
			crisis: models.ElementNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resolve(tt.adv)
			if out.Crisis != tt.crisis {
				t.Errorf("Expected crisis %q, got %q", tt.crisis, out.Crisis)
			}
			if out.Narrative == "" {
				t.Errorf("Expected a narrative line")
			}
			if !out.Success() && len(out.Unlocks) != 0 {
				t.Errorf("Expected no unlocks on crisis, got %v", out.Unlocks)
			}
		})
	}
}

func TestResolveAchievements(t *testing.T) {
	out := Resolve(Adventure{
		Inventory:    []models.ItemID{models.ItemWaterBottle, models.ItemJacket},
		MaxGearItems: 2,
	})
	if !out.Success() {
		t.Fatalf("Expected success, got crisis %q", out.Crisis)
	}
	want := []models.AchievementID{models.AchievementSurvivor, models.AchievementPrepared}
	if !slices.Equal(out.Unlocks, want) {
		t.Errorf("Expected unlocks %v, got %v", want, out.Unlocks)
	}
	if out.Narrative != SummitMessage {
		t.Errorf("Expected summit line, got %q", out.Narrative)
	}

	social := Resolve(Adventure{
		Inventory:     []models.ItemID{models.ItemWaterBottle, models.ItemJacket},
		IsWithFriends: true,
		LoopCount:     0,
		MaxGearItems:  3,
	})
	want = []models.AchievementID{models.AchievementSurvivor, models.AchievementSocial}
	if !slices.Equal(social.Unlocks, want) {
		t.Errorf("Expected unlocks %v, got %v", want, social.Unlocks)
	}
}

func TestResolveUsesCustomMessage(t *testing.T) {
	out := Resolve(Adventure{AlreadyRescued: true, CustomMessage: "You use the Poles.", MaxGearItems: 2})
	if out.Narrative != "You use the Poles." {
		t.Errorf("Expected custom message, got %q", out.Narrative)
	}
}
