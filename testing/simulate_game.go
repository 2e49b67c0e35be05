package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/card"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/config"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/engine"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/hike"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/mentor"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/rules"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxSteps = 200

// A careless hiker who packs for looks until Ether asks the right question.
var gearPlan = [][]models.ItemID{
	{models.ItemSunglasses, models.ItemPhone},
	{models.ItemSunglasses, models.ItemWhistle, models.ItemPoles},
	{models.ItemPhone, models.ItemJacket, models.ItemFirstAid},
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 7
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))

	var guide mentor.Mentor = mentor.Scripted{}
	var playerModel *genai.GenerativeModel
	if cfg.MentorEnabled() {
		gemini, err := mentor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create mentor: %v", err)
		}
		defer gemini.Close()
		guide = mentor.Fallback{Primary: gemini, Backup: mentor.Scripted{}}

		// Initialize the Player LLM
		playerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer playerClient.Close()
		playerModel = playerClient.GenerativeModel(cfg.GeminiModel)
	}

	eng := engine.NewEngine(log.New(os.Stdout, "  engine: ", 0))
	var setbacks []string

	for step := 1; step <= maxSteps; step++ {
		st := eng.State()
		if st.Phase == models.PhaseEndingWin {
			fmt.Printf("--- Summit reached after %d loops ---\n", st.LoopCount)
			fmt.Println(st.NarrativeText)
			fmt.Println(card.New("simulation", st).Markdown())
			return
		}

		if st.Crisis != nil {
			fmt.Printf("Crisis %s: %s\n", st.Crisis.Element, st.Crisis.Message)
			opts := rules.Options(st.Crisis.Element, st.Inventory, st.Stats.SaverBuff)
			switch {
			case len(opts.Items) > 0:
				fmt.Printf("Player uses %s\n", opts.Items[0])
				eng.Dispatch(engine.RescueWith(opts.Items[0]))
			case opts.Buff:
				fmt.Println("Player trusts Ether's gift")
				eng.Dispatch(engine.RescueWithBuff())
			default:
				fmt.Println("Player gives up")
				setbacks = append(setbacks, st.Crisis.Message)
				eng.Dispatch(engine.GiveUp{})
			}
			continue
		}

		switch st.Phase {
		case models.PhaseStartMenu:
			eng.Dispatch(engine.StartIntro{})
		case models.PhaseIntro:
			eng.Dispatch(engine.ChooseCompanionship{WithFriends: false})
		case models.PhaseCh1Choice:
			eng.Dispatch(engine.ChooseWeather{Wait: true})
		case models.PhaseGearSelection:
			plan := gearPlan[min(st.LoopCount, len(gearPlan)-1)]
			for _, id := range plan {
				eng.Dispatch(engine.ToggleGearItem{Item: id})
			}
			fmt.Printf("Player packs %v\n", eng.Game().Selection)
			eng.Dispatch(engine.ConfirmGear{})
		case models.PhaseHikingGame:
			res := playHike(rng)
			fmt.Printf("Hike %s (energy %.0f, mood %.0f)\n", res.Status, res.Stats.Energy, res.Stats.Mood)
			eng.Dispatch(engine.CompleteHike{Stats: res.Stats, FailReason: res.FailReason})
		case models.PhaseCh1Resolution, models.PhaseCh2Resolution:
			fmt.Println(st.NarrativeText)
			eng.Dispatch(engine.LoopViaEther{})
		case models.PhaseEtherLoop:
			lesson, err := guide.Lesson(ctx, mentor.SituationFor(st))
			if err != nil {
				fmt.Printf("Warning: no lesson: %v\n", err)
			}
			fmt.Printf("Ether: %s\n", lesson)
			eng.Dispatch(engine.AcceptEtherGift{})
		case models.PhaseEtherPackage:
			pick := st.Setback
			if !pick.Injurious() {
				pick = models.ElementEarth
			}
			fmt.Printf("Player takes the %s package\n", pick)
			eng.Dispatch(engine.SelectPackage{Element: pick})
		case models.PhaseCh3Reflection:
			answer := reflect(ctx, playerModel, st, setbacks)
			fmt.Printf("Player answers: %s\n", answer)
			eng.Dispatch(engine.SubmitReflection{Text: answer})
		}
	}
	fmt.Println("Simulation stopped without reaching the summit")
}

// playHike runs the minigame with a hiker who jumps whenever a hazard is close.
func playHike(rng *rand.Rand) hike.Result {
	run := hike.New(hike.DefaultConfig(), rng)
	cfg := run.Config()
	for !run.Done() {
		for _, o := range run.Snapshot().Obstacles {
			ahead := o.X - cfg.PlayerX
			if o.Kind != hike.Star && ahead > cfg.HitboxHalfWidth && ahead < cfg.HitboxHalfWidth+2*cfg.ScrollSpeed {
				run.Jump()
			}
		}
		run.Tick()
	}
	return run.Result()
}

func reflect(ctx context.Context, model *genai.GenerativeModel, st models.GameState, setbacks []string) string {
	const fallback = "I wish I had brought a water bottle"
	if model == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`You are playing a hiking story game. Your hikes went wrong like this:
%s

A spirit asks: %q
Answer in one short sentence naming a single piece of gear. Return ONLY the answer.`,
		"- "+strings.Join(setbacks, "\n- "),
		st.NarrativeText,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return fallback
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return fallback
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
