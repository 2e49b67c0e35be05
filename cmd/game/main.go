package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/config"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/engine"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/hike"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/mentor"
	"github.com/JasLovesSleeping/looping-trail-1.0/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	logger := log.New(io.Discard, "", 0)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "trail")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.New(f, "["+runID[:8]+"] ", log.LstdFlags)
	}

	var guide mentor.Mentor = mentor.Scripted{}
	if cfg.MentorEnabled() {
		gemini, err := mentor.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			fmt.Printf("Error creating mentor: %v\n", err)
			os.Exit(1)
		}
		defer gemini.Close()
		guide = mentor.Fallback{
			Primary: gemini,
			Backup:  mentor.Scripted{},
			OnError: func(err error) { logger.Printf("mentor: %v", err) },
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Printf("starting run %s (seed %d, %d fps)", runID, seed, cfg.FPS)

	trail := hike.DefaultConfig()
	trail.JumpTicks = hike.TicksFor(800*time.Millisecond, cfg.FPS)
	trail.HazardTTL = hike.TicksFor(1500*time.Millisecond, cfg.FPS)
	trail.ViewTTL = hike.TicksFor(time.Second, cfg.FPS)

	err = tui.Run(tui.Options{
		Engine:    engine.NewEngine(logger),
		Mentor:    guide,
		Logger:    logger,
		RunID:     runID,
		Hike:      trail,
		Rand:      rand.New(rand.NewPCG(seed, seed^0x5eed)),
		FPS:       cfg.FPS,
		TypeDelay: cfg.TypeDelay,
		CardDir:   cfg.CardDir,
	})
	if err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
