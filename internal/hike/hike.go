// Package hike runs the side-scrolling trail minigame: a fixed-length race
// where obstacles scroll toward the hiker and either hurt, cheer or miss.
//
// A Run is advanced one logical tick per rendered frame. It never reads a
// clock; the random source is injected so seeded runs replay exactly.
package hike

import (
	"math/rand/v2"
	"time"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
)

// Kind is the type of an obstacle on the trail.
type Kind string

const (
	Rock     Kind = "ROCK"
	Mushroom Kind = "MUSHROOM"
	Star     Kind = "STAR"
	Bear     Kind = "BEAR"
)

const (
	MsgAnkle    = "ANKLE SNAPPED!"
	MsgMushroom = "POISON MUSHROOM!"
	MsgBear     = "BEAR ATTACK!"
	MsgView     = "BEAUTIFUL VIEW! (+20 Mood)"
	MsgComplete = "TRAIL COMPLETE!"
)

// Obstacle is something on the trail at horizontal position X (0..100).
type Obstacle struct {
	ID   int
	Kind Kind
	X    float64
	Hit  bool // a mushroom that already cost energy
}

// Config holds the trail tuning. Distances are in percent of the screen.
type Config struct {
	TrailLength     float64
	Speed           float64 // distance per tick
	SpawnChance     float64 // per tick, outside cooldown
	SpawnCooldown   int     // ticks
	SpawnX          float64
	ScrollSpeed     float64 // obstacle movement per tick
	DespawnX        float64 // obstacles at or left of this are dropped
	PlayerX         float64
	HitboxHalfWidth float64
	JumpTicks       int
	StarMood        float64
	StarEnergy      float64
	MushroomEnergy  float64
	Drain           float64 // energy lost every tick
	HazardTTL       int     // ticks a hazard message stays up
	ViewTTL         int     // ticks the star message stays up
}

// DefaultConfig is the trail as tuned for 60 frames per second.
func DefaultConfig() Config {
	return Config{
		TrailLength:     100,
		Speed:           0.12,
		SpawnChance:     0.012,
		SpawnCooldown:   100,
		SpawnX:          100,
		ScrollSpeed:     0.6,
		DespawnX:        -15,
		PlayerX:         20,
		HitboxHalfWidth: 6,
		JumpTicks:       TicksFor(800*time.Millisecond, 60),
		StarMood:        20,
		StarEnergy:      5,
		MushroomEnergy:  35,
		Drain:           0.05,
		HazardTTL:       TicksFor(1500*time.Millisecond, 60),
		ViewTTL:         TicksFor(time.Second, 60),
	}
}

// TicksFor converts a duration into whole frames at fps.
func TicksFor(d time.Duration, fps int) int {
	if fps <= 0 {
		return 0
	}
	return int(d * time.Duration(fps) / time.Second)
}

// Status reports whether a run is still going.
type Status int

const (
	Running Status = iota
	Won
	Failed
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Failed:
		return "failed"
	default:
		return "running"
	}
}

// Result is what a finished run reports to the game controller.
type Result struct {
	Status     Status
	Stats      models.PlayerStats
	FailReason models.Element
}

// Snapshot is the minigame-local state a renderer draws.
type Snapshot struct {
	Distance  float64
	Progress  float64 // 0..1
	Jumping   bool
	Obstacles []Obstacle
	Stats     models.PlayerStats
	Message   string
	Status    Status
	Ticks     int
}

// Run is one attempt at the trail.
type Run struct {
	cfg Config
	rng *rand.Rand

	distance  float64
	jumpLeft  int
	cooldown  int
	obstacles []Obstacle
	nextID    int
	stats     models.PlayerStats
	ticks     int

	message    string
	messageTTL int            // 0 keeps the message until replaced
	cause      models.Element // hazard behind the live message

	result Result
}

// New starts a run. The hiker always sets off with full energy and a low
// mood, whatever happened before the trail.
func New(cfg Config, rng *rand.Rand) *Run {
	return &Run{
		cfg:   cfg,
		rng:   rng,
		stats: models.PlayerStats{Energy: 100, Mood: 30, Outfit: models.OutfitHiking},
	}
}

// Jump starts a jump. It reports false when already airborne or finished.
func (r *Run) Jump() bool {
	if r.result.Status != Running || r.jumpLeft > 0 {
		return false
	}
	r.jumpLeft = r.cfg.JumpTicks
	return true
}

// Jumping reports whether the hiker is airborne.
func (r *Run) Jumping() bool { return r.jumpLeft > 0 }

// Done reports whether the run has finished.
func (r *Run) Done() bool { return r.result.Status != Running }

// Result returns the outcome; Status is Running until the run ends.
func (r *Run) Result() Result { return r.result }

// Tick advances the trail by one frame and returns the current result.
// Ticks after the run has finished change nothing.
func (r *Run) Tick() Result {
	if r.result.Status != Running {
		return r.result
	}
	r.ticks++
	r.ageMessage()

	r.distance += r.cfg.Speed
	if r.distance >= r.cfg.TrailLength {
		r.distance = r.cfg.TrailLength
		r.say(MsgComplete, 0, models.ElementNone)
		r.result = Result{Status: Won, Stats: r.stats}
		return r.result
	}

	if r.cooldown > 0 {
		r.cooldown--
	}
	if r.cooldown == 0 && r.rng.Float64() < r.cfg.SpawnChance {
		r.spawn()
	}

	r.scroll()
	r.collide()

	r.stats.Energy = max(0, r.stats.Energy-r.cfg.Drain)

	if r.jumpLeft > 0 {
		r.jumpLeft--
	}

	if r.stats.Depleted() {
		r.result = Result{Status: Failed, Stats: r.stats, FailReason: r.failReason()}
	}
	return r.result
}

// Snapshot copies the state for rendering.
func (r *Run) Snapshot() Snapshot {
	return Snapshot{
		Distance:  r.distance,
		Progress:  r.distance / r.cfg.TrailLength,
		Jumping:   r.Jumping(),
		Obstacles: append([]Obstacle(nil), r.obstacles...),
		Stats:     r.stats,
		Message:   r.message,
		Status:    r.result.Status,
		Ticks:     r.ticks,
	}
}

// Config returns the tuning the run was created with.
func (r *Run) Config() Config { return r.cfg }

func (r *Run) spawn() {
	kind := Rock
	switch roll := r.rng.Float64(); {
	case roll > 0.95:
		kind = Bear
	case roll > 0.75:
		kind = Mushroom
	case roll > 0.50:
		kind = Star
	}
	r.nextID++
	r.obstacles = append(r.obstacles, Obstacle{ID: r.nextID, Kind: kind, X: r.cfg.SpawnX})
	r.cooldown = r.cfg.SpawnCooldown
}

func (r *Run) scroll() {
	kept := r.obstacles[:0]
	for _, o := range r.obstacles {
		o.X -= r.cfg.ScrollSpeed
		if o.X > r.cfg.DespawnX {
			kept = append(kept, o)
		}
	}
	r.obstacles = kept
}

func (r *Run) overlaps(o Obstacle) bool {
	return o.X > r.cfg.PlayerX-r.cfg.HitboxHalfWidth && o.X < r.cfg.PlayerX+r.cfg.HitboxHalfWidth
}

func (r *Run) collide() {
	kept := r.obstacles[:0]
	for _, o := range r.obstacles {
		if !r.overlaps(o) {
			kept = append(kept, o)
			continue
		}
		if o.Kind == Star {
			r.stats.Mood = min(100, r.stats.Mood+r.cfg.StarMood)
			r.stats.Energy = min(100, r.stats.Energy+r.cfg.StarEnergy)
			r.say(MsgView, r.cfg.ViewTTL, models.ElementNone)
			continue
		}
		if r.Jumping() {
			kept = append(kept, o)
			continue
		}
		switch o.Kind {
		case Rock:
			r.stats.Energy, r.stats.Mood = 0, 0
			r.say(MsgAnkle, r.cfg.HazardTTL, models.ElementEarth)
			continue
		case Bear:
			r.stats.Energy, r.stats.Mood = 0, 0
			r.say(MsgBear, r.cfg.HazardTTL, models.ElementAir)
			continue
		case Mushroom:
			if !o.Hit {
				o.Hit = true
				r.stats.Energy -= r.cfg.MushroomEnergy
				r.say(MsgMushroom, r.cfg.HazardTTL, models.ElementFire)
			}
		}
		kept = append(kept, o)
	}
	r.obstacles = kept
}

func (r *Run) say(msg string, ttl int, cause models.Element) {
	r.message = msg
	r.messageTTL = ttl
	r.cause = cause
}

func (r *Run) ageMessage() {
	if r.message == "" || r.messageTTL == 0 {
		return
	}
	r.messageTTL--
	if r.messageTTL == 0 {
		r.message = ""
		r.cause = models.ElementNone
	}
}

func (r *Run) failReason() models.Element {
	if r.cause != models.ElementNone {
		return r.cause
	}
	if r.stats.Energy <= 0 {
		return models.ElementFire
	}
	return models.ElementAir
}
