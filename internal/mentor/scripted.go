package mentor

import (
	"context"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
)

var scriptedLessons = map[models.Element]string{
	models.ElementEarth: "The ground forgives those who carry something to lean on.",
	models.ElementFire:  "Thirst arrives long before you notice it. Drink before the climb asks.",
	models.ElementWater: "The summit keeps its own weather. Dress for the top, not the trailhead.",
	models.ElementAir:   "Every fork looks the same when you carry no way to read it.",
}

const scriptedDefault = "You are not lost. You are simply early."

// Scripted is the offline mentor. It never fails.
type Scripted struct{}

// Lesson returns the fixed line for the setback.
func (Scripted) Lesson(_ context.Context, s Situation) (string, error) {
	if line, ok := scriptedLessons[s.Setback]; ok {
		return line, nil
	}
	return scriptedDefault, nil
}
