// Package mentor produces Ether's lesson line between loops.
package mentor

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
)

//go:embed prompts/lesson.txt
var lessonPrompt string

var lessonTmpl = template.Must(template.New("lesson").Parse(lessonPrompt))

// Mentor speaks a lesson for the hiker's latest failure.
type Mentor interface {
	Lesson(ctx context.Context, s Situation) (string, error)
}

// Situation is the part of a run the mentor reacts to.
type Situation struct {
	Attempt int
	Setback models.Element
	Packed  []string
	Buff    string
}

// SituationFor describes st for the mentor.
func SituationFor(st models.GameState) Situation {
	s := Situation{Attempt: st.LoopCount, Setback: st.Setback}
	for _, id := range st.Inventory {
		if it, ok := models.LookupItem(id); ok {
			s.Packed = append(s.Packed, it.Name)
		}
	}
	if pkg, ok := models.LookupPackage(st.Stats.SaverBuff); ok {
		s.Buff = pkg.Item
	}
	return s
}

// BuildPrompt renders the lesson prompt for s.
func BuildPrompt(s Situation) (string, error) {
	data := struct {
		Situation
		Setback string
	}{Situation: s, Setback: setbackText(s.Setback)}

	var buf bytes.Buffer
	if err := lessonTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render lesson prompt: %w", err)
	}
	return buf.String(), nil
}

func setbackText(e models.Element) string {
	switch e {
	case models.ElementEarth:
		return "a twisted ankle on loose rock"
	case models.ElementFire:
		return "exhaustion and dehydration"
	case models.ElementWater:
		return "freezing cold"
	case models.ElementAir:
		return "getting lost"
	}
	return "they gave up"
}

// cleanLine trims model output down to a single displayable line.
func cleanLine(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.Trim(text, "\"' ")
}
