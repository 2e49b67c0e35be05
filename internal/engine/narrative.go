package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/JasLovesSleeping/looping-trail-1.0/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed narrative/story.yaml
var storyYAML []byte

// Story holds every fixed or templated line the controller can display.
type Story struct {
	Intro            string                    `yaml:"intro"`
	WithFriends      string                    `yaml:"with_friends"`
	Solo             string                    `yaml:"solo"`
	RushOut          string                    `yaml:"rush_out"`
	WaitForWeather   string                    `yaml:"wait_for_weather"`
	HikeFailDefault  string                    `yaml:"hike_fail_default"`
	HikeFail         map[models.Element]string `yaml:"hike_fail"`
	GiveUpSuffix     map[models.Element]string `yaml:"give_up_suffix"`
	RescueItem       string                    `yaml:"rescue_item"`
	RescueBuff       string                    `yaml:"rescue_buff"`
	ReflectionPrompt string                    `yaml:"reflection_prompt"`
	EtherLoop        string                    `yaml:"ether_loop"`
	EtherGift        string                    `yaml:"ether_gift"`
	WakeUp           string                    `yaml:"wake_up"`
	ReflectionWin    string                    `yaml:"reflection_win"`
	ReflectionRebuff string                    `yaml:"reflection_rebuff"`

	rescueItem *template.Template
	rescueBuff *template.Template
}

var story = mustLoadStory(storyYAML)

// ParseStory decodes a narrative document and compiles its templates.
func ParseStory(data []byte) (*Story, error) {
	var s Story
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse story YAML: %w", err)
	}
	var err error
	if s.rescueItem, err = template.New("rescue_item").Parse(s.RescueItem); err != nil {
		return nil, fmt.Errorf("rescue_item: %w", err)
	}
	if s.rescueBuff, err = template.New("rescue_buff").Parse(s.RescueBuff); err != nil {
		return nil, fmt.Errorf("rescue_buff: %w", err)
	}
	return &s, nil
}

func mustLoadStory(data []byte) *Story {
	s, err := ParseStory(data)
	if err != nil {
		panic(err)
	}
	return s
}

// hikeFailLine is the crisis line for a failed minigame.
func (s *Story) hikeFailLine(e models.Element) string {
	if line, ok := s.HikeFail[e]; ok {
		return line
	}
	return s.HikeFailDefault
}

func (s *Story) itemRescueLine(it models.Item) string {
	return render(s.rescueItem, s.RescueItem, it)
}

func (s *Story) buffRescueLine(p models.ElementPackage) string {
	return render(s.rescueBuff, s.RescueBuff, p)
}

func render(tmpl *template.Template, raw string, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return raw
	}
	return buf.String()
}
