package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Catalog is the static game content the core reads but never changes.
type Catalog struct {
	Items             []Item               `yaml:"items"`
	Packages          []ElementPackage     `yaml:"packages"`
	Achievements      []Achievement        `yaml:"achievements"`
	RescueItems       map[Element][]ItemID `yaml:"rescue_items"`
	ReflectionAnswers []string             `yaml:"reflection_answers"`
	ReflectionHints   []string             `yaml:"reflection_hints"`
}

var catalog = mustLoadCatalog(catalogYAML)

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	seen := make(map[ItemID]bool, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("catalog item %q has no id", it.Name)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("catalog item %s listed twice", it.ID)
		}
		seen[it.ID] = true
		for _, e := range it.Protects {
			if !e.Valid() {
				return nil, fmt.Errorf("catalog item %s protects against unknown element %q", it.ID, e)
			}
		}
	}
	for _, p := range c.Packages {
		if !p.Element.Injurious() {
			return nil, fmt.Errorf("package %q has invalid element %q", p.Name, p.Element)
		}
	}
	for e, ids := range c.RescueItems {
		if !e.Valid() {
			return nil, fmt.Errorf("rescue table has unknown element %q", e)
		}
		for _, id := range ids {
			if !seen[id] {
				return nil, fmt.Errorf("rescue table for %s names unknown item %s", e, id)
			}
		}
	}
	return &c, nil
}

func mustLoadCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns the item catalog in display order.
func Items() []Item {
	return append([]Item(nil), catalog.Items...)
}

// LookupItem finds an item by id.
func LookupItem(id ItemID) (Item, bool) {
	for _, it := range catalog.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// RoomItems returns the items that can be picked up in the gear room.
func RoomItems() []Item {
	var out []Item
	for _, it := range catalog.Items {
		if !it.Virtual() {
			out = append(out, it)
		}
	}
	return out
}

// Packages returns Ether's gifts in the order they are offered.
func Packages() []ElementPackage {
	return append([]ElementPackage(nil), catalog.Packages...)
}

// LookupPackage finds the package warding against e.
func LookupPackage(e Element) (ElementPackage, bool) {
	for _, p := range catalog.Packages {
		if p.Element == e {
			return p, true
		}
	}
	return ElementPackage{}, false
}

// AchievementCatalog returns a fresh, fully locked achievement list.
func AchievementCatalog() []Achievement {
	out := make([]Achievement, len(catalog.Achievements))
	for i, a := range catalog.Achievements {
		a.Unlocked = false
		out[i] = a
	}
	return out
}

// RescueTable returns the items that rescue a crisis of element e.
func RescueTable(e Element) []ItemID {
	return append([]ItemID(nil), catalog.RescueItems[e]...)
}

// ReflectionAnswers is the vocabulary Ether accepts as a lesson learned.
func ReflectionAnswers() []string {
	return append([]string(nil), catalog.ReflectionAnswers...)
}

// ReflectionHints are the suggestion chips shown under the reflection prompt.
func ReflectionHints() []string {
	return append([]string(nil), catalog.ReflectionHints...)
}
