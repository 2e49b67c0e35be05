// Package rules holds the pure decisions the game controller folds into
// its snapshots: which gear rescues a crisis, and how a finished hike ends.
package rules

import "github.com/JasLovesSleeping/looping-trail-1.0/internal/models"

// RescueItems returns the items that rescue a crisis of element e.
func RescueItems(e models.Element) []models.ItemID {
	return models.RescueTable(e)
}

// ItemRescues reports whether item pulls the player out of a crisis of element e.
func ItemRescues(e models.Element, item models.ItemID) bool {
	return models.Contains(models.RescueTable(e), item)
}

// BuffRescues reports whether the held saver buff matches the crisis.
func BuffRescues(e models.Element, buff models.Element) bool {
	return buff != models.ElementNone && buff == e
}

// RescueOptions is what the bag check offers during a crisis.
type RescueOptions struct {
	Items []models.ItemID // in inventory order
	Buff  bool
}

// Any reports whether at least one rescue is available.
func (o RescueOptions) Any() bool {
	return o.Buff || len(o.Items) > 0
}

// Options lists every rescue available for crisis from inventory and buff.
// Items are never consumed, so the same item may rescue again later.
func Options(crisis models.Element, inventory []models.ItemID, buff models.Element) RescueOptions {
	var opts RescueOptions
	for _, id := range inventory {
		if ItemRescues(crisis, id) {
			opts.Items = append(opts.Items, id)
		}
	}
	opts.Buff = BuffRescues(crisis, buff)
	return opts
}
