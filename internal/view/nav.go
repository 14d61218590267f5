package view

import "github.com/camdenmotors/dealerweb/internal/model"

// NavItem is one entry of the classification navigation bar rendered on
// every page.
type NavItem struct {
	ID   uint64
	Name string
}

// NavFrom converts the classification list into navigation items.
func NavFrom(classifications []*model.Classification) []NavItem {
	items := make([]NavItem, 0, len(classifications))
	for _, c := range classifications {
		items = append(items, NavItem{ID: c.ID, Name: c.Name})
	}
	return items
}
