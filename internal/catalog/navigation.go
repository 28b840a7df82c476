package catalog

import "github.com/MrSnakeDoc/confessio/internal/domain"

// Navigation returns the outline of c. Documents without an outline get a
// single entry that opens the whole document.
func Navigation(cat *domain.Catalog, c domain.Confession) []domain.NavItem {
	if items, ok := cat.Outlines[c.ID]; ok && len(items) > 0 {
		out := make([]domain.NavItem, len(items))
		copy(out, items)
		return out
	}
	return []domain.NavItem{{Label: "Read Document", Reference: c.ShortTitle}}
}
