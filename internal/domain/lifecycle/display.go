package lifecycle

import "orderflow/internal/domain/entities"

// DisplayItem is a live line as shown to the actors. Replacement lines carry
// the line they superseded for audit.
type DisplayItem struct {
	Line     entities.LineItem
	Original *entities.LineItem
}

// DisplayItems hides superseded and cancelled lines and attaches each
// replacement's original. Lines stay in their stored order.
func DisplayItems(lines []entities.LineItem) []DisplayItem {
	byID := make(map[string]entities.LineItem, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}
	out := make([]DisplayItem, 0, len(lines))
	for _, l := range lines {
		if !l.IsLive() {
			continue
		}
		item := DisplayItem{Line: l.Clone()}
		if l.ReplacesLineID != "" {
			if orig, ok := byID[l.ReplacesLineID]; ok {
				orig = orig.Clone()
				item.Original = &orig
			}
		}
		out = append(out, item)
	}
	return out
}
