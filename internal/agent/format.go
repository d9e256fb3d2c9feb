package agent

import (
	"fmt"
	"strings"

	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/tools"
)

// caps on the human-readable lists; the envelope carries the full data
const (
	formatSlotsLimit  = 10
	formatRecentLimit = 5
)

// formatSuccess renders a successful tool envelope as chat text
func formatSuccess(result tools.Result) string {
	switch result.Action {
	case tools.ActionChangeAssignment:
		return "✅ " + result.Message

	case tools.ActionFindSlots:
		return formatSlotList(result)

	case tools.ActionWarehouseStatus:
		return formatStatus(result)
	}
	return result.Message
}

func formatSlotList(result tools.Result) string {
	if result.TotalSlots == 0 {
		return "❌ No available slots found matching your criteria."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d available slots", result.TotalSlots)
	if result.FiltersApplied != nil && result.FiltersApplied.ItemID != "" {
		// the envelope message already carries "for <name>"; reuse it so
		// the item name needs no second lookup
		if idx := strings.Index(result.Message, " for "); idx >= 0 {
			b.WriteString(result.Message[idx:])
		}
	}
	b.WriteString(":\n\n")

	for i, slot := range result.Slots {
		if i == formatSlotsLimit {
			break
		}
		fmt.Fprintf(&b, "📦 %s - Zone %s, %s\n", slot.SlotID, slot.Zone, titleSlotType(slot.SlotType))
	}

	if result.TotalSlots > formatSlotsLimit {
		fmt.Fprintf(&b, "\n... and %d more slots", result.TotalSlots-formatSlotsLimit)
	}
	return b.String()
}

func formatStatus(result tools.Result) string {
	var b strings.Builder
	summary := result.Summary

	b.WriteString("📊 **Warehouse Status**\n\n")
	fmt.Fprintf(&b, "🏢 Total Slots: %d\n", summary.TotalSlots)
	fmt.Fprintf(&b, "📦 Occupied: %d (%.1f%%)\n", summary.OccupiedSlots, summary.OccupancyRate)
	fmt.Fprintf(&b, "🆓 Empty: %d\n\n", summary.EmptySlots)

	b.WriteString("**Zone Breakdown:**\n")
	for _, zone := range catalog.Zones {
		stats := result.ZoneBreakdown[zone]
		fmt.Fprintf(&b, "Zone %s: %d/%d (%.1f%%)\n", zone, stats.Occupied, stats.Total, stats.OccupancyRate)
	}

	if len(result.RecentAssignments) > 0 {
		b.WriteString("\n**Recent Assignments:**\n")
		for i, a := range result.RecentAssignments {
			if i == formatRecentLimit {
				break
			}
			fmt.Fprintf(&b, "• %s → %s\n", a.ItemName, a.SlotID)
		}
	}

	return b.String()
}

// titleSlotType renders "cold_storage" as "Cold Storage"
func titleSlotType(slotType string) string {
	words := strings.Split(strings.ReplaceAll(slotType, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
