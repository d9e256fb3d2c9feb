// Package tools implements the warehouse actions the agent can take.
// Every tool returns a Result envelope; errors never escape a tool call.
package tools

import (
	"fmt"
	"strings"

	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/logging"
)

// Action tags used in Result envelopes
const (
	ActionChangeAssignment = "change_assignment"
	ActionFindSlots        = "find_slots"
	ActionWarehouseStatus  = "warehouse_status"
	ActionUnknown          = "unknown"
)

// findSlotsLimit caps the detail list; the reported total is uncapped
const findSlotsLimit = 20

// recentAssignmentsLimit caps the status report's assignment list
const recentAssignmentsLimit = 10

// Result is the common envelope returned by every tool. Success=false
// carries a descriptive message; there is no separate error channel.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Action  string `json:"action"`

	// change_assignment
	SlotInfo *SlotInfo `json:"slot_info,omitempty"`
	ItemInfo *ItemInfo `json:"item_info,omitempty"`

	// find_slots
	TotalSlots     int          `json:"total_slots,omitempty"`
	Slots          []SlotDetail `json:"slots,omitempty"`
	FiltersApplied *Filters     `json:"filters_applied,omitempty"`

	// warehouse_status
	Summary           *OccupancySummary    `json:"summary,omitempty"`
	ZoneBreakdown     map[string]ZoneStats `json:"zone_breakdown,omitempty"`
	SlotTypeBreakdown map[string]ZoneStats `json:"slot_type_breakdown,omitempty"`
	RecentAssignments []RecentAssignment   `json:"recent_assignments,omitempty"`
}

// SlotInfo describes the location of an assigned slot
type SlotInfo struct {
	SlotID   string `json:"slot_id"`
	Zone     string `json:"zone"`
	Aisle    string `json:"aisle"`
	Level    int    `json:"level"`
	Position int    `json:"position"`
}

// ItemInfo describes an item in an assignment result
type ItemInfo struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SlotDetail describes an available slot in a search result
type SlotDetail struct {
	SlotID     string             `json:"slot_id"`
	Zone       string             `json:"zone"`
	Aisle      string             `json:"aisle"`
	Level      int                `json:"level"`
	Position   int                `json:"position"`
	SlotType   string             `json:"slot_type"`
	MaxWeight  float64            `json:"max_weight"`
	Dimensions catalog.Dimensions `json:"dimensions"`
}

// Filters echoes the filters a slot search applied
type Filters struct {
	ItemID   string `json:"item_id,omitempty"`
	Zone     string `json:"zone,omitempty"`
	SlotType string `json:"slot_type,omitempty"`
}

// OccupancySummary holds the warehouse-wide occupancy totals
type OccupancySummary struct {
	TotalSlots    int     `json:"total_slots"`
	OccupiedSlots int     `json:"occupied_slots"`
	EmptySlots    int     `json:"empty_slots"`
	OccupancyRate float64 `json:"overall_occupancy_rate"` // percent
}

// ZoneStats holds per-zone or per-slot-type occupancy counts
type ZoneStats struct {
	Total         int     `json:"total"`
	Occupied      int     `json:"occupied"`
	Empty         int     `json:"empty"`
	OccupancyRate float64 `json:"occupancy_rate"` // percent
}

// RecentAssignment pairs an occupied slot with its item
type RecentAssignment struct {
	SlotID       string `json:"slot_id"`
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	ItemCategory string `json:"item_category"`
}

// Toolbox exposes the warehouse tools over a catalog store
type Toolbox struct {
	store *catalog.Store
}

// New creates a toolbox backed by the given store
func New(store *catalog.Store) *Toolbox {
	return &Toolbox{store: store}
}

// failure builds a Success=false envelope
func failure(action, format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...), Action: action}
}

// recoverResult converts a panic into an Internal-error envelope so no
// failure ever escapes a tool call.
func recoverResult(action string, result *Result) {
	if r := recover(); r != nil {
		logging.Warn("tools", "recovered panic in %s: %v", action, r)
		*result = failure(action, "Error executing %s: %v", action, r)
	}
}

// ChangeSlotAssignment assigns or reassigns an item to a specific slot.
// Occupancy by a different item is checked here, before delegating to the
// store, so the conflict message can name the current occupant.
func (t *Toolbox) ChangeSlotAssignment(slotID, itemID string) (result Result) {
	defer recoverResult(ActionChangeAssignment, &result)

	slot := t.store.Slot(slotID)
	if slot == nil {
		return failure(ActionChangeAssignment, "Slot %s not found", slotID)
	}
	item := t.store.Item(itemID)
	if item == nil {
		return failure(ActionChangeAssignment, "Item %s not found", itemID)
	}

	if slot.Status == catalog.StatusOccupied && slot.AssignedItemID != itemID {
		currentName := "Unknown Item"
		if current := t.store.Item(slot.AssignedItemID); current != nil {
			currentName = current.Name
		}
		return failure(ActionChangeAssignment, "Slot %s is already occupied by %s (%s)",
			slotID, currentName, slot.AssignedItemID)
	}

	if !t.store.Assign(slotID, itemID) {
		// the store does not report which compatibility rule failed
		return failure(ActionChangeAssignment,
			"Cannot assign %s to slot %s. Item may not be compatible with slot requirements.",
			item.Name, slotID)
	}

	logging.Info("tools", "assigned %s to %s", itemID, slotID)

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully assigned %s (%s) to slot %s", item.Name, itemID, slotID),
		Action:  ActionChangeAssignment,
		SlotInfo: &SlotInfo{
			SlotID:   slot.ID,
			Zone:     slot.Zone,
			Aisle:    slot.Aisle,
			Level:    slot.Level,
			Position: slot.Position,
		},
		ItemInfo: &ItemInfo{
			ItemID:   item.ID,
			Name:     item.Name,
			Category: item.Category,
		},
	}
}

// FindAvailableSlots lists empty slots, optionally narrowed to slots
// compatible with an item, then filtered by zone and slot type. The
// detail list is capped at 20 entries; TotalSlots reports the full count.
func (t *Toolbox) FindAvailableSlots(itemID, zone, slotType string) (result Result) {
	defer recoverResult(ActionFindSlots, &result)

	var slots []*catalog.Slot
	if itemID != "" {
		if !t.store.HasItem(itemID) {
			return failure(ActionFindSlots, "Item %s not found", itemID)
		}
		slots = t.store.SuitableSlotsForItem(itemID)
	} else {
		slots = t.store.EmptySlots()
	}

	if zone != "" {
		var filtered []*catalog.Slot
		for _, slot := range slots {
			if strings.EqualFold(slot.Zone, zone) {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}

	if slotType != "" {
		want := strings.ToLower(slotType)
		var filtered []*catalog.Slot
		for _, slot := range slots {
			if string(slot.Type) == want {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}

	details := make([]SlotDetail, 0, findSlotsLimit)
	for _, slot := range slots {
		if len(details) == findSlotsLimit {
			break
		}
		details = append(details, SlotDetail{
			SlotID:     slot.ID,
			Zone:       slot.Zone,
			Aisle:      slot.Aisle,
			Level:      slot.Level,
			Position:   slot.Position,
			SlotType:   string(slot.Type),
			MaxWeight:  slot.MaxWeight,
			Dimensions: slot.Dimensions,
		})
	}

	forItem := ""
	if itemID != "" {
		if item := t.store.Item(itemID); item != nil {
			forItem = " for " + item.Name
		}
	}

	return Result{
		Success:        true,
		Message:        fmt.Sprintf("Found %d available slots%s", len(slots), forItem),
		Action:         ActionFindSlots,
		TotalSlots:     len(slots),
		Slots:          details,
		FiltersApplied: &Filters{ItemID: itemID, Zone: zone, SlotType: slotType},
	}
}

// WarehouseStatus reports occupancy totals overall, per zone, and per
// slot type, plus the first few occupied slots as "recent" assignments.
// No assignment timestamp exists beyond a placeholder date, so the list
// is store order, not time order.
func (t *Toolbox) WarehouseStatus() (result Result) {
	defer recoverResult(ActionWarehouseStatus, &result)

	all := t.store.Slots()
	occupied := t.store.OccupiedSlots()
	empty := t.store.EmptySlots()

	zoneStats := make(map[string]ZoneStats, len(catalog.Zones))
	for _, zone := range catalog.Zones {
		total, occ := 0, 0
		for _, slot := range all {
			if slot.Zone != zone {
				continue
			}
			total++
			if slot.Status == catalog.StatusOccupied {
				occ++
			}
		}
		zoneStats[zone] = makeStats(total, occ)
	}

	typeStats := make(map[string]ZoneStats, len(catalog.SlotTypes))
	for _, typ := range catalog.SlotTypes {
		total, occ := 0, 0
		for _, slot := range all {
			if slot.Type != typ {
				continue
			}
			total++
			if slot.Status == catalog.StatusOccupied {
				occ++
			}
		}
		typeStats[string(typ)] = makeStats(total, occ)
	}

	var recent []RecentAssignment
	for _, slot := range occupied {
		if len(recent) == recentAssignmentsLimit {
			break
		}
		item := t.store.Item(slot.AssignedItemID)
		if item == nil {
			continue
		}
		recent = append(recent, RecentAssignment{
			SlotID:       slot.ID,
			ItemID:       item.ID,
			ItemName:     item.Name,
			ItemCategory: item.Category,
		})
	}

	return Result{
		Success:           true,
		Message:           "Warehouse status retrieved successfully",
		Action:            ActionWarehouseStatus,
		Summary:           summaryOf(len(all), len(occupied), len(empty)),
		ZoneBreakdown:     zoneStats,
		SlotTypeBreakdown: typeStats,
		RecentAssignments: recent,
	}
}

func makeStats(total, occupied int) ZoneStats {
	stats := ZoneStats{Total: total, Occupied: occupied, Empty: total - occupied}
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total) * 100
	}
	return stats
}

func summaryOf(total, occupied, empty int) *OccupancySummary {
	summary := &OccupancySummary{TotalSlots: total, OccupiedSlots: occupied, EmptySlots: empty}
	if total > 0 {
		summary.OccupancyRate = float64(occupied) / float64(total) * 100
	}
	return summary
}
