// Package catalog holds the in-memory warehouse catalog: items, slots,
// and the active item-to-slot assignments, plus the compatibility rules
// that decide whether an item may occupy a slot.
package catalog

// SlotStatus represents the occupancy state of a slot
type SlotStatus string

const (
	StatusEmpty    SlotStatus = "empty"
	StatusOccupied SlotStatus = "occupied"
	StatusReserved SlotStatus = "reserved"
)

// SlotType represents the handling class of a slot
type SlotType string

const (
	TypeStandard    SlotType = "standard"
	TypeColdStorage SlotType = "cold_storage"
	TypeHazmat      SlotType = "hazmat"
	TypeOversized   SlotType = "oversized"
)

// SlotTypes lists all slot types in breakdown order
var SlotTypes = []SlotType{TypeStandard, TypeColdStorage, TypeHazmat, TypeOversized}

// Zones lists the warehouse zones in layout order
var Zones = []string{"A", "B", "C"}

// TempFrozen is the only temperature requirement the rules constrain
const TempFrozen = "frozen"

// Dimensions holds a bounding box in centimeters
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Item is a physical good stored in the warehouse. Items are immutable
// after seeding; only their assignment state changes.
type Item struct {
	ID              string     `json:"item_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Weight          float64    `json:"weight"` // kg
	Dimensions      Dimensions `json:"dimensions"`
	TempRequirement string     `json:"temperature_requirement,omitempty"`
	Hazardous       bool       `json:"is_hazardous"`
}

// Slot is a uniquely identified storage location. IDs are shaped
// ZONE-AISLE-LEVEL-POSITION with zero-padded numeric components.
type Slot struct {
	ID             string     `json:"slot_id"`
	Zone           string     `json:"zone"`
	Aisle          string     `json:"aisle"`
	Level          int        `json:"level"`
	Position       int        `json:"position"`
	Type           SlotType   `json:"slot_type"`
	MaxWeight      float64    `json:"max_weight"` // kg
	Dimensions     Dimensions `json:"dimensions"`
	Status         SlotStatus `json:"status"`
	AssignedItemID string     `json:"assigned_item_id,omitempty"`
}

// Assignment is the active binding of one item to one slot
type Assignment struct {
	SlotID       string `json:"slot_id"`
	ItemID       string `json:"item_id"`
	AssignedDate string `json:"assigned_date"`
	Quantity     int    `json:"quantity"`
}
