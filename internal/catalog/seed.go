package catalog

import (
	"fmt"

	"github.com/vthunder/optslot/internal/logging"
)

// seedItems is the fixed demo inventory. Scenario tests depend on these
// exact ids, names, and attributes, so treat them as frozen.
func seedItems() []*Item {
	return []*Item{
		{
			ID:         "ITEM_001",
			Name:       "Laptop Computer",
			Category:   "Electronics",
			Weight:     2.5,
			Dimensions: Dimensions{Length: 35, Width: 25, Height: 3},
		},
		{
			ID:       "ITEM_002",
			Name:     "Office Chair",
			Category: "Furniture",
			Weight:   15.0,
			// height must not exceed the uniform 100cm slot height or the
			// seed assignment below cannot land
			Dimensions: Dimensions{Length: 60, Width: 60, Height: 100},
		},
		{
			ID:         "ITEM_003",
			Name:       "Chemical Solvent",
			Category:   "Chemicals",
			Weight:     5.0,
			Dimensions: Dimensions{Length: 20, Width: 20, Height: 30},
			Hazardous:  true,
		},
		{
			ID:              "ITEM_004",
			Name:            "Frozen Food Box",
			Category:        "Food",
			Weight:          8.0,
			Dimensions:      Dimensions{Length: 40, Width: 30, Height: 20},
			TempRequirement: TempFrozen,
		},
		{
			ID:         "ITEM_005",
			Name:       "Printer Paper (Box)",
			Category:   "Office Supplies",
			Weight:     12.0,
			Dimensions: Dimensions{Length: 50, Width: 35, Height: 25},
		},
		{
			ID:         "ITEM_006",
			Name:       "Monitor 27inch",
			Category:   "Electronics",
			Weight:     6.0,
			Dimensions: Dimensions{Length: 65, Width: 45, Height: 20},
		},
	}
}

// initialAssignments are applied through the normal Assign path so the
// seed exercises the same invariants as runtime traffic.
var initialAssignments = [][2]string{
	{"A-01-01-01", "ITEM_001"}, // laptop in standard slot
	{"A-01-01-02", "ITEM_002"}, // chair in standard slot
	{"C-01-01-01", "ITEM_003"}, // solvent in hazmat slot
	{"B-01-01-01", "ITEM_004"}, // frozen food in cold storage
	{"A-02-01-01", "ITEM_005"}, // paper in standard slot
	{"A-01-02-01", "ITEM_006"}, // monitor in standard slot
}

// seed populates items, the slot grid, and the initial assignments.
// Grid: zones A/B/C x aisles 01-04 x levels 1-3 x positions 1-5 (180 slots).
// The zone determines slot type and capacity: A standard 25kg, B cold
// storage 20kg, C hazmat 30kg for positions 1-2 and oversized 50kg beyond.
func (s *Store) seed() {
	for _, item := range seedItems() {
		s.items[item.ID] = item
		s.itemOrder = append(s.itemOrder, item.ID)
	}

	aisles := []string{"01", "02", "03", "04"}
	for _, zone := range Zones {
		for _, aisle := range aisles {
			for level := 1; level <= 3; level++ {
				for position := 1; position <= 5; position++ {
					slot := &Slot{
						ID:         fmt.Sprintf("%s-%s-%02d-%02d", zone, aisle, level, position),
						Zone:       zone,
						Aisle:      aisle,
						Level:      level,
						Position:   position,
						Dimensions: Dimensions{Length: 80, Width: 60, Height: 100},
						Status:     StatusEmpty,
					}

					switch zone {
					case "A":
						slot.Type = TypeStandard
						slot.MaxWeight = 25.0
					case "B":
						slot.Type = TypeColdStorage
						slot.MaxWeight = 20.0
					default: // zone C
						if position <= 2 {
							slot.Type = TypeHazmat
							slot.MaxWeight = 30.0
						} else {
							slot.Type = TypeOversized
							slot.MaxWeight = 50.0
						}
					}

					s.slots[slot.ID] = slot
					s.slotOrder = append(s.slotOrder, slot.ID)
				}
			}
		}
	}

	for _, pair := range initialAssignments {
		slotID, itemID := pair[0], pair[1]
		if !s.Assign(slotID, itemID) {
			logging.Warn("catalog", "seed assignment rejected: %s -> %s", itemID, slotID)
		}
	}

	logging.Info("catalog", "seeded %d slots, %d items, %d assignments",
		len(s.slotOrder), len(s.itemOrder), len(s.assignments))
}
