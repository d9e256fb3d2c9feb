package catalog

import (
	"sync"
)

const assignedDatePlaceholder = "2024-01-01"

// Store manages catalog data with thread-safe operations. Slots and items
// are created once at construction and never added or removed afterwards;
// only assignment state changes.
type Store struct {
	slots       map[string]*Slot
	items       map[string]*Item
	assignments map[string]*Assignment

	// insertion order, as generated by the seed
	slotOrder []string
	itemOrder []string

	mu sync.RWMutex
}

// NewStore creates a store seeded with the demo items, the generated
// slot grid, and the initial assignments.
func NewStore() *Store {
	s := &Store{
		slots:       make(map[string]*Slot),
		items:       make(map[string]*Item),
		assignments: make(map[string]*Assignment),
	}
	s.seed()
	return s
}

// Assign places an item in a slot. Returns false (no mutation) if either
// id is unknown or the compatibility rules reject the pair. If the item
// already holds an assignment elsewhere, that assignment is removed first
// (reassignment, not duplication). Occupancy by a different item is NOT
// checked here; callers pre-check it to surface a conflict message.
func (s *Store) Assign(slotID, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok {
		return false
	}
	item, ok := s.items[itemID]
	if !ok {
		return false
	}

	if !Compatible(slot, item) {
		return false
	}

	if current := s.findAssignment(itemID); current != nil {
		s.removeAssignment(current)
	}

	slot.Status = StatusOccupied
	slot.AssignedItemID = itemID
	s.assignments[assignmentKey(slotID, itemID)] = &Assignment{
		SlotID:       slotID,
		ItemID:       itemID,
		AssignedDate: assignedDatePlaceholder,
		Quantity:     1,
	}

	return true
}

// Unassign removes an item's active assignment. Returns false if the item
// has none.
func (s *Store) Unassign(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.findAssignment(itemID)
	if current == nil {
		return false
	}
	s.removeAssignment(current)
	return true
}

// removeAssignment clears the slot and drops the record. Caller holds the lock.
func (s *Store) removeAssignment(a *Assignment) {
	if slot, ok := s.slots[a.SlotID]; ok {
		slot.Status = StatusEmpty
		slot.AssignedItemID = ""
	}
	delete(s.assignments, assignmentKey(a.SlotID, a.ItemID))
}

// findAssignment returns the active assignment for an item, or nil.
// Caller holds the lock.
func (s *Store) findAssignment(itemID string) *Assignment {
	for _, a := range s.assignments {
		if a.ItemID == itemID {
			return a
		}
	}
	return nil
}

// AssignmentFor returns a copy of the item's active assignment, or nil
func (s *Store) AssignmentFor(itemID string) *Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findAssignment(itemID)
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

// EmptySlots returns all empty slots in layout order
func (s *Store) EmptySlots() []*Slot {
	return s.slotsByStatus(StatusEmpty)
}

// OccupiedSlots returns all occupied slots in layout order
func (s *Store) OccupiedSlots() []*Slot {
	return s.slotsByStatus(StatusOccupied)
}

func (s *Store) slotsByStatus(status SlotStatus) []*Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Slot
	for _, id := range s.slotOrder {
		if slot := s.slots[id]; slot.Status == status {
			copied := *slot
			out = append(out, &copied)
		}
	}
	return out
}

// SuitableSlotsForItem returns the empty slots the item is compatible
// with, in layout order. Unknown items get an empty result.
func (s *Store) SuitableSlotsForItem(itemID string) []*Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil
	}

	var out []*Slot
	for _, id := range s.slotOrder {
		slot := s.slots[id]
		if slot.Status == StatusEmpty && Compatible(slot, item) {
			copied := *slot
			out = append(out, &copied)
		}
	}
	return out
}

// Slot returns a copy of the slot with the given id, or nil if unknown
func (s *Store) Slot(id string) *Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil
	}
	copied := *slot
	return &copied
}

// Item returns a copy of the item with the given id, or nil if unknown
func (s *Store) Item(id string) *Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil
	}
	copied := *item
	return &copied
}

// Slots returns copies of all slots in layout order
func (s *Store) Slots() []*Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Slot, 0, len(s.slotOrder))
	for _, id := range s.slotOrder {
		copied := *s.slots[id]
		out = append(out, &copied)
	}
	return out
}

// Items returns copies of all items in seed order
func (s *Store) Items() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Item, 0, len(s.itemOrder))
	for _, id := range s.itemOrder {
		copied := *s.items[id]
		out = append(out, &copied)
	}
	return out
}

// TotalSlots returns the number of slots in the warehouse
func (s *Store) TotalSlots() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slotOrder)
}

// HasSlot reports whether a slot id exists
func (s *Store) HasSlot(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slots[id]
	return ok
}

// HasItem reports whether an item id exists
func (s *Store) HasItem(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

func assignmentKey(slotID, itemID string) string {
	return slotID + "_" + itemID
}
