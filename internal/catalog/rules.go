package catalog

// Compatible reports whether an item may occupy a slot. All four rules
// must pass: weight capacity, axis-aligned dimensions, hazmat routing,
// and cold-chain routing. A hazardous frozen item has no satisfiable
// slot type in the seed layout; that is a domain limitation, not a bug.
func Compatible(slot *Slot, item *Item) bool {
	return FitsWeight(slot, item) &&
		FitsDimensions(slot, item) &&
		FitsHazard(slot, item) &&
		FitsTemperature(slot, item)
}

// FitsWeight checks the slot's weight capacity against the item
func FitsWeight(slot *Slot, item *Item) bool {
	return item.Weight <= slot.MaxWeight
}

// FitsDimensions checks the bounding boxes axis-aligned; no rotation
// or axis permutation is considered.
func FitsDimensions(slot *Slot, item *Item) bool {
	return item.Dimensions.Length <= slot.Dimensions.Length &&
		item.Dimensions.Width <= slot.Dimensions.Width &&
		item.Dimensions.Height <= slot.Dimensions.Height
}

// FitsHazard requires hazardous items to go to hazmat slots. Non-hazardous
// items are unconstrained by this rule.
func FitsHazard(slot *Slot, item *Item) bool {
	if item.Hazardous {
		return slot.Type == TypeHazmat
	}
	return true
}

// FitsTemperature requires frozen items to go to cold storage. Any other
// temperature requirement is unconstrained by this rule.
func FitsTemperature(slot *Slot, item *Item) bool {
	if item.TempRequirement == TempFrozen {
		return slot.Type == TypeColdStorage
	}
	return true
}
