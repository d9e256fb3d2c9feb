package tools

import "fmt"

// Spec describes a tool for registries (MCP, help text, dispatch)
type Spec struct {
	Name        string
	Description string
	Parameters  map[string]string // name -> human description
	Required    []string
	Run         func(args map[string]any) Result
}

// Registry maps tool names to their specs, preserving registration order
type Registry struct {
	specs map[string]*Spec
	order []string
}

// NewRegistry builds the registry of warehouse tools over a toolbox
func NewRegistry(tb *Toolbox) *Registry {
	r := &Registry{specs: make(map[string]*Spec)}

	r.register(&Spec{
		Name:        "change_slot_assignment",
		Description: "Assign or reassign an item to a specific warehouse slot",
		Parameters: map[string]string{
			"slot_id": "string - The ID of the slot (e.g., A-01-01-01)",
			"item_id": "string - The ID of the item (e.g., ITEM_001)",
		},
		Required: []string{"slot_id", "item_id"},
		Run: func(args map[string]any) Result {
			return tb.ChangeSlotAssignment(stringArg(args, "slot_id"), stringArg(args, "item_id"))
		},
	})

	r.register(&Spec{
		Name:        "find_available_slots",
		Description: "Find available warehouse slots, optionally filtered by item compatibility, zone, or slot type",
		Parameters: map[string]string{
			"item_id":   "string (optional) - Item ID to find compatible slots for",
			"zone":      "string (optional) - Zone filter (A, B, or C)",
			"slot_type": "string (optional) - Slot type (standard, cold_storage, hazmat, oversized)",
		},
		Run: func(args map[string]any) Result {
			return tb.FindAvailableSlots(stringArg(args, "item_id"), stringArg(args, "zone"), stringArg(args, "slot_type"))
		},
	})

	r.register(&Spec{
		Name:        "get_warehouse_status",
		Description: "Get overall warehouse status, occupancy rates, and statistics",
		Parameters:  map[string]string{},
		Run: func(args map[string]any) Result {
			return tb.WarehouseStatus()
		},
	})

	return r
}

func (r *Registry) register(spec *Spec) {
	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
}

// Get returns a tool spec by name
func (r *Registry) Get(name string) (*Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// List returns all tool specs in registration order
func (r *Registry) List() []*Spec {
	out := make([]*Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.specs[name])
	}
	return out
}

// Execute dispatches a tool call by name. Unknown names get a
// Success=false envelope, matching the tool error contract.
func (r *Registry) Execute(name string, args map[string]any) Result {
	spec, ok := r.specs[name]
	if !ok {
		return Result{
			Success: false,
			Message: fmt.Sprintf("Tool '%s' not found", name),
			Action:  ActionUnknown,
		}
	}
	return spec.Run(args)
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
