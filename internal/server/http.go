// Package server exposes the agent and the warehouse tools over HTTP.
// It owns formatting/transport concerns only; tool envelopes pass
// through to the client as-is.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/vthunder/optslot/internal/agent"
	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/diag"
	"github.com/vthunder/optslot/internal/logging"
	"github.com/vthunder/optslot/internal/tools"
)

// Handler serves the chat endpoint and the warehouse REST API
type Handler struct {
	agent    *agent.Agent
	registry *tools.Registry
	store    *catalog.Store
}

// NewHandler creates the HTTP handler set
func NewHandler(a *agent.Agent, registry *tools.Registry, store *catalog.Store) *Handler {
	return &Handler{agent: a, registry: registry, store: store}
}

// Mux returns a ServeMux with all routes registered
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/chat", h.Chat)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api/warehouse/status", h.Status)
	mux.HandleFunc("/api/warehouse/slots", h.Slots)
	mux.HandleFunc("/api/warehouse/slots/empty", h.EmptySlots)
	mux.HandleFunc("/api/warehouse/items", h.Items)
	mux.HandleFunc("/api/warehouse/assign", h.Assign)
	return mux
}

// Chat processes one chat message. The help keyword bypasses intent
// resolution entirely; everything else goes through the agent.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	message := r.FormValue("user_message")
	logging.Debug("server", "chat: %s", logging.Truncate(message, 80))

	if agent.IsHelpRequest(message) {
		writeJSON(w, http.StatusOK, agent.Reply{
			Response: agent.Help(h.store),
			Success:  true,
			ToolUsed: "help",
		})
		return
	}

	reply := h.agent.ProcessMessage(r.Context(), message)
	writeJSON(w, http.StatusOK, reply)
}

// Status returns the warehouse status envelope
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Execute("get_warehouse_status", nil))
}

// EmptySlots returns the unfiltered available-slots envelope
func (h *Handler) EmptySlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Execute("find_available_slots", nil))
}

// slotView is a slot plus its assigned item, when any
type slotView struct {
	*catalog.Slot
	AssignedItem *catalog.Item `json:"assigned_item,omitempty"`
}

// Slots returns every slot with its assignment state
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	slots := h.store.Slots()
	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		view := slotView{Slot: slot}
		if slot.AssignedItemID != "" {
			view.AssignedItem = h.store.Item(slot.AssignedItemID)
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": views})
}

// itemView is an item plus the slot it currently occupies, when any
type itemView struct {
	*catalog.Item
	AssignedSlot string `json:"assigned_slot,omitempty"`
}

// Items returns every item with its current placement
func (h *Handler) Items(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items()
	views := make([]itemView, 0, len(items))
	for _, item := range items {
		view := itemView{Item: item}
		if a := h.store.AssignmentFor(item.ID); a != nil {
			view.AssignedSlot = a.SlotID
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": views})
}

// assignRequest is the JSON body for direct assignment calls
type assignRequest struct {
	SlotID string `json:"slot_id"`
	ItemID string `json:"item_id"`
}

// Assign places an item in a slot directly, without intent resolution
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "invalid request body",
		})
		return
	}
	if req.SlotID == "" || req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Both slot_id and item_id are required",
		})
		return
	}

	result := h.registry.Execute("change_slot_assignment", map[string]any{
		"slot_id": req.SlotID, "item_id": req.ItemID,
	})
	writeJSON(w, http.StatusOK, result)
}

// Health reports liveness plus light process diagnostics
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"process": diag.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Warn("server", "failed to encode response: %v", err)
	}
}
