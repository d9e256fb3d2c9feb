package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/vthunder/optslot/internal/agent"
	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/intent"
	"github.com/vthunder/optslot/internal/tools"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Store) {
	t.Helper()
	store := catalog.NewStore()
	registry := tools.NewRegistry(tools.New(store))
	resolver := intent.NewResolver(store)
	a := agent.New(resolver, registry, nil)
	srv := httptest.NewServer(NewHandler(a, registry, store).Mux())
	t.Cleanup(srv.Close)
	return srv, store
}

func postChat(t *testing.T, srv *httptest.Server, message string) agent.Reply {
	t.Helper()
	resp, err := http.PostForm(srv.URL+"/chat", url.Values{"user_message": {message}})
	if err != nil {
		t.Fatalf("POST /chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /chat status = %d, want 200", resp.StatusCode)
	}
	var reply agent.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return reply
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func TestChatHelp(t *testing.T) {
	srv, _ := newTestServer(t)

	reply := postChat(t, srv, "help")
	if !reply.Success {
		t.Fatalf("help reply not successful: %+v", reply)
	}
	if reply.ToolUsed != "help" {
		t.Errorf("ToolUsed = %q, want help", reply.ToolUsed)
	}
	if !strings.Contains(reply.Response, "ITEM_001") {
		t.Errorf("help text missing item list: %q", reply.Response)
	}
}

func TestChatStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	reply := postChat(t, srv, "show me the warehouse status")
	if !reply.Success {
		t.Fatalf("status reply not successful: %+v", reply)
	}
	if !strings.Contains(reply.Response, "capacity utilization") {
		t.Errorf("response missing occupancy sentence: %q", reply.Response)
	}
	if reply.ToolUsed != "get_warehouse_status" {
		t.Errorf("ToolUsed = %q", reply.ToolUsed)
	}
}

func TestChatAssignMutatesStore(t *testing.T) {
	srv, store := newTestServer(t)

	reply := postChat(t, srv, "put the monitor in A-01-01-05")
	if !reply.Success {
		t.Fatalf("assign reply not successful: %+v", reply)
	}
	slot := store.Slot("A-01-01-05")
	if slot.AssignedItemID != "ITEM_006" {
		t.Errorf("slot A-01-01-05 holds %q, want ITEM_006", slot.AssignedItemID)
	}
}

func TestChatMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/chat")
	if err != nil {
		t.Fatalf("GET /chat: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /chat status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var result tools.Result
	getJSON(t, srv, "/api/warehouse/status", &result)
	if !result.Success {
		t.Fatalf("status not successful: %+v", result)
	}
	if result.Summary == nil || result.Summary.TotalSlots != 180 {
		t.Errorf("summary = %+v, want 180 total slots", result.Summary)
	}
}

func TestEmptySlotsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var result tools.Result
	getJSON(t, srv, "/api/warehouse/slots/empty", &result)
	if !result.Success {
		t.Fatalf("empty slots not successful: %+v", result)
	}
	if result.TotalSlots != 174 {
		t.Errorf("TotalSlots = %d, want 174", result.TotalSlots)
	}
	if len(result.Slots) != 20 {
		t.Errorf("len(Slots) = %d, want 20", len(result.Slots))
	}
}

func TestSlotsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var payload struct {
		Slots []struct {
			SlotID       string `json:"slot_id"`
			AssignedItem *struct {
				ItemID string `json:"item_id"`
			} `json:"assigned_item"`
		} `json:"slots"`
	}
	getJSON(t, srv, "/api/warehouse/slots", &payload)
	if len(payload.Slots) != 180 {
		t.Fatalf("len(slots) = %d, want 180", len(payload.Slots))
	}
	first := payload.Slots[0]
	if first.SlotID != "A-01-01-01" {
		t.Errorf("first slot = %q, want A-01-01-01", first.SlotID)
	}
	if first.AssignedItem == nil || first.AssignedItem.ItemID != "ITEM_001" {
		t.Errorf("first slot assigned item = %+v, want ITEM_001", first.AssignedItem)
	}
}

func TestItemsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var payload struct {
		Items []struct {
			ItemID       string `json:"item_id"`
			AssignedSlot string `json:"assigned_slot"`
		} `json:"items"`
	}
	getJSON(t, srv, "/api/warehouse/items", &payload)
	if len(payload.Items) != 6 {
		t.Fatalf("len(items) = %d, want 6", len(payload.Items))
	}
	if payload.Items[0].ItemID != "ITEM_001" || payload.Items[0].AssignedSlot != "A-01-01-01" {
		t.Errorf("first item = %+v", payload.Items[0])
	}
}

func TestAssignEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	body := strings.NewReader(`{"slot_id": "A-01-01-05", "item_id": "ITEM_001"}`)
	resp, err := http.Post(srv.URL+"/api/warehouse/assign", "application/json", body)
	if err != nil {
		t.Fatalf("POST assign: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var result tools.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success {
		t.Fatalf("assign failed: %+v", result)
	}
	if store.Slot("A-01-01-01").Status != catalog.StatusEmpty {
		t.Errorf("old slot not vacated")
	}
}

func TestAssignEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []string{`{"slot_id": "A-01-01-05"}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/warehouse/assign", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST assign: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var payload struct {
		Status  string `json:"status"`
		Process struct {
			PID int32 `json:"pid"`
		} `json:"process"`
	}
	getJSON(t, srv, "/health", &payload)
	if payload.Status != "ok" {
		t.Errorf("status = %q, want ok", payload.Status)
	}
	if payload.Process.PID == 0 {
		t.Errorf("missing process pid")
	}
}

func TestHomePage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	resp2, err := http.Get(srv.URL + "/no-such-page")
	if err != nil {
		t.Fatalf("GET /no-such-page: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", resp2.StatusCode)
	}
}
