package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/intent"
	"github.com/vthunder/optslot/internal/tools"
)

// stubChat is a canned ChatClient for tests
type stubChat struct {
	text string
	err  error
}

func (s *stubChat) Chat(ctx context.Context, userMessage string) (string, error) {
	return s.text, s.err
}

func newAgent(chat *stubChat) (*Agent, *catalog.Store) {
	store := catalog.NewStore()
	resolver := intent.NewResolver(store)
	registry := tools.NewRegistry(tools.New(store))
	if chat == nil {
		chat = &stubChat{text: "Certainly!"}
	}
	return New(resolver, registry, chat), store
}

func TestProcessMessage_AssignMonitor(t *testing.T) {
	a, store := newAgent(nil)

	reply := a.ProcessMessage(context.Background(), "assign monitor to slot A-01-01-05")
	if !reply.Success {
		t.Fatalf("expected success, got: %s", reply.Response)
	}
	if reply.ToolUsed != intent.ActionAssign {
		t.Errorf("expected assignment tool, got %q", reply.ToolUsed)
	}

	// model text leads, tool confirmation follows
	if !strings.HasPrefix(reply.Response, "Certainly!") {
		t.Errorf("expected model text first, got: %s", reply.Response)
	}
	if !strings.Contains(reply.Response, "Successfully assigned Monitor 27inch (ITEM_006) to slot A-01-01-05") {
		t.Errorf("expected confirmation, got: %s", reply.Response)
	}

	slot := store.Slot("A-01-01-05")
	if slot.AssignedItemID != "ITEM_006" {
		t.Errorf("expected ITEM_006 in A-01-01-05, got %q", slot.AssignedItemID)
	}
}

func TestProcessMessage_IncompatibleFailsQuietly(t *testing.T) {
	a, store := newAgent(&stubChat{text: "should not appear"})

	reply := a.ProcessMessage(context.Background(), "put chemical solvent in slot A-01-03-01")
	if reply.Success {
		t.Fatal("expected failure for hazardous item in standard slot")
	}
	// failure short-circuits: only the tool message, no model text
	if strings.Contains(reply.Response, "should not appear") {
		t.Errorf("model text must be suppressed on failure, got: %s", reply.Response)
	}
	if !strings.Contains(reply.Response, "may not be compatible") {
		t.Errorf("expected incompatibility message, got: %s", reply.Response)
	}

	if slot := store.Slot("A-01-03-01"); slot.Status != catalog.StatusEmpty {
		t.Error("failed assignment must not mutate state")
	}
}

func TestProcessMessage_UnknownItemSurfacesNotFound(t *testing.T) {
	a, _ := newAgent(nil)

	reply := a.ProcessMessage(context.Background(), "assign flux capacitor to slot A-01-01-05")
	if reply.Success {
		t.Fatal("expected not-found failure")
	}
	if !strings.Contains(reply.Response, "not found") {
		t.Errorf("expected not-found message, got: %s", reply.Response)
	}
}

func TestProcessMessage_StatusUsesRealOccupancy(t *testing.T) {
	a, _ := newAgent(&stubChat{text: "generic framing"})

	reply := a.ProcessMessage(context.Background(), "show warehouse status")
	if !reply.Success {
		t.Fatalf("expected success, got: %s", reply.Response)
	}
	// 6 of 180 slots = 3.3%
	if !strings.HasPrefix(reply.Response, "The warehouse currently has 3.3% capacity utilization.") {
		t.Errorf("expected computed occupancy lead, got: %s", reply.Response)
	}
	// the status action replaces model framing entirely
	if strings.Contains(reply.Response, "generic framing") {
		t.Errorf("model text should be replaced for status, got: %s", reply.Response)
	}
	if !strings.Contains(reply.Response, "Zone A: 4/60") {
		t.Errorf("expected zone breakdown, got: %s", reply.Response)
	}
}

func TestProcessMessage_FindSlotsDropsModelText(t *testing.T) {
	a, _ := newAgent(&stubChat{text: "model chatter"})

	reply := a.ProcessMessage(context.Background(), "find slots in zone B")
	if !reply.Success {
		t.Fatalf("expected success, got: %s", reply.Response)
	}
	if strings.Contains(reply.Response, "model chatter") {
		t.Errorf("model text must be discarded for slot search, got: %s", reply.Response)
	}
	if !strings.Contains(reply.Response, "Found 59 available slots") {
		t.Errorf("expected true total for zone B, got: %s", reply.Response)
	}
	// detail list shows at most 10, the rest is summarized
	if !strings.Contains(reply.Response, "... and 49 more slots") {
		t.Errorf("expected overflow line, got: %s", reply.Response)
	}
}

func TestProcessMessage_PlainConversation(t *testing.T) {
	a, _ := newAgent(&stubChat{text: "Nice weather for logistics."})

	reply := a.ProcessMessage(context.Background(), "hello there")
	if !reply.Success {
		t.Fatal("plain conversation should succeed")
	}
	if reply.ToolUsed != intent.ActionNone {
		t.Errorf("expected no tool, got %q", reply.ToolUsed)
	}
	if reply.Response != "Nice weather for logistics." {
		t.Errorf("expected model text only, got: %s", reply.Response)
	}
}

func TestProcessMessage_ChatErrorDegrades(t *testing.T) {
	a, _ := newAgent(&stubChat{err: errors.New("connection refused")})

	reply := a.ProcessMessage(context.Background(), "hello there")
	if !reply.Success {
		t.Fatal("chat errors must not fail the reply")
	}
	if !strings.Contains(reply.Response, "[OpenAI API error:") {
		t.Errorf("expected inline error string, got: %s", reply.Response)
	}
}

func TestProcessMessage_ConflictNamesOccupant(t *testing.T) {
	a, _ := newAgent(nil)

	reply := a.ProcessMessage(context.Background(), "assign monitor to slot A-01-01-01")
	if reply.Success {
		t.Fatal("expected conflict failure")
	}
	if !strings.Contains(reply.Response, "Laptop Computer (ITEM_001)") {
		t.Errorf("conflict should name current occupant, got: %s", reply.Response)
	}
}

func TestHelp(t *testing.T) {
	_, store := newAgent(nil)

	if !IsHelpRequest(" HELP ") || !IsHelpRequest("/help") || !IsHelpRequest("?") {
		t.Error("help keywords should be recognized")
	}
	if IsHelpRequest("help me assign this") {
		t.Error("help must be an exact keyword, not a prefix")
	}

	text := Help(store)
	for _, want := range []string{"Laptop Computer", "ITEM_006", "find empty slots"} {
		if !strings.Contains(text, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}
