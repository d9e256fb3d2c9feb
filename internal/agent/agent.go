// Package agent ties the pieces together: it resolves a chat message to
// an intent, executes the matching tool, asks the LLM for framing text,
// and combines the two into a single reply.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/vthunder/optslot/internal/intent"
	"github.com/vthunder/optslot/internal/llm"
	"github.com/vthunder/optslot/internal/logging"
	"github.com/vthunder/optslot/internal/tools"
)

// Reply is what the presentation layer gets back for one message
type Reply struct {
	Response   string        `json:"response"`
	Success    bool          `json:"success"`
	ToolUsed   string        `json:"tool_used,omitempty"`
	ToolResult *tools.Result `json:"tool_result,omitempty"`
}

// Agent processes chat messages. It holds no per-conversation state;
// every message is handled request-per-call.
type Agent struct {
	resolver *intent.Resolver
	registry *tools.Registry
	chat     llm.ChatClient
}

// New creates an agent. chat may be nil; replies then degrade to an
// inline error string wherever framing text would appear.
func New(resolver *intent.Resolver, registry *tools.Registry, chat llm.ChatClient) *Agent {
	return &Agent{resolver: resolver, registry: registry, chat: chat}
}

// ProcessMessage handles one user message end to end. Failed tool calls
// short-circuit: the tool's error message is the entire response and the
// model text is suppressed, so each failure has a single authoritative
// explanation.
func (a *Agent) ProcessMessage(ctx context.Context, message string) Reply {
	message = strings.TrimSpace(message)

	resolved := a.resolver.Resolve(message)

	var toolResult *tools.Result
	actionResponse := ""
	if resolved.Action != intent.ActionNone {
		result := a.registry.Execute(resolved.Action, filterParams(resolved))
		toolResult = &result

		logging.Info("agent", "action %s success=%v", resolved.Action, result.Success)

		if !result.Success {
			return Reply{
				Response:   result.Message,
				Success:    false,
				ToolUsed:   resolved.Action,
				ToolResult: toolResult,
			}
		}
		actionResponse = formatSuccess(result)
	}

	modelText := a.framingText(ctx, message)

	response := modelText
	if actionResponse != "" {
		switch resolved.Action {
		case intent.ActionStatus:
			// replace generic model framing with the real occupancy rate
			summary := fmt.Sprintf("The warehouse currently has %.1f%% capacity utilization.",
				toolResult.Summary.OccupancyRate)
			response = summary + "\n\n" + actionResponse
		case intent.ActionFindSlots:
			// the list is the answer; model text adds nothing here
			response = actionResponse
		default:
			response = modelText + "\n\n" + actionResponse
		}
	}

	reply := Reply{Response: response, Success: true, ToolUsed: resolved.Action, ToolResult: toolResult}
	if toolResult != nil {
		reply.Success = toolResult.Success
	}
	return reply
}

// framingText asks the LLM for conversational framing. Failures come
// back as an inline error string, never as a failed reply.
func (a *Agent) framingText(ctx context.Context, message string) string {
	if a.chat == nil {
		return "[OpenAI API error: no API key configured]"
	}
	text, err := a.chat.Chat(ctx, message)
	if err != nil {
		logging.Warn("agent", "chat completion failed: %v", err)
		return fmt.Sprintf("[OpenAI API error: %v]", err)
	}
	return text
}

// filterParams keeps only the parameters the tool accepts. The
// assignment tool gets slot_id and item_id; the description used for
// lookup stays behind.
func filterParams(resolved intent.Intent) map[string]any {
	if resolved.Action != intent.ActionAssign {
		return resolved.Params
	}
	params := map[string]any{}
	if v, ok := resolved.Params["slot_id"]; ok {
		params["slot_id"] = v
	}
	if v, ok := resolved.Params["item_id"]; ok {
		params["item_id"] = v
	}
	return params
}
