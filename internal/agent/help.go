package agent

import (
	"fmt"
	"strings"

	"github.com/vthunder/optslot/internal/catalog"
)

// HelpKeywords are the explicit commands that bypass intent resolution
var HelpKeywords = []string{"help", "/help", "?"}

// IsHelpRequest reports whether a message is an explicit help command
func IsHelpRequest(message string) bool {
	message = strings.ToLower(strings.TrimSpace(message))
	for _, kw := range HelpKeywords {
		if message == kw {
			return true
		}
	}
	return false
}

// Help returns the fixed usage text, including the seeded item list
func Help(store *catalog.Store) string {
	var b strings.Builder

	b.WriteString(`🏭 **Warehouse Management Assistant**

I can help you with:

**📦 Slot Assignment:**
• "assign laptop to slot A-01-01-03" or "assign laptop to A-01-01-03"
• "put office chair in slot B-02-01-01" or "put office chair in B-02-01-01"
• "move item ITEM_001 to slot C-01-01-02" or "move item ITEM_001 to C-01-01-02"

**🔍 Find Available Slots:**
• "find empty slots"
• "show available slots in zone A"
• "find slots for laptop"
• "where can I put the printer?"

**📊 Warehouse Status:**
• "show warehouse status"
• "how full is the warehouse?"
• "get occupancy report"

**Available Items:**
`)
	b.WriteString(ListItems(store))
	return b.String()
}

// ListItems renders the catalog's items one per line
func ListItems(store *catalog.Store) string {
	var b strings.Builder
	for _, item := range store.Items() {
		fmt.Fprintf(&b, "• %s (%s) - %s\n", item.Name, item.ID, item.Category)
	}
	return b.String()
}
