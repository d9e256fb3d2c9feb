package intent

import (
	"strings"

	"github.com/tsawler/prose/v3"
)

// FindItemByDescription resolves a free-text item description to an item
// id. The chain is tried in order and the first hit wins:
//  1. synonym table ("monitor", "laptop", ...)
//  2. exact case-insensitive item id
//  3. description as a substring of the display name
//  4. token overlap: any word of the description appears as a whole word
//     in the display name
//
// Returns "" when nothing matches; callers propagate that downstream.
func (r *Resolver) FindItemByDescription(description string) string {
	description = strings.ToLower(strings.TrimSpace(description))
	if description == "" {
		return ""
	}

	if id, ok := r.synonyms[description]; ok {
		return id
	}

	items := r.store.Items()

	for _, item := range items {
		if strings.ToLower(item.ID) == description {
			return item.ID
		}
	}

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), description) {
			return item.ID
		}
	}

	descWords := tokenize(description)
	for _, item := range items {
		nameWords := tokenize(strings.ToLower(item.Name))
		for word := range descWords {
			if nameWords[word] {
				return item.ID
			}
		}
	}

	return ""
}

// AddSynonym registers an extra description shortcut
func (r *Resolver) AddSynonym(description, itemID string) {
	r.synonyms[strings.ToLower(strings.TrimSpace(description))] = itemID
}

// tokenize splits text into a set of word tokens using prose, falling
// back to whitespace splitting if the tokenizer rejects the input.
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)

	// tokenization only; tagging and entity extraction are not needed here
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		for _, w := range strings.Fields(text) {
			words[w] = true
		}
		return words
	}

	for _, tok := range doc.Tokens() {
		words[strings.ToLower(tok.Text)] = true
	}
	return words
}
