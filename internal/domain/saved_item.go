package domain

import "slices"

// ItemType is the closed set of things a user can keep in the notebook.
type ItemType string

const (
	ItemConfession     ItemType = "confession"
	ItemScripture      ItemType = "scripture"
	ItemHymn           ItemType = "hymn"
	ItemTheologian     ItemType = "theologian"
	ItemDevotional     ItemType = "devotional"
	ItemStudy          ItemType = "study"
	ItemConnection     ItemType = "connection"
	ItemSystematic     ItemType = "systematic"
	ItemCrossReference ItemType = "cross-reference"
)

var itemTypes = []ItemType{
	ItemConfession, ItemScripture, ItemHymn, ItemTheologian, ItemDevotional,
	ItemStudy, ItemConnection, ItemSystematic, ItemCrossReference,
}

// ItemTypes returns every known item type in display order.
func ItemTypes() []ItemType { return slices.Clone(itemTypes) }

func (t ItemType) Valid() bool { return slices.Contains(itemTypes, t) }

// SavedItem is one notebook entry.
//
// The JSON field names are the persisted format and must not change.
// (Type, RefID) is unique across the notebook.
type SavedItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is a random UUID assigned on save.
	ID string `json:"id"`

	// Type and RefID together identify the referenced thing.
	// Example: ("scripture", "John 3:16"), ("devotional", "devotional-2026-03-02")
	Type  ItemType `json:"type"`
	RefID string   `json:"refId"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Tags     []string `json:"tags"`

	// UserNotes is the only field mutated after save.
	UserNotes string `json:"userNotes"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// Timestamp is the creation time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Content holds generated text kept for offline reading.
	Content string `json:"content,omitempty"`

	// IsOffline marks items whose Content is a full downloaded document.
	IsOffline bool `json:"isOffline,omitempty"`
}

// Candidate is a SavedItem before the store assigns ID and Timestamp.
type Candidate struct {
	Type      ItemType `json:"type" validate:"required,oneof=confession scripture hymn theologian devotional study connection systematic cross-reference"`
	RefID     string   `json:"refId" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Subtitle  string   `json:"subtitle"`
	UserNotes string   `json:"userNotes"`
	Tags      []string `json:"tags"`
	Content   string   `json:"content,omitempty"`
	IsOffline bool     `json:"isOffline,omitempty"`
}

// Item materializes a candidate with its store-assigned identity.
func (c Candidate) Item(id string, timestamp int64) SavedItem {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return SavedItem{
		ID:        id,
		Type:      c.Type,
		RefID:     c.RefID,
		Title:     c.Title,
		Subtitle:  c.Subtitle,
		Tags:      tags,
		UserNotes: c.UserNotes,
		Timestamp: timestamp,
		Content:   c.Content,
		IsOffline: c.IsOffline,
	}
}

// Matches reports whether the item references (t, refID).
func (s SavedItem) Matches(t ItemType, refID string) bool {
	return s.Type == t && s.RefID == refID
}
