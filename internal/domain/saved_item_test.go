package domain

import "testing"

func TestItemTypeValid(t *testing.T) {
	for _, it := range ItemTypes() {
		if !it.Valid() {
			t.Errorf("ItemType(%q).Valid() = false, want true", it)
		}
	}
	for _, bad := range []ItemType{"", "note", "Confession"} {
		if bad.Valid() {
			t.Errorf("ItemType(%q).Valid() = true, want false", bad)
		}
	}
}

func TestCandidateItem(t *testing.T) {
	c := Candidate{Type: ItemScripture, RefID: "John 3:16", Title: "John 3:16"}
	it := c.Item("id-1", 1700000000000)

	if it.ID != "id-1" || it.Timestamp != 1700000000000 {
		t.Errorf("Item() identity = (%v, %v), want (id-1, 1700000000000)", it.ID, it.Timestamp)
	}
	if it.Tags == nil {
		t.Errorf("Item().Tags = nil, want empty slice")
	}
	if !it.Matches(ItemScripture, "John 3:16") {
		t.Errorf("Matches() = false, want true")
	}
	if it.Matches(ItemConfession, "John 3:16") {
		t.Errorf("Matches() with other type = true, want false")
	}
}
