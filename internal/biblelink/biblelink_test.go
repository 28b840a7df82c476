package biblelink

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   Ref
		wantOK bool
	}{
		{"John 3:16", Ref{Book: "John", Chapter: "3", Verse: "16", Code: "JHN"}, true},
		{"1 Peter 1:3-5", Ref{Book: "1 Peter", Chapter: "1", Verse: "3", Code: "1PE"}, true},
		{"Psalm 23", Ref{Book: "Psalm", Chapter: "23", Verse: "1", Code: "PSA"}, true},
		{"Song of Solomon 2:4", Ref{Book: "Song of Solomon", Chapter: "2", Verse: "4", Code: "SNG"}, true},
		{"Jn 1:1", Ref{Book: "Jn", Chapter: "1", Verse: "1", Code: "JN"}, true},
		{"Sirach 2:1", Ref{Book: "Sirach", Chapter: "2", Verse: "1", Code: "SIR"}, true},
		{"nonsense", Ref{}, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestLinks(t *testing.T) {
	tests := []struct {
		ref  string
		want map[string]string
	}{
		{
			ref: "John 3:16",
			want: map[string]string{
				"logos":      "logosres:bible;ref=Bible.JHN3.16",
				"olivetree":  "olivetree://bible/John.3.16",
				"youversion": "https://www.bible.com/bible/59/JHN.3.16",
				"blueletter": "https://www.blueletterbible.org/search/preSearch.cfm?Criteria=John%203%3A16",
			},
		},
		{
			ref: "1 John 4:8",
			want: map[string]string{
				"logos":      "logosres:bible;ref=Bible.1JO4.8",
				"olivetree":  "olivetree://bible/1John.4.8",
				"youversion": "https://www.bible.com/bible/59/1JO.4.8",
				"blueletter": "https://www.blueletterbible.org/search/preSearch.cfm?Criteria=1%20John%204%3A8",
			},
		},
		{
			ref: "Selah",
			want: map[string]string{
				"logos":      "logosres:bible;ref=Selah",
				"olivetree":  "olivetree://bible/Selah",
				"youversion": "https://www.bible.com/search/bible?q=Selah",
				"blueletter": "https://www.blueletterbible.org/search/preSearch.cfm?Criteria=Selah",
			},
		},
	}
	for _, tt := range tests {
		got := map[string]string{}
		for _, l := range Links(tt.ref) {
			got[l.ID] = l.URL
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Links(%q) mismatch (-want +got):\n%s", tt.ref, diff)
		}
	}
}

func TestApps(t *testing.T) {
	var names []string
	for _, a := range Apps() {
		names = append(names, a.Name+" "+a.Color)
	}
	want := []string{"Logos #004C91", "Olive Tree #2D5A27", "YouVersion #654B3E", "Blue Letter #34495E"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Apps() mismatch (-want +got):\n%s", diff)
	}
}
