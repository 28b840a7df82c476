package domain

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// ViewName is the closed set of screens a link can point at.
type ViewName string

const (
	ViewLibrary         ViewName = "library"
	ViewChat            ViewName = "chat"
	ViewTheologians     ViewName = "theologians"
	ViewBible           ViewName = "bible"
	ViewBibleNavigation ViewName = "bible-navigation"
	ViewHymnal          ViewName = "hymnal"
	ViewDevotional      ViewName = "devotional"
	ViewStudy           ViewName = "study"
	ViewConnections     ViewName = "connections"
	ViewNotebook        ViewName = "notebook"
	ViewSystematics     ViewName = "systematics"
	ViewTimeline        ViewName = "timeline"
	ViewComparison      ViewName = "comparison"
	ViewCrossReference  ViewName = "cross-reference"
)

var viewNames = []ViewName{
	ViewLibrary, ViewChat, ViewTheologians, ViewBible, ViewBibleNavigation, ViewHymnal,
	ViewDevotional, ViewStudy, ViewConnections, ViewNotebook, ViewSystematics,
	ViewTimeline, ViewComparison, ViewCrossReference,
}

func (n ViewName) Valid() bool { return slices.Contains(viewNames, n) }

var ErrUnknownView = errors.New("unknown view")

// View is one navigable state: a screen, the study context in focus and,
// for the connections graph, the concept it was opened on.
type View struct {
	Name    ViewName     `json:"view"`
	Context StudyContext `json:"-"`
	Concept string       `json:"concept,omitempty"`
}

// Lookup resolves catalog ids referenced by links.
type Lookup interface {
	Confession(id string) (Confession, bool)
	Bible(id string) (BibleVersion, bool)
	Hymn(id string) (Hymn, bool)
}

// ParseView decodes the query of a shared link.
// Ids that do not resolve are ignored. When several are present the
// confession wins over the bible, the bible over the hymn.
func ParseView(q url.Values, lookup Lookup) (View, error) {
	name := ViewName(q.Get("view"))
	if !name.Valid() {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}

	v := View{Name: name, Context: FreeContext{}, Concept: q.Get("concept")}

	if id := q.Get("hymn"); id != "" {
		if h, ok := lookup.Hymn(id); ok {
			v.Context = HymnContext{Hymn: h}
		}
	}
	if id := q.Get("bible"); id != "" {
		if b, ok := lookup.Bible(id); ok {
			v.Context = BibleContext{Version: b}
		}
	}
	if id := q.Get("confession"); id != "" {
		if c, ok := lookup.Confession(id); ok {
			v.Context = ConfessionContext{Confession: c}
		}
	}

	return v, nil
}

// ShareCard is what the share action hands to the platform share sheet.
type ShareCard struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Share builds the card and link for v relative to base.
func Share(v View, base url.URL) ShareCard {
	q := url.Values{}
	q.Set("view", string(v.Name))

	card := ShareCard{
		Title: "Reformed Standards",
		Text:  "Check out this Reformed theological resource.",
	}

	switch c := v.Context.(type) {
	case ConfessionContext:
		q.Set("confession", c.Confession.ID)
		card.Title = c.Confession.Title
		card.Text = fmt.Sprintf("Study the %s with AI-powered assistance.", c.Confession.Title)
	case BibleContext:
		q.Set("bible", c.Version.ID)
		card.Title = c.Version.Title
		card.Text = fmt.Sprintf("Read the Bible (%s) within the Reformed tradition.", c.Version.ShortTitle)
	case HymnContext:
		q.Set("hymn", c.Hymn.ID)
		card.Title = c.Hymn.Title
		card.Text = fmt.Sprintf("Listen to and study the lyrics of \"%s\".", c.Hymn.Title)
	default:
		if v.Concept != "" {
			q.Set("concept", v.Concept)
			card.Title = "Doctrine: " + v.Concept
			card.Text = fmt.Sprintf("Explore the logical connections for %s.", v.Concept)
		}
	}

	base.RawQuery = q.Encode()
	base.Fragment = ""
	card.URL = base.String()
	return card
}
