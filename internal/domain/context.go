package domain

// ContextKind names the StudyContext variants.
type ContextKind string

const (
	ContextConfession ContextKind = "confession"
	ContextBible      ContextKind = "bible"
	ContextHymn       ContextKind = "hymn"
	ContextFree       ContextKind = "free"
)

// StudyContext is what a chat session is about. The set of variants is closed:
// ConfessionContext, BibleContext, HymnContext and FreeContext.
type StudyContext interface {
	Kind() ContextKind
	// Title is the display title, empty for free chat.
	Title() string
	// RefID is the catalog id of the subject, empty for free chat.
	RefID() string

	isStudyContext()
}

type ConfessionContext struct{ Confession Confession }

type BibleContext struct{ Version BibleVersion }

type HymnContext struct{ Hymn Hymn }

// FreeContext is a general conversation with no document in focus.
type FreeContext struct{}

func (ConfessionContext) Kind() ContextKind { return ContextConfession }
func (BibleContext) Kind() ContextKind      { return ContextBible }
func (HymnContext) Kind() ContextKind       { return ContextHymn }
func (FreeContext) Kind() ContextKind       { return ContextFree }

func (c ConfessionContext) Title() string { return c.Confession.Title }
func (c BibleContext) Title() string      { return c.Version.Title }
func (c HymnContext) Title() string       { return c.Hymn.Title }
func (FreeContext) Title() string         { return "" }

func (c ConfessionContext) RefID() string { return c.Confession.ID }
func (c BibleContext) RefID() string      { return c.Version.ID }
func (c HymnContext) RefID() string       { return c.Hymn.ID }
func (FreeContext) RefID() string         { return "" }

func (ConfessionContext) isStudyContext() {}
func (BibleContext) isStudyContext()      {}
func (HymnContext) isStudyContext()       {}
func (FreeContext) isStudyContext()       {}

// ActiveBible returns the translation in focus, nil unless c is a BibleContext.
func ActiveBible(c StudyContext) *BibleVersion {
	if b, ok := c.(BibleContext); ok {
		v := b.Version
		return &v
	}
	return nil
}
