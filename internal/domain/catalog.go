package domain

// Testament splits the canon.
type Testament string

const (
	OldTestament Testament = "Old"
	NewTestament Testament = "New"
)

// Confession is a historic Reformed standard, or a classic work treated like one.
type Confession struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	ShortTitle  string   `json:"shortTitle" yaml:"shortTitle"`
	Date        string   `json:"date" yaml:"date"`
	Author      string   `json:"author" yaml:"author"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
	Structure   string   `json:"structure" yaml:"structure"`
}

type Theologian struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Dates       string   `json:"dates" yaml:"dates"`
	Origin      string   `json:"origin" yaml:"origin"`
	Century     string   `json:"century" yaml:"century"`
	Works       []string `json:"works" yaml:"works"`
	Description string   `json:"description" yaml:"description"`
}

type BibleVersion struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	ShortTitle  string   `json:"shortTitle" yaml:"shortTitle"`
	Date        string   `json:"date" yaml:"date"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
}

type BibleBook struct {
	Name      string    `json:"name" yaml:"name"`
	Chapters  int       `json:"chapters" yaml:"chapters"`
	Testament Testament `json:"testament" yaml:"testament"`
	Category  string    `json:"category" yaml:"category"`
}

type Hymn struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Author      string   `json:"author" yaml:"author"`
	Date        string   `json:"date" yaml:"date"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// ConnectionType qualifies the edge between two doctrines.
type ConnectionType string

const (
	LeadsTo   ConnectionType = "leads_to"
	Supports  ConnectionType = "supports"
	Explains  ConnectionType = "explains"
	Contrasts ConnectionType = "contrasts"
)

// Doctrine is one end of a DoctrinalConnection.
type Doctrine struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

type DoctrinalConnection struct {
	ID        string         `json:"id" yaml:"id"`
	Source    Doctrine       `json:"source" yaml:"source"`
	Target    Doctrine       `json:"target" yaml:"target"`
	Type      ConnectionType `json:"type" yaml:"type"`
	Reasoning string         `json:"reasoning" yaml:"reasoning"`
}

// SystematicCategory groups the topics of the systematic theology browser.
type SystematicCategory struct {
	Category string   `json:"category" yaml:"category"`
	Topics   []string `json:"topics" yaml:"topics"`
}

// NavItem is one line of a document outline.
// Headers group entries and carry no reference.
type NavItem struct {
	Label     string `json:"label" yaml:"label"`
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
	IsHeader  bool   `json:"isHeader,omitempty" yaml:"isHeader,omitempty"`
}

// Catalog is the whole static reference corpus.
type Catalog struct {
	Confessions  []Confession          `json:"confessions" yaml:"confessions"`
	Theologians  []Theologian          `json:"theologians" yaml:"theologians"`
	Bibles       []BibleVersion        `json:"bibles" yaml:"bibles"`
	Books        []BibleBook           `json:"books" yaml:"books"`
	Hymns        []Hymn                `json:"hymns" yaml:"hymns"`
	Connections  []DoctrinalConnection `json:"connections" yaml:"connections"`
	Systematics  []SystematicCategory  `json:"systematics" yaml:"systematics"`
	StudyTopics  []string              `json:"studyTopics" yaml:"studyTopics"`
	DefaultBible string                `json:"defaultBible" yaml:"defaultBible"`

	// Outlines maps a confession id to its navigation entries.
	Outlines map[string][]NavItem `json:"-" yaml:"outlines"`
}
