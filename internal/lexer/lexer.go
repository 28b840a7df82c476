// Package lexer splits generated text into plain runs and interactive
// references: scripture citations, confession citations, doctrines of the
// connections graph and theological terms.
//
// Tokenizing is a single left to right pass. At every word start each
// matcher is tried; the longest match wins and ties go to scripture, then
// confession, then connection, then term. Joining the texts of the tokens
// always gives back the input.
package lexer

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/domain"
)

type Kind string

const (
	KindText       Kind = "text"
	KindScripture  Kind = "scripture"
	KindConfession Kind = "confession"
	KindConnection Kind = "connection"
	KindTerm       Kind = "term"
)

// ScriptureRef is the resolved form of a scripture token.
type ScriptureRef struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	EndVerse int    `json:"endVerse,omitempty"`
}

// Token is a run of the input. Start and End are byte offsets.
type Token struct {
	Kind      Kind          `json:"kind"`
	Text      string        `json:"text"`
	Start     int           `json:"start"`
	End       int           `json:"end"`
	Scripture *ScriptureRef `json:"scripture,omitempty"`
}

// Terms are the theological terms highlighted when nothing more specific matches.
var Terms = []string{
	"Justification", "Sanctification", "Election", "Predestination", "Atonement",
	"Covenant", "Trinity", "Providence", "Regeneration", "Adoption",
	"Perseverance", "Glorification", "Propitiation", "Expiation", "Imputation",
	"Sola Scriptura", "Sola Fide", "Sola Gratia", "Solus Christus", "Soli Deo Gloria",
	"Hypostatic Union", "Original Sin", "Total Depravity", "Unconditional Election",
	"Limited Atonement", "Irresistible Grace",
}

var (
	scriptureRe = regexp.MustCompile(`(?i)^((?:1|2|3)(?:\.|\s)?|(?:I|II|III)(?:\.|\s))?([A-Za-z]+(?:\.|\s[A-Za-z]+)*)\s+(\d+):(\d+)(?:[–-](\d+))?\b`)

	confessionRe = regexp.MustCompile(`(?i)^(?:` +
		`Westminster Confession(?: of Faith)?|Westminster Shorter Catechism|Westminster Larger Catechism|` +
		`Heidelberg Catechism|Belgic Confession|Second Helvetic Confession|Formula Consensus Helvetica|` +
		`The Scots Confession|Scots Confession|1689 Baptist Confession|1689 LBCF|Canons of Dort|` +
		`Formula Helvetica|Second Helvetic|Institutes|Heidelberg|Belgic|LBCF|WCF|WSC|WLC|FCH|2HC|Inst|HC|BC|CD` +
		`)\s+(?:Q\.?|Quest\.?|Question\s|Art\.?|Article\s|Ch\.?|Chap\.?|Chapter\s|Bk\.?|Book\s|Lord's Day\s|Head\s|Section\s|Sec\.?)?\s*\d+(?:[.:]\d+)*\b`)
)

// abbreviations maps common short book names to catalog names.
var abbreviations = map[string]string{
	"gen": "Genesis", "ex": "Exodus", "exod": "Exodus", "lev": "Leviticus", "num": "Numbers",
	"deut": "Deuteronomy", "josh": "Joshua", "judg": "Judges", "sam": "Samuel", "kgs": "Kings",
	"chr": "Chronicles", "neh": "Nehemiah", "esth": "Esther", "ps": "Psalms", "psa": "Psalms",
	"prov": "Proverbs", "eccl": "Ecclesiastes", "song": "Song of Solomon", "isa": "Isaiah",
	"jer": "Jeremiah", "lam": "Lamentations", "ezek": "Ezekiel", "dan": "Daniel", "hos": "Hosea",
	"obad": "Obadiah", "mic": "Micah", "nah": "Nahum", "hab": "Habakkuk", "zeph": "Zephaniah",
	"hag": "Haggai", "zech": "Zechariah", "mal": "Malachi", "matt": "Matthew", "mt": "Matthew",
	"mk": "Mark", "lk": "Luke", "jn": "John", "rom": "Romans", "cor": "Corinthians",
	"gal": "Galatians", "eph": "Ephesians", "phil": "Philippians", "col": "Colossians",
	"thess": "Thessalonians", "tim": "Timothy", "tit": "Titus", "phlm": "Philemon",
	"heb": "Hebrews", "jas": "James", "pet": "Peter", "rev": "Revelation",
}

var romanPrefix = map[string]string{"i": "1", "ii": "2", "iii": "3"}

// Lexer holds the matchers built from one catalog. It is safe for concurrent use.
type Lexer struct {
	cat          *domain.Catalog
	connectionRe *regexp.Regexp
	termRe       *regexp.Regexp
}

func New(cat *domain.Catalog) *Lexer {
	var titles []string
	for _, c := range cat.Connections {
		for _, t := range []string{c.Source.Title, c.Target.Title} {
			if t != "" && !slices.Contains(titles, t) {
				titles = append(titles, t)
			}
		}
	}
	return &Lexer{
		cat:          cat,
		connectionRe: alternation(titles),
		termRe:       alternation(Terms),
	}
}

// alternation matches any of words at the start of the input, longest first.
func alternation(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sorted := slices.Clone(words)
	slices.SortFunc(sorted, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Tokenize splits s. Adjacent plain runs are merged.
func (l *Lexer) Tokenize(s string) []Token {
	var (
		tokens    []Token
		textStart = 0
	)
	flush := func(end int) {
		if end > textStart {
			tokens = append(tokens, Token{Kind: KindText, Text: s[textStart:end], Start: textStart, End: end})
		}
	}

	for i := 0; i < len(s); {
		if wordStart(s, i) {
			if tok, ok := l.match(s, i); ok {
				flush(i)
				tokens = append(tokens, tok)
				i = tok.End
				textStart = i
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	flush(len(s))
	return tokens
}

func wordStart(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	if !isWordRune(r) {
		return false
	}
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(prev)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// match tries every matcher at i. Candidates are listed in tie-break order
// so that only a strictly longer match displaces an earlier one.
func (l *Lexer) match(s string, i int) (Token, bool) {
	rest := s[i:]
	var best Token

	consider := func(kind Kind, n int, ref *ScriptureRef) {
		if n > best.End-best.Start {
			best = Token{Kind: kind, Text: rest[:n], Start: i, End: i + n, Scripture: ref}
		}
	}

	if n, ref := l.scripture(rest); n > 0 {
		consider(KindScripture, n, ref)
	}
	if loc := confessionRe.FindStringIndex(rest); loc != nil {
		consider(KindConfession, loc[1], nil)
	}
	if l.connectionRe != nil {
		if loc := l.connectionRe.FindStringIndex(rest); loc != nil {
			consider(KindConnection, loc[1], nil)
		}
	}
	if loc := l.termRe.FindStringIndex(rest); loc != nil {
		consider(KindTerm, loc[1], nil)
	}

	return best, best.End > best.Start
}

// scripture matches a citation whose book resolves, returning its length.
func (l *Lexer) scripture(rest string) (int, *ScriptureRef) {
	m := scriptureRe.FindStringSubmatchIndex(rest)
	if m == nil {
		return 0, nil
	}
	group := func(n int) string {
		if m[2*n] < 0 {
			return ""
		}
		return rest[m[2*n]:m[2*n+1]]
	}

	book, ok := l.resolveBook(group(1), group(2))
	if !ok {
		return 0, nil
	}
	ref := &ScriptureRef{Book: book}
	ref.Chapter, _ = strconv.Atoi(group(3))
	ref.Verse, _ = strconv.Atoi(group(4))
	if end := group(5); end != "" {
		ref.EndVerse, _ = strconv.Atoi(end)
	}
	return m[1], ref
}

// resolveBook turns an optional ordinal and a book name or abbreviation
// into a catalog book name.
func (l *Lexer) resolveBook(ordinal, name string) (string, bool) {
	ord := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(ordinal), ".")))
	if n, ok := romanPrefix[ord]; ok {
		ord = n
	}

	name = strings.Join(strings.Fields(strings.ReplaceAll(name, ".", " ")), " ")
	if full, ok := abbreviations[strings.ToLower(name)]; ok {
		name = full
	}
	if ord != "" {
		name = ord + " " + name
	}

	if b, ok := catalog.FindBook(l.cat, name); ok {
		return b.Name, true
	}
	return "", false
}

// Provider hands out the lexer of the current catalog.
type Provider struct {
	current atomic.Pointer[Lexer]
}

func NewProvider(cat *domain.Catalog) *Provider {
	p := &Provider{}
	p.Update(cat)
	return p
}

// Update rebuilds the lexer after a catalog reload.
func (p *Provider) Update(cat *domain.Catalog) {
	p.current.Store(New(cat))
}

func (p *Provider) Lexer() *Lexer {
	return p.current.Load()
}
