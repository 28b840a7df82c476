// Package prompt builds the instructions sent to the generation backend.
//
// Builders are pure: they never validate citations and never do I/O.
// Malformed references are passed through as written.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

// Suffixes appended to the enhanced branch of a two-attempt request.
const (
	VerifyCitations = " Use Google Search to verify citations."
	VerifyText      = " Use Google Search to verify the text."
)

// Greeting opens a free chat without calling the backend.
const Greeting = "Greetings. I am ready to assist you with the Reformed Standards. You can ask about any doctrine, compare confessions, search for specific topics, or explore the hymnal."

var institutesRe = regexp.MustCompile(`(?i)Institutes|Inst`)

// IsInstitutes reports whether a citation points into Calvin's Institutes.
func IsInstitutes(reference string) bool {
	return institutesRe.MatchString(reference)
}

// ScriptureVerbatim asks for the exact text of a Bible reference. The
// translation in focus wins over the user's default; with neither the ESV
// is requested with its usual alternatives.
func ScriptureVerbatim(reference string, active, fallback *domain.BibleVersion) string {
	var version string
	switch {
	case active != nil:
		version = "from the " + active.Title
	case fallback != nil:
		version = fmt.Sprintf("using the **%s**", fallback.Title)
	default:
		version = "using the **English Standard Version (ESV)**. If ESV is not suitable, use NASB 95, Geneva Bible, or ASV"
	}

	return fmt.Sprintf(`Quote %s verbatim %s.
1. Return ONLY the text of the verses.
2. Do not include introductory phrases.
3. Double check the verse numbers against the original text.`, reference, version)
}

// ConfessionVerbatim asks for the exact text of a confession or catechism citation.
func ConfessionVerbatim(reference string) string {
	var extra string
	if IsInstitutes(reference) {
		extra = fmt.Sprintf(`
CONTEXT: The user is studying **John Calvin's Institutes of the Christian Religion**.
SOURCE: You MUST use the **John Allen Translation (1813)** from open-source online directories (Project Gutenberg eBook #45001/64392 or equivalent public-domain sources).
REFERENCE: %[1]s (Book.Chapter.Section).

TASK:
1. Provide the exact text for %[1]s from verified open-source directories.
2. Adhere strictly to the John Allen translation. Do NOT paraphrase.
3. Use Google Search to verify the exact section and wording against the open-source source.
4. Output the text verbatim, including all sub-sections if a chapter is requested.`, reference)
	} else {
		extra = `
CRITICAL: You must USE THE GOOGLE SEARCH TOOL to verify that the text you are about to quote MATCHES the citation provided (e.g., WCF 10.1).
Search for the specific article or question to ensure verbatim accuracy.`
	}

	extra += " IMPORTANT: If the source text contains footnotes, introductory remarks, or concluding remarks that are distinct from the main body, include them at the very end. Format this supplementary content as a blockquote starting with the bold label '**Supplementary Material:**'."

	return fmt.Sprintf("Quote the full text of %s verbatim.%s Do not add any introduction or conclusion. If it is a Catechism question, include the Answer.", reference, extra)
}

// Verbatim dispatches on the kind of reference.
func Verbatim(reference string, kind domain.RefKind, active, fallback *domain.BibleVersion) string {
	if kind == domain.RefScripture {
		return ScriptureVerbatim(reference, active, fallback)
	}
	return ConfessionVerbatim(reference)
}

// StructuredSearch asks for the JSON search payload of a doctrinal term.
func StructuredSearch(term string) string {
	return fmt.Sprintf(`Search for the theological term: %q across the Reformed Standards (Westminster, Three Forms of Unity, 2nd Helvetic, Institutes).
Identify the top 5 most relevant sections.
Also suggest 3-5 related theological terms that a student might want to explore next.

Return strictly a JSON object with this structure:
{
  "results": [
    {
      "document": "Name of Confession (e.g. Westminster Shorter Catechism)",
      "reference": "Citation (e.g. Q. 35)",
      "summary": "A 10-word summary of what this section says about the term."
    }
  ],
  "relatedTerms": ["Term 1", "Term 2", "Term 3"]
}

Ensure references are accurate and exist in the original texts. Do not guess; omit anything you cannot verify from open-source directories.`, term)
}

// SearchResultVerbatim asks for the text behind one structured search hit.
func SearchResultVerbatim(document, reference string) string {
	if strings.Contains(strings.ToLower(document), "institutes") {
		return fmt.Sprintf(`You are a Theological Research Assistant.
The user wants the verbatim text for: %s %s.

TASK:
1. Retrieve the text of Calvin's Institutes %s using the **John Allen Translation (1813)**.
2. Use Google Search to verify the exact text against open-source directories (Project Gutenberg eBook #45001/64392 or equivalent public-domain sources).
3. Verify the Book, Chapter, and Section numbers match the source text.
4. Output the text verbatim.`, document, reference, reference)
	}

	return fmt.Sprintf(`Quote the following text verbatim from the original historical document:
Document: %s
Reference: %s

Return ONLY the text (and Question/Answer if applicable). Do not add commentary.

VERIFICATION:
1. USE THE GOOGLE SEARCH TOOL to verify that the text matches the citation.
2. Check the reference. If the text does not match the reference, find the correct reference for that text or return "Unable to verify text at this location."`, document, reference)
}

// RelatedStandards asks which other standards treat the topic of a confession citation.
func RelatedStandards(reference string) string {
	return fmt.Sprintf(`Analyze the following confession reference: %q.
Based on its topic, provide 3-5 distinct theological cross-references from OTHER Reformed Standards (e.g., if WCF, link to Heidelberg/Belgic/2nd Helvetic).

Return ONLY a JSON array of strings formatted as valid citations (e.g., ["Heidelberg Q. 27", "Belgic Confession Art. 13", "Canons of Dort Head 1"]).
Do not include any other text.`, reference)
}

// VerseCitations asks which standards cite a Bible verse.
func VerseCitations(verse string) string {
	return fmt.Sprintf(`Identify every major Reformed standard (WCF, WSC, WLC, Heidelberg, Belgic, Canons of Dort, 2nd Helvetic, 1689 LBCF, Institutes) that explicitly cites or is primarily grounded in the following Bible verse: %q.

Return a JSON array of objects with this structure:
[
  {
    "document": "Document Name",
    "reference": "Specific Citation (e.g. Art 1, Q 2, 3.1.1)",
    "context": "15-word summary of how the verse is used here."
  }
]

Use the John Allen 1813 translation for any 'Institutes' references found, verified against open-source directories (Project Gutenberg eBook #45001/64392 or equivalent public-domain sources).`, verse)
}

// CrossRefContext asks for the text of a standard found by VerseCitations.
func CrossRefContext(document, reference string) string {
	if strings.Contains(strings.ToLower(document), "institutes") {
		return fmt.Sprintf("Provide the verbatim text of Calvin's Institutes %s using the John Allen Translation (1813). Use Google Search to verify against open-source directories (Project Gutenberg eBook #45001/64392 or equivalent public-domain sources). Output text only.", reference)
	}
	return fmt.Sprintf("Quote the full text of %s %s verbatim. Use Google Search to verify accuracy. Include the Question if it is a Catechism.", document, reference)
}

// Interlinear asks for a word by word table in the original language.
func Interlinear(reference string, testament domain.Testament) string {
	lang := "Greek"
	if testament == domain.OldTestament {
		lang = "Hebrew"
	}
	return fmt.Sprintf(`Provide a precise Interlinear translation for %s.
Format as a Markdown table with the following columns: %s Word, Transliteration, English Gloss, Strong's Concordance.
Do not include introductory text. Use internal scholarly knowledge.`, reference, lang)
}

// Latin asks for the Clementine Vulgate text of a reference.
func Latin(reference string) string {
	return fmt.Sprintf("Provide the verbatim Latin text for %s from the Clementine Vulgate. Return only the verse text.", reference)
}

// Devotional asks for the devotional of a day, ex: Devotional("Monday, March 2, 2026", "Heidelberg Catechism Question 4").
func Devotional(longDate, anchor string) string {
	return fmt.Sprintf(`Generate a daily devotional for %[1]s.
The anchor text is **%[2]s**.

TASK:
1. Quote the exact verbatim text of %[2]s.
2. Ensure the text matches the original historic document exactly.
3. Explicitly display the title (e.g., "**%[2]s**") before the quote.
4. Follow the system instruction for structure.`, longDate, anchor)
}

// Study asks for the comparative study of a topic.
func Study(topic string) string {
	return fmt.Sprintf(`Conduct a comprehensive theological analysis on the topic: %q.
Compare and contrast how this is handled in the Westminster Standards, the Three Forms of Unity, and the Second Helvetic Confession.

TASK:
1. Quote the standards verbatim.
2. Do not generalize; cite specific articles (e.g., "Belgic Confession Art. 12" vs "WCF 4.1").`, topic)
}

// Systematic asks for the summary page of a systematic theology topic.
func Systematic(topic string) string {
	return fmt.Sprintf(`Provide a comprehensive theological summary of %[1]q from a strictly Reformed perspective.

Structure the response in Markdown with the following sections:

# %[1]s

## 1. Definition
A precise theological definition.

## 2. Biblical Basis
Key Scripture proofs (cite ESV/NASB).

## 3. Confessional Support
Direct citations from the Westminster Standards, Three Forms of Unity, or Second Helvetic Confession.

## 4. Key Distinctions
Clarify any common misunderstandings or distinctions (e.g., distinguishing this from Roman Catholic or Arminian views).`, topic)
}

// Concept asks for the analysis of one node of the doctrinal graph.
func Concept(d domain.Doctrine) string {
	return fmt.Sprintf(`Act as a Reformed Theologian and Professor. Provide a detailed theological analysis of the doctrine: %q (Category: %s).
Context Description: %s

Format the response in Markdown with the following specific sections:
## Overview
Define the doctrine clearly and concisely in theological terms.

## Historical Context
How was this doctrine formulated or defended in church history? Mention specific Reformed Confessions (Westminster, Heidelberg, Belgic, Canons of Dort) or key theologians (Calvin, Turretin, Hodge, etc.) where relevant.

## Scripture Foundations
Provide key biblical texts that support this doctrine. List them with citations (Book Chapter:Verse) and a brief sentence on how they support the doctrine.

## Logical Connections
Explain how this doctrine logically connects to other parts of systematic theology (e.g., how it flows from Theology Proper or leads to Soteriology).

## Related Doctrines
List 3-5 related theological terms or concepts that a student should study next.

Tone: Academic, reverent, and strictly Reformed (Confessional).`, d.Title, d.Category, d.Description)
}

// Compare asks how two standards treat one topic.
func Compare(a, b domain.Confession, topic string) string {
	return fmt.Sprintf(`Perform a high-level theological comparison between two Reformed standards on a specific topic.

Document A: %s (%s, %s)
Document B: %s (%s, %s)
Topic: %s

Instructions:
1. Summarize how each document addresses the topic.
2. Provide verbatim snippets if possible (mark them clearly).
3. Highlight the primary theological nuances or differences in emphasis.
4. Note any historical context that explains why they might differ (e.g. Anglican vs Continental context).
5. Conclude with a summary of their common Reformed core.

Format: Professional, academic, and formatted in clear Markdown. Use the John Allen 1813 translation for any 'Institutes' references.`,
		a.Title, a.Author, a.Date, b.Title, b.Author, b.Date, topic)
}

var hymnNumberRe = regexp.MustCompile(`^\d+$`)

// Hymn asks for a hymn of the extended library. A bare number is a Gadsby's
// hymn number, anything else a title search.
func Hymn(query string) string {
	q := strings.TrimSpace(query)
	if hymnNumberRe.MatchString(q) {
		return fmt.Sprintf("Retrieve Hymn Number %s specifically from https://hymns.countedfaithful.org/numberListing.php. Use Google Search to find the specific page for this hymn number on that domain. Provide the full title, author, meter, and lyrics verbatim from that source.", q)
	}
	return fmt.Sprintf("Search for the hymn %q on https://hymns.countedfaithful.org/numberListing.php. Use Google Search to find the hymn on that domain. Provide the lyrics, author, and details verbatim from the source found.", q)
}

// FullDocument asks for a whole document for offline reading. The Institutes
// are too long for one response and get a digest instead.
func FullDocument(c domain.Confession) string {
	if c.ID == "institutes" {
		return "Provide the COMPLETE verbatim text of Calvin's Institutes (Summary of all 4 Books) using the John Allen Translation (1813). Since the full text is too large for one output, provide a comprehensive structured digest containing the text of the primary sections for Book 1 through 4."
	}
	return fmt.Sprintf("Provide the COMPLETE verbatim text of the %s. Include all Articles or Chapters. Use Google Search to ensure 100%% accuracy to the original document. Output as a clear Markdown document.", c.Title)
}

// Chapter asks for one full chapter of a translation.
func Chapter(book string, chapter int, version domain.BibleVersion) string {
	return fmt.Sprintf("Read %s Chapter %d from the %s. Provide the full chapter text verbatim.", book, chapter, version.Title)
}

// ReadingList asks for a queue of passages. With one group the passages are
// read as a flat list, with several each group becomes a section.
func ReadingList(version domain.BibleVersion, groups [][]string) string {
	if len(groups) <= 1 {
		var refs []string
		if len(groups) == 1 {
			refs = groups[0]
		}
		return fmt.Sprintf("Read the following scriptures from the %s verbatim: %s. \n\nIMPORTANT: Provide the text for each passage sequentially.", version.Title, strings.Join(refs, ", "))
	}

	sections := make([]string, 0, len(groups))
	for i, g := range groups {
		sections = append(sections, fmt.Sprintf("Section %d: %s", i+1, strings.Join(g, ", ")))
	}
	return fmt.Sprintf(`Read the following scripture groups from the %s verbatim.

%s

IMPORTANT: Provide the text for each Section sequentially. Insert a horizontal rule (---) between each Section to clearly act as a divider.`, version.Title, strings.Join(sections, "\n"))
}

// Augustine asks for one chapter of Augustine's Confessions, ex: "BOOK IV · CHAPTER XII".
func Augustine(reference string) string {
	return fmt.Sprintf(`Provide the verbatim text for **%s** from Augustine's Confessions.

TASK:
1. Use the public-domain source text from Project Gutenberg eBook #3296 or an equivalent open-source directory.
2. Output only the requested chapter, verbatim, and include the BOOK and CHAPTER headings as in the source.
3. Do not add commentary or summaries.`, reference)
}

// Intro is the opening request of a chat about c. Free chat has none and
// opens with Greeting instead.
func Intro(c domain.StudyContext) (string, bool) {
	switch v := c.(type) {
	case domain.ConfessionContext:
		return fmt.Sprintf("I am studying the %s. Please provide a brief 2-sentence introduction to this document and its historical context.", v.Confession.Title), true
	case domain.BibleContext:
		return fmt.Sprintf("I am studying the %s. Please provide a brief 2-sentence introduction to this translation and its significance to Reformed theology.", v.Version.Title), true
	case domain.HymnContext:
		return fmt.Sprintf("I want to study the hymn %q by %s. Please cross-reference this with https://hymns.countedfaithful.org/numberListing.php if available, or provide the standard text. Provide the lyrics and a brief theological analysis.", v.Hymn.Title, v.Hymn.Author), true
	default:
		return "", false
	}
}
