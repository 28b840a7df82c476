package search

import (
	"strings"

	"github.com/MrSnakeDoc/confessio/internal/domain"
)

// DocType is the kind of catalog entry a hit points at.
type DocType string

const (
	DocConfession DocType = "confession"
	DocTheologian DocType = "theologian"
	DocHymn       DocType = "hymn"
	DocBible      DocType = "bible"
	DocTopic      DocType = "topic"
	DocConnection DocType = "connection"
)

// DocTypes lists every indexed kind.
func DocTypes() []DocType {
	return []DocType{DocConfession, DocTheologian, DocHymn, DocBible, DocTopic, DocConnection}
}

// Document is one indexed catalog entry.
type Document struct {
	ID          string
	Type        DocType
	RefID       string
	Name        string
	Subtitle    string
	Description string
	Author      string
	Tags        []string
}

func (d *Document) toMap() map[string]any {
	return map[string]any{
		"type":        string(d.Type),
		"ref_id":      d.RefID,
		"name":        d.Name,
		"subtitle":    d.Subtitle,
		"description": d.Description,
		"author":      d.Author,
		"tags":        d.Tags,
	}
}

func docID(t DocType, refID string) string { return string(t) + ":" + refID }

// Documents flattens a catalog into indexable entries. Topics are deduplicated
// across the daily list and the systematic categories.
func Documents(cat *domain.Catalog) []*Document {
	docs := make([]*Document, 0, len(cat.Confessions)+len(cat.Theologians)+len(cat.Hymns)+len(cat.Bibles)+len(cat.Connections)+32)

	for _, c := range cat.Confessions {
		docs = append(docs, &Document{
			ID: docID(DocConfession, c.ID), Type: DocConfession, RefID: c.ID,
			Name: c.Title, Subtitle: c.ShortTitle, Description: c.Description, Author: c.Author, Tags: c.Tags,
		})
	}
	for _, t := range cat.Theologians {
		docs = append(docs, &Document{
			ID: docID(DocTheologian, t.ID), Type: DocTheologian, RefID: t.ID,
			Name: t.Name, Subtitle: t.Dates, Description: t.Description + " " + strings.Join(t.Works, " "),
			Tags: []string{t.Century, t.Origin},
		})
	}
	for _, h := range cat.Hymns {
		docs = append(docs, &Document{
			ID: docID(DocHymn, h.ID), Type: DocHymn, RefID: h.ID,
			Name: h.Title, Subtitle: h.Date, Description: h.Description, Author: h.Author, Tags: h.Tags,
		})
	}
	for _, b := range cat.Bibles {
		docs = append(docs, &Document{
			ID: docID(DocBible, b.ID), Type: DocBible, RefID: b.ID,
			Name: b.Title, Subtitle: b.ShortTitle, Description: b.Description, Tags: b.Tags,
		})
	}
	for _, c := range cat.Connections {
		docs = append(docs, &Document{
			ID: docID(DocConnection, c.ID), Type: DocConnection, RefID: c.ID,
			Name: c.Source.Title + " " + c.Target.Title, Subtitle: string(c.Type),
			Description: c.Reasoning, Tags: []string{c.Source.Category, c.Target.Category},
		})
	}

	seen := map[string]struct{}{}
	addTopic := func(topic, category string) {
		if _, ok := seen[topic]; ok {
			return
		}
		seen[topic] = struct{}{}
		docs = append(docs, &Document{
			ID: docID(DocTopic, topic), Type: DocTopic, RefID: topic, Name: topic, Subtitle: category,
		})
	}
	for _, t := range cat.StudyTopics {
		addTopic(t, "")
	}
	for _, s := range cat.Systematics {
		for _, t := range s.Topics {
			addTopic(t, s.Category)
		}
	}

	return docs
}
