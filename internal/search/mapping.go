package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping stems names and descriptions in English and keeps type,
// id and tags as exact keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = en.AnalyzerName
	nameField.Store = true
	docMapping.AddFieldMappingsAt("name", nameField)

	subtitleField := bleve.NewTextFieldMapping()
	subtitleField.Analyzer = en.AnalyzerName
	subtitleField.Store = true
	docMapping.AddFieldMappingsAt("subtitle", subtitleField)

	descField := bleve.NewTextFieldMapping()
	descField.Analyzer = en.AnalyzerName
	descField.Store = false
	docMapping.AddFieldMappingsAt("description", descField)

	authorField := bleve.NewTextFieldMapping()
	authorField.Analyzer = en.AnalyzerName
	authorField.Store = true
	docMapping.AddFieldMappingsAt("author", authorField)

	typeField := bleve.NewTextFieldMapping()
	typeField.Analyzer = keyword.Name
	typeField.Store = true
	docMapping.AddFieldMappingsAt("type", typeField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	docMapping.AddFieldMappingsAt("ref_id", idField)

	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = en.AnalyzerName
	docMapping.AddFieldMappingsAt("tags", tagsField)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
