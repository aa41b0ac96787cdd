// Package model defines the core data structures used throughout LinkLens.
//
// This package contains the following main types:
//   - AnalysisTask: A single page-verification request (URL + expected link)
//   - LinkRecord: One anchor extracted from a page, with its rel tokens
//   - ExtractedPage: The SEO-relevant content pulled from a fetched page
//   - PageAnalysis: The final per-task record handed to the report layer
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetcher, extractor, matcher, analyzer,
// report) need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON and to a flat tabular
// row for CSV export.
package model
