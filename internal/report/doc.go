// Package report renders analysis results for the export layer.
//
// Three formats are provided behind one Writer interface:
//   - CSVWriter: one row per task with every field flattened losslessly,
//     the format the audited sheets are re-imported from
//   - JSONWriter: full records for tool integration
//   - MarkdownWriter: a human-readable summary with per-page tables
//
// MultiWriter fans a single report out to several destinations, e.g.
// terminal and file at once.
package report
