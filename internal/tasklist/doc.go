// Package tasklist loads analysis tasks from spreadsheet-like sources.
//
// The expected layout follows the outreach-monitoring sheets this tool
// audits: a "Page URL" column plus numbered pairs of "TARGET PAGE n" and
// "ANCHOR n" columns. Each non-empty target cell in a row becomes one
// AnalysisTask, so a single row can yield several tasks. Header matching is
// case-insensitive and ignores surrounding whitespace.
//
// CSV files are read with the standard library; XLSX workbooks are read
// with excelize. Rows without a page URL are skipped, and a row whose
// target cells are all empty still yields one task (classified Skipped by
// the analyzer) so every sheet row stays visible in the output.
package tasklist
