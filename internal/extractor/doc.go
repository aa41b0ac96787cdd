// Package extractor pulls SEO-relevant content out of fetched HTML.
//
// Extraction is tolerant by contract: a malformed document degrades
// gracefully. A missing title, robots directive, or canonical link yields a
// zero value instead of an error, and an anchor whose href cannot be
// resolved is skipped individually. Only a document that cannot be parsed
// at all fails the extraction with ErrParse.
//
// Design decision: We parse with goquery (which wraps golang.org/x/net/html)
// rather than walking html.Node trees by hand because:
//  1. The tokenizer underneath recovers from the malformed HTML that
//     dominates real outreach target pages
//  2. Selector-style access keeps the per-field rules short and auditable
//  3. goquery is the parsing layer the rest of this tool's ecosystem uses
package extractor
