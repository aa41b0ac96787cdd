// Package matcher classifies whether a page's extracted links satisfy a
// verification task.
//
// Domain membership uses registrable-domain equality: a link counts as
// pointing at the target iff its eTLD+1 equals the target's eTLD+1. The
// expected-path check is a plain substring test against the resolved
// absolute href, and the expected-anchor check is exact trimmed equality.
//
// NotFound and AnchorMismatch are classifications of a successful analysis,
// never errors.
package matcher
