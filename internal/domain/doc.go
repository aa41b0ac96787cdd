// Package domain normalizes URLs and host strings to their registrable
// domain (eTLD+1) and decides same-site equality.
//
// Design decision: We use golang.org/x/net/publicsuffix rather than
// splitting on the last two labels because multi-part suffixes
// (co.uk, com.au, github.io) make naive splitting wrong for a large share
// of real hosts. The package embeds the maintained public suffix list,
// so no network access is needed at runtime.
//
// Two hosts are "the same site" iff their registrable domains are equal,
// regardless of scheme, subdomain, port, or path:
//
//	domain.SameSite("http://blog.sub.example.co.uk/x", "example.co.uk") // true
package domain
