// Package fetcher performs single-page HTTP retrieval for the analysis
// engine.
//
// A Fetcher issues exactly one GET per call with a fixed browser identity
// header and a caller-scoped timeout, then classifies the outcome:
//
//   - a response (any status code) becomes a Result; callers decide how to
//     treat non-200 statuses
//   - transport, DNS, and TLS failures become a FetchError with KindNetwork
//   - exceeding the timeout becomes a FetchError with KindTimeout
//
// There are no retries and no shared mutable state: the same Fetcher is safe
// for concurrent use by many workers.
package fetcher
