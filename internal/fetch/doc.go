// Package fetch implements the resilient page-fetch protocol.
//
// A Fetcher owns one HTTP session and its mutable crawler identity.
// Each Fetch call runs a bounded retry loop with a distinct policy per
// failure mode:
//
//   - 200 carrying a challenge page: swap to the fallback User-Agent,
//     back off exponentially, retry
//   - 429: honor the server's Retry-After hint scaled by 2^attempt
//   - 404: fail immediately, never retried
//   - other HTTP errors and network failures: exponential backoff
//
// A randomized politeness delay precedes every request after the
// session's first. Both the delay and the backoff use an injectable
// sleep function so tests run without waiting.
//
// Design decision: We implement the fetch loop on net/http rather than
// a crawling framework because the retry state machine (per-status
// policies, identity rotation on challenge, Retry-After scaling) needs
// direct control over each response, and a framework would hide exactly
// the decisions this package exists to make.
package fetch
