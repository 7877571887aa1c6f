// Package mid derives candidate Google Discover profile URLs from Knowledge
// Graph machine identifiers (MIDs).
//
// A MID arrives from the Knowledge Graph Search API as an opaque string like
// "kg:/m/0k8z" or "kg:/g/11b6h7_s2b". The package gates on that raw shape,
// strips the "kg:" scheme, packs the remaining path into a length-prefixed
// binary record, and wraps the record in base64url inside a fixed URL
// template.
//
// # Record layout
//
// The encoded record is exactly
//
//	[0x0A, len(utf8(path))] + utf8(path)
//
// where the length occupies a single byte. Paths whose UTF-8 encoding exceeds
// 255 bytes cannot be represented and are rejected with a *RangeError rather
// than truncated.
//
// # Usage
//
//	res := mid.Resolve("kg:/m/0k8z")
//	switch res.Status {
//	case mid.StatusEncoded:
//	    fmt.Println(res.URL)
//	case mid.StatusFormatMismatch:
//	    // identifier is not a /m/ or /g/ entity, nothing to derive
//	case mid.StatusRangeError:
//	    log.Warn("cannot encode identifier", "error", res.Err)
//	}
//
// Every function here is pure: no I/O, no shared state, each call independent.
package mid
