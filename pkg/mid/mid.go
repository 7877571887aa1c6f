package mid

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// marker tags the record as a length-prefixed string field.
	marker = 0x0A

	// scheme is the prefix stripped by Normalize.
	scheme = "kg:"

	// ProfileBaseURL is the fixed prefix of every candidate profile URL.
	ProfileBaseURL = "https://profile.google.com/cp/"

	// MaxPathBytes is the largest normalized path representable by the
	// single-byte length prefix.
	MaxPathBytes = 255
)

// supportedPrefixes lists the raw identifier shapes the encoder accepts.
// Only topic (/m/) and graph (/g/) entities have Discover profiles.
var supportedPrefixes = [...]string{"kg:/m/", "kg:/g/"}

// Status classifies the terminal outcome of resolving one identifier.
type Status int

const (
	// StatusEncoded means a candidate profile URL was produced.
	StatusEncoded Status = iota

	// StatusFormatMismatch means the raw identifier matches neither
	// kg:/m/ nor kg:/g/. This is an expected branch, not an error.
	StatusFormatMismatch

	// StatusRangeError means the normalized path does not fit the
	// single-byte length prefix.
	StatusRangeError
)

// String returns a stable lowercase name, used in JSON responses and logs.
func (s Status) String() string {
	switch s {
	case StatusEncoded:
		return "encoded"
	case StatusFormatMismatch:
		return "format_mismatch"
	case StatusRangeError:
		return "range_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// RangeError reports a normalized path whose UTF-8 encoding exceeds the
// single-byte length prefix. The offending path is retained for diagnosis.
type RangeError struct {
	Path    string
	ByteLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mid: path %q is %d bytes, exceeds single-byte length prefix limit of %d", e.Path, e.ByteLen, MaxPathBytes)
}

// Result is the terminal outcome for a single identifier. URL is set only
// for StatusEncoded; Err only for StatusRangeError.
type Result struct {
	Status Status
	URL    string
	Err    error
}

// Supported reports whether the raw, unnormalized identifier carries one of
// the recognized type prefixes. The gate inspects the full "kg:/m/" or
// "kg:/g/" shape even though Normalize strips only "kg:"; the normalized
// path must still contain the /m/ or /g/ segment for the encoding to mean
// anything downstream.
func Supported(raw string) bool {
	for _, p := range supportedPrefixes {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

// Normalize strips a leading "kg:" from the identifier and returns the
// remainder unchanged. Identifiers without the prefix pass through as-is;
// validation is the caller's concern, not the normalizer's.
func Normalize(s string) string {
	return strings.TrimPrefix(s, scheme)
}

// EncodeProfileURL packs the normalized path into the length-prefixed record,
// base64url-encodes it, and embeds it in the profile URL template. The
// base64 padding is kept; the consumers of these URLs have only ever been
// observed accepting padded tokens.
func EncodeProfileURL(path string) (string, error) {
	b := []byte(path)
	if len(b) > MaxPathBytes {
		return "", &RangeError{Path: path, ByteLen: len(b)}
	}

	record := make([]byte, 0, 2+len(b))
	record = append(record, marker, byte(len(b)))
	record = append(record, b...)

	return ProfileBaseURL + base64.URLEncoding.EncodeToString(record), nil
}

// Resolve runs one raw identifier through the gate, the normalizer, and the
// encoder. Every path is terminal; callers processing a batch evaluate each
// identifier independently and never abort on a single failure.
func Resolve(raw string) Result {
	if !Supported(raw) {
		return Result{Status: StatusFormatMismatch}
	}

	url, err := EncodeProfileURL(Normalize(raw))
	if err != nil {
		return Result{Status: StatusRangeError, Err: err}
	}
	return Result{Status: StatusEncoded, URL: url}
}
