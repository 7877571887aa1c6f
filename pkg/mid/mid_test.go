package mid_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/serplens/kgprofile/pkg/mid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "standard topic mid", in: "kg:/m/0k8z", want: "/m/0k8z"},
		{name: "standard graph mid", in: "kg:/g/11b6h7_s2b", want: "/g/11b6h7_s2b"},
		{name: "no prefix passes through", in: "/m/0k8z", want: "/m/0k8z"},
		{name: "unrelated string passes through", in: "hello", want: "hello"},
		{name: "empty string", in: "", want: ""},
		{name: "bare prefix becomes empty", in: "kg:", want: ""},
		{name: "prefix stripped only once", in: "kg:kg:/m/x", want: "kg:/m/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mid.Normalize(tt.in))
		})
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "topic entity", in: "kg:/m/0k8z", want: true},
		{name: "graph entity", in: "kg:/g/11b6h7_s2b", want: true},
		{name: "unknown type segment", in: "kg:/x/unknown", want: false},
		{name: "missing scheme", in: "/m/0k8z", want: false},
		{name: "empty string", in: "", want: false},
		{name: "bare scheme", in: "kg:", want: false},
		{name: "prefix only no token", in: "kg:/m/", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mid.Supported(tt.in))
		})
	}
}

func TestEncodeProfileURL(t *testing.T) {
	t.Run("record layout", func(t *testing.T) {
		url, err := mid.EncodeProfileURL("/m/0k8z")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, mid.ProfileBaseURL))

		payload, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(url, mid.ProfileBaseURL))
		require.NoError(t, err)

		want := append([]byte{0x0A, 0x07}, []byte("/m/0k8z")...)
		assert.Equal(t, want, payload)
	})

	t.Run("deterministic known encoding", func(t *testing.T) {
		// Computed independently of the encoder under test.
		record := append([]byte{0x0A, byte(len("/m/0k8z"))}, "/m/0k8z"...)
		want := mid.ProfileBaseURL + base64.URLEncoding.EncodeToString(record)

		got, err := mid.EncodeProfileURL("/m/0k8z")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, "https://profile.google.com/cp/CgcvbS8wazh6", got)
	})

	t.Run("empty path encodes an empty record", func(t *testing.T) {
		url, err := mid.EncodeProfileURL("")
		require.NoError(t, err)

		payload, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(url, mid.ProfileBaseURL))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x0A, 0x00}, payload)
	})

	t.Run("length prefix counts bytes not runes", func(t *testing.T) {
		path := "/m/日本" // 3 ASCII bytes + two 3-byte runes
		url, err := mid.EncodeProfileURL(path)
		require.NoError(t, err)

		payload, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(url, mid.ProfileBaseURL))
		require.NoError(t, err)
		assert.Equal(t, byte(len([]byte(path))), payload[1])
		assert.Equal(t, path, string(payload[2:]))
	})

	t.Run("boundary at 255 bytes", func(t *testing.T) {
		path := strings.Repeat("a", 255)
		url, err := mid.EncodeProfileURL(path)
		require.NoError(t, err)

		payload, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(url, mid.ProfileBaseURL))
		require.NoError(t, err)
		assert.Equal(t, byte(255), payload[1])
	})

	t.Run("256 bytes rejected", func(t *testing.T) {
		_, err := mid.EncodeProfileURL(strings.Repeat("a", 256))
		require.Error(t, err)

		var rangeErr *mid.RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 256, rangeErr.ByteLen)
	})

	t.Run("url shape", func(t *testing.T) {
		url, err := mid.EncodeProfileURL("/g/11b6h7_s2b")
		require.NoError(t, err)
		assert.Regexp(t, `^https://profile\.google\.com/cp/[A-Za-z0-9_-]+=*$`, url)
	})
}

func TestEncodeProfileURLRoundTrip(t *testing.T) {
	paths := []string{
		"/m/0k8z",
		"/g/11b6h7_s2b",
		"/m/",
		"/m/with spaces and ünïcode",
		strings.Repeat("x", 255),
	}

	for _, path := range paths {
		url, err := mid.EncodeProfileURL(path)
		require.NoError(t, err, "path %q", path)

		payload, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(url, mid.ProfileBaseURL))
		require.NoError(t, err, "path %q", path)

		require.GreaterOrEqual(t, len(payload), 2)
		assert.Equal(t, byte(0x0A), payload[0])
		assert.Equal(t, byte(len([]byte(path))), payload[1])
		assert.Equal(t, path, string(payload[2:]))
	}
}

func TestResolve(t *testing.T) {
	t.Run("topic mid encodes", func(t *testing.T) {
		res := mid.Resolve("kg:/m/0k8z")
		assert.Equal(t, mid.StatusEncoded, res.Status)
		assert.Equal(t, "https://profile.google.com/cp/CgcvbS8wazh6", res.URL)
		assert.NoError(t, res.Err)
	})

	t.Run("graph mid encodes", func(t *testing.T) {
		res := mid.Resolve("kg:/g/11b6h7_s2b")
		assert.Equal(t, mid.StatusEncoded, res.Status)
		assert.NotEmpty(t, res.URL)
	})

	t.Run("unknown type segment is gated out", func(t *testing.T) {
		res := mid.Resolve("kg:/x/unknown")
		assert.Equal(t, mid.StatusFormatMismatch, res.Status)
		assert.Empty(t, res.URL)
		assert.NoError(t, res.Err)
	})

	t.Run("empty identifier is gated out", func(t *testing.T) {
		res := mid.Resolve("")
		assert.Equal(t, mid.StatusFormatMismatch, res.Status)
	})

	t.Run("oversized identifier passes the gate and fails encoding", func(t *testing.T) {
		res := mid.Resolve("kg:/g/" + strings.Repeat("a", 300))
		assert.Equal(t, mid.StatusRangeError, res.Status)
		assert.Empty(t, res.URL)

		var rangeErr *mid.RangeError
		require.ErrorAs(t, res.Err, &rangeErr)
		assert.Contains(t, rangeErr.Error(), "exceeds single-byte length prefix")
	})

	t.Run("gate checks raw string while normalizer strips scheme only", func(t *testing.T) {
		// "/m/0k8z" without the scheme fails the gate even though the
		// encoder could represent it.
		res := mid.Resolve("/m/0k8z")
		assert.Equal(t, mid.StatusFormatMismatch, res.Status)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "encoded", mid.StatusEncoded.String())
	assert.Equal(t, "format_mismatch", mid.StatusFormatMismatch.String())
	assert.Equal(t, "range_error", mid.StatusRangeError.String())
}
