package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-5))
	require.Equal(t, 10, NormalizeLimit(10))
	require.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	require.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	encoded := EncodeCursor(Cursor{CreatedAt: at, ID: "CLT1A2B3C4D5E6F"})

	decoded, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)
	require.True(t, decoded.CreatedAt.Equal(at))
	require.Equal(t, "CLT1A2B3C4D5E6F", decoded.ID)
}

func TestParseCursorEmptyMeansNoCursor(t *testing.T) {
	t.Parallel()

	decoded, err := ParseCursor("   ")
	require.NoError(t, err)
	require.Nil(t, decoded)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, value := range []string{
		"not-base64!",
		"bm8tc2VwYXJhdG9y",             // decodes without a separator
		"bm90LWEtdGltZXxDTFQxMjM=",     // bad timestamp
		"MjAyNC0wNi0wMVQwMDowMDowMFp8", // blank id
	} {
		_, err := ParseCursor(value)
		require.Error(t, err, value)
	}
}
