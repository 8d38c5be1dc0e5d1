package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	_, err := Parse(a.String())
	require.NoError(t, err)
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	id := NewAt(at)

	require.Equal(t, at.UnixMilli(), id.Time().UnixMilli())
}

func TestIDsSortByCreationTime(t *testing.T) {
	t.Parallel()

	early := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.Less(t, early.String(), late.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a generated id", func(t *testing.T) {
		id := New()
		parsed, err := Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id := New()
		parsed, err := Parse("  " + id.String() + "\n")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := Parse("")
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := Parse("not-a-ulid")
		require.ErrorIs(t, err, ErrInvalid)
	})
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { MustParse("nope") })
}
