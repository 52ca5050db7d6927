package idx_test

import (
	"testing"
	"time"

	"github.com/lockstead/recovery/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidSortedIDs(t *testing.T) {
	t.Parallel()

	prev := idx.New()
	for range 100 {
		id := idx.New()
		_, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, -1, idx.Compare(prev, id), "IDs must sort in generation order")
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	valid := idx.New().String()

	id, err := idx.Parse(valid)
	require.NoError(t, err)
	require.Equal(t, valid, id.String())

	// Surrounding whitespace is tolerated.
	id, err = idx.Parse("  " + valid + " ")
	require.NoError(t, err)
	require.Equal(t, valid, id.String())

	for _, s := range []string{"", "not-a-ulid", "0000"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}

func TestIDTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := idx.NewAt(at)
	require.Equal(t, at.UnixMilli(), id.Time().UnixMilli())

	require.True(t, idx.Zero.IsZero())
	require.True(t, idx.Zero.Time().IsZero())
}
