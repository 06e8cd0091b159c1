package attendance

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByRange_InclusiveBounds(t *testing.T) {
	records := []Record{
		{ID: "before", Date: "2024-01-04"},
		{ID: "start", Date: "2024-01-05"},
		{ID: "inside", Date: "2024-01-07"},
		{ID: "end", Date: "2024-01-10"},
		{ID: "after", Date: "2024-01-11"},
	}

	got, err := FilterByRange(records, "2024-01-05", "2024-01-10")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"start", "inside", "end"}, ids)
}

func TestFilterByRange_OpenBounds(t *testing.T) {
	records := []Record{
		{ID: "1", Date: "2023-06-01"},
		{ID: "2", Date: "2024-01-05"},
		{ID: "3", Date: "2025-01-01"},
	}

	fromOnly, err := FilterByRange(records, "2024-01-01", "")
	require.NoError(t, err)
	assert.Len(t, fromOnly, 2)

	toOnly, err := FilterByRange(records, "", "2024-01-05")
	require.NoError(t, err)
	assert.Len(t, toOnly, 2)

	all, err := FilterByRange(records, "", "")
	require.NoError(t, err)
	assert.Equal(t, records, all)
}

func TestFilterByRange_UnboundedKeepsMalformed(t *testing.T) {
	records := []Record{{ID: "bad", Date: "not-a-date"}, {ID: "ok", Date: "2024-01-01"}}

	all, err := FilterByRange(records, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bounded, err := FilterByRange(records, "2000-01-01", "")
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, "ok", bounded[0].ID)
}

func TestFilterByRange_InvalidBound(t *testing.T) {
	_, err := FilterByRange(nil, "2024/01/01", "")
	assert.True(t, errors.Is(err, ErrInvalidDate))

	_, err = FilterByRange(nil, "", "tomorrow")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestFilterByRange_Subset(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	bounds := []string{"", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05"}

	for iter := 0; iter < 100; iter++ {
		xs := randomRecords(rng, rng.Intn(30))
		start := bounds[rng.Intn(len(bounds))]
		end := bounds[rng.Intn(len(bounds))]

		got, err := FilterByRange(xs, start, end)
		require.NoError(t, err)

		// Every kept record appears in xs, in the same relative order.
		j := 0
		for _, r := range got {
			for j < len(xs) && xs[j].ID != r.ID {
				j++
			}
			require.Less(t, j, len(xs), "record %s not found in order", r.ID)
			j++
		}
		assert.LessOrEqual(t, len(got), len(xs))
	}
}
