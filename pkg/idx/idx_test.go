package idx_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/passageqa/pkg/idx"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.Len(t, id.String(), 26)

	parsed, err := idx.Parse(" " + id.String() + "\n")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestTime(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, tm, idx.NewAt(tm).Time(), time.Millisecond)

	require.True(t, idx.ID("trace-1").Time().IsZero())
}

func TestNewSortsInCreationOrder(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(tm)
	b := idx.NewAt(tm)
	require.Less(t, a.String(), b.String())
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep bool
	}{
		{"upstream id", "req-42:edge.syd_1", true},
		{"ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", true},
		{"empty", "", false},
		{"log injection", "abc\ninjected=1", false},
		{"spaces", "a b", false},
		{"too long", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.FromHeader(tt.in)
			if tt.keep {
				require.Equal(t, idx.ID(tt.in), got)
				return
			}
			_, err := idx.Parse(got.String())
			require.NoError(t, err, "expected a fresh ulid, got %q", got)
		})
	}
}

func TestNewConcurrentUnique(t *testing.T) {
	const workers, each = 8, 200

	var mu sync.Mutex
	seen := make(map[idx.ID]struct{}, workers*each)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range each {
				id := idx.New()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*each)
}
