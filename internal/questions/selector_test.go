package questions

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSeen struct {
	seen   map[string]struct{}
	err    error
	calls  int
	userID string
}

func (f *fakeSeen) SeenQuestions(_ context.Context, userID string) (map[string]struct{}, error) {
	f.calls++
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	if f.seen == nil {
		return map[string]struct{}{}, nil
	}
	return f.seen, nil
}

func seenOf(list ...[]string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, l := range list {
		for _, q := range l {
			out[q] = struct{}{}
		}
	}
	return out
}

func newTestSelector(seen SeenQuestionSource) *Selector {
	return NewSelector(Default(), seen, WithRand(rand.New(rand.NewPCG(1, 2))))
}

func assertDistinct(t *testing.T, got []string) {
	t.Helper()
	set := map[string]struct{}{}
	for _, q := range got {
		_, dup := set[q]
		require.Falsef(t, dup, "duplicate question %q", q)
		set[q] = struct{}{}
	}
}

func TestSelectDrawsFromPairOrBackfill(t *testing.T) {
	c := Default()
	sel := newTestSelector(&fakeSeen{})
	generic := seenOf(c.Generic())

	for _, cat := range []Category{Behavioral, Technical, Leadership, UPSC} {
		for _, lvl := range levels {
			allowed := seenOf(c.Questions(cat, lvl))
			for n := 1; n <= 20; n++ {
				got, err := sel.Select(context.Background(), Request{UserID: "u1", Category: cat, Level: lvl, Count: n})
				require.NoError(t, err)
				assert.LessOrEqual(t, len(got), n)
				assertDistinct(t, got)
				for _, q := range got {
					_, inPair := allowed[q]
					_, inGeneric := generic[q]
					assert.Truef(t, inPair || inGeneric, "%s/%s returned foreign question %q", cat, lvl, q)
				}
			}
		}
	}
}

func TestSelectExactFitTechnicalMid(t *testing.T) {
	sel := newTestSelector(&fakeSeen{})
	want := Default().Questions(Technical, Mid)

	got, err := sel.Select(context.Background(), Request{Category: Technical, Level: Mid, Count: 5})

	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.ElementsMatch(t, want, got)
}

func TestSelectSkipsSeenQuestions(t *testing.T) {
	c := Default()
	entry := c.Questions(Behavioral, Entry)
	seen := &fakeSeen{seen: seenOf(entry[:15])}
	sel := newTestSelector(seen)

	got, err := sel.Select(context.Background(), Request{UserID: "u1", Category: Behavioral, Level: Entry, Count: 5})

	require.NoError(t, err)
	assert.ElementsMatch(t, entry[15:], got)
	assert.Equal(t, 1, seen.calls)
	assert.Equal(t, "u1", seen.userID)
}

func TestSelectBackfillsWhenPrimaryExhausted(t *testing.T) {
	c := Default()
	primary := c.Questions(Technical, Senior)
	generic := c.Generic()
	seen := seenOf(primary, generic[:10])
	sel := newTestSelector(&fakeSeen{seen: seen})

	got, err := sel.Select(context.Background(), Request{UserID: "u1", Category: Technical, Level: Senior, Count: 8})

	require.NoError(t, err)
	assert.Len(t, got, 8)
	for _, q := range got {
		assert.NotContains(t, seen, q)
		assert.Contains(t, generic[10:], q)
	}
}

func TestSelectShortResultWhenEverythingSeen(t *testing.T) {
	c := Default()
	primary := c.Questions(Leadership, Mid)
	generic := c.Generic()
	sel := newTestSelector(&fakeSeen{seen: seenOf(primary, generic[:17])})

	got, err := sel.Select(context.Background(), Request{UserID: "u1", Category: Leadership, Level: Mid, Count: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, generic[17:], got)

	sel = newTestSelector(&fakeSeen{seen: seenOf(primary, generic)})
	got, err = sel.Select(context.Background(), Request{UserID: "u1", Category: Leadership, Level: Mid, Count: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSelectNoBackfillWhenPrimarySuffices(t *testing.T) {
	c := Default()
	allowed := c.Questions(UPSC, Mid)
	sel := newTestSelector(&fakeSeen{})

	got, err := sel.Select(context.Background(), Request{Category: UPSC, Level: Mid, Count: 20})

	require.NoError(t, err)
	assert.ElementsMatch(t, allowed, got)
}

func TestSelectMixesBackfillForLargeCounts(t *testing.T) {
	c := Default()
	sel := newTestSelector(&fakeSeen{})
	pool := seenOf(c.Questions(Technical, Mid), c.Generic())

	got, err := sel.Select(context.Background(), Request{Category: Technical, Level: Mid, Count: 20})

	require.NoError(t, err)
	assert.Len(t, got, 20)
	assertDistinct(t, got)
	for _, q := range got {
		assert.Contains(t, pool, q)
	}
}

func TestSelectFallbacks(t *testing.T) {
	c := Default()
	baseline := c.Questions(Behavioral, Entry)
	sel := newTestSelector(&fakeSeen{})

	t.Run("unknown category uses baseline", func(t *testing.T) {
		got, err := sel.Select(context.Background(), Request{Category: "astrology", Level: Senior, Count: 20})
		require.NoError(t, err)
		assert.ElementsMatch(t, baseline, got)
	})

	t.Run("unknown level uses entry tier", func(t *testing.T) {
		got, err := sel.Select(context.Background(), Request{Category: Technical, Level: ParseLevel("principal"), Count: 20})
		require.NoError(t, err)
		assert.ElementsMatch(t, c.Questions(Technical, Entry), got)
	})
}

func TestSelectAnonymousSkipsHistory(t *testing.T) {
	seen := &fakeSeen{err: errors.New("must not be called")}
	sel := newTestSelector(seen)

	got, err := sel.Select(context.Background(), Request{Category: Technical, Level: Mid, Count: 3})

	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 0, seen.calls)
}

func TestSelectPropagatesHistoryError(t *testing.T) {
	boom := errors.New("connection reset")
	sel := newTestSelector(&fakeSeen{err: boom})

	got, err := sel.Select(context.Background(), Request{UserID: "u1", Category: Technical, Level: Mid, Count: 3})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
}

func TestSelectNonPositiveCount(t *testing.T) {
	sel := newTestSelector(&fakeSeen{})
	got, err := sel.Select(context.Background(), Request{Category: Technical, Level: Mid, Count: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectDoesNotMutateCatalog(t *testing.T) {
	c := Default()
	before := c.Questions(Behavioral, Entry)
	sel := newTestSelector(&fakeSeen{})

	for i := 0; i < 5; i++ {
		_, err := sel.Select(context.Background(), Request{Category: Behavioral, Level: Entry, Count: 20})
		require.NoError(t, err)
	}
	assert.Equal(t, before, c.Questions(Behavioral, Entry))
}

func TestShuffleIsAPermutation(t *testing.T) {
	sel := newTestSelector(nil)
	list := []string{"a", "b", "c", "d", "e", "f"}
	sel.shuffle(list)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f"}, list)
}

func TestShuffleReachesEveryPosition(t *testing.T) {
	sel := newTestSelector(nil)
	positions := map[int]int{}
	for i := 0; i < 600; i++ {
		list := []string{"x", "b", "c"}
		sel.shuffle(list)
		for idx, v := range list {
			if v == "x" {
				positions[idx]++
			}
		}
	}
	for idx := 0; idx < 3; idx++ {
		assert.Greaterf(t, positions[idx], 100, "position %d reached %d times", idx, positions[idx])
	}
}
