package store_test

import (
	"testing"

	"marketplace-client/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64
	Name string
}

func newItems() *store.Container[item] {
	return store.NewContainer(func(i item) int64 { return i.ID })
}

func TestContainer_BeginSetsLoadingAndClearsError(t *testing.T) {
	c := newItems()
	c.Fail(c.Begin(), "Failed to fetch orders")
	require.Equal(t, "Failed to fetch orders", c.Err())

	c.Begin()

	snap := c.Snapshot()
	assert.True(t, snap.Loading)
	assert.Empty(t, snap.Error)
}

func TestContainer_FailKeepsDataAndNextSuccessClearsError(t *testing.T) {
	c := newItems()
	c.ReplaceAll(c.Begin(), []item{{ID: 1, Name: "a"}})
	c.SetCurrent(c.Begin(), item{ID: 1, Name: "a"})

	assert.True(t, c.Fail(c.Begin(), "Failed to fetch orders"))

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "Failed to fetch orders", snap.Error)
	assert.Equal(t, []item{{ID: 1, Name: "a"}}, snap.Items)
	require.NotNil(t, snap.Current)
	assert.Equal(t, int64(1), snap.Current.ID)

	c.ReplaceAll(c.Begin(), []item{{ID: 2, Name: "b"}})

	snap = c.Snapshot()
	assert.Empty(t, snap.Error)
	assert.Equal(t, []item{{ID: 2, Name: "b"}}, snap.Items)
}

func TestContainer_StaleCompletionIsDiscarded(t *testing.T) {
	c := newItems()

	slow := c.Begin()
	fast := c.Begin()

	assert.True(t, c.ReplaceAll(fast, []item{{ID: 2, Name: "new"}}))
	assert.False(t, c.Loading())

	assert.False(t, c.ReplaceAll(slow, []item{{ID: 1, Name: "old"}}))
	assert.False(t, c.Fail(slow, "late failure"))

	snap := c.Snapshot()
	assert.Equal(t, []item{{ID: 2, Name: "new"}}, snap.Items)
	assert.Empty(t, snap.Error)
}

func TestContainer_LoadingWhileNewerTicketOutstanding(t *testing.T) {
	c := newItems()

	first := c.Begin()
	second := c.Begin()

	assert.True(t, c.ReplaceAll(first, []item{{ID: 1}}))
	assert.True(t, c.Loading())

	assert.True(t, c.ReplaceAll(second, []item{{ID: 2}}))
	assert.False(t, c.Loading())
	assert.Equal(t, []item{{ID: 2}}, c.Items())
}

func TestContainer_Mutations(t *testing.T) {
	tests := []struct {
		name        string
		apply       func(c *store.Container[item], t store.Ticket)
		wantItems   []item
		wantCurrent *item
	}{
		{
			name:        "prepend",
			apply:       func(c *store.Container[item], t store.Ticket) { c.Prepend(t, item{ID: 9}) },
			wantItems:   []item{{ID: 9}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
			wantCurrent: &item{ID: 2, Name: "b"},
		},
		{
			name:        "append",
			apply:       func(c *store.Container[item], t store.Ticket) { c.Append(t, item{ID: 9}) },
			wantItems:   []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 9}},
			wantCurrent: &item{ID: 2, Name: "b"},
		},
		{
			name:        "replace refreshes current",
			apply:       func(c *store.Container[item], t store.Ticket) { c.Replace(t, item{ID: 2, Name: "B"}) },
			wantItems:   []item{{ID: 1, Name: "a"}, {ID: 2, Name: "B"}},
			wantCurrent: &item{ID: 2, Name: "B"},
		},
		{
			name:        "replace unknown id changes nothing",
			apply:       func(c *store.Container[item], t store.Ticket) { c.Replace(t, item{ID: 5, Name: "x"}) },
			wantItems:   []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}},
			wantCurrent: &item{ID: 2, Name: "b"},
		},
		{
			name:      "remove drops current",
			apply:     func(c *store.Container[item], t store.Ticket) { c.Remove(t, 2) },
			wantItems: []item{{ID: 1, Name: "a"}},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			c := newItems()
			c.ReplaceAll(c.Begin(), []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
			c.SetCurrent(c.Begin(), item{ID: 2, Name: "b"})

			testCase.apply(c, c.Begin())

			snap := c.Snapshot()
			assert.Equal(t, testCase.wantItems, snap.Items)
			assert.Equal(t, testCase.wantCurrent, snap.Current)
			assert.False(t, snap.Loading)
		})
	}
}

func TestContainer_PatchLeavesLoadingAlone(t *testing.T) {
	c := newItems()
	c.ReplaceAll(c.Begin(), []item{{ID: 1, Name: "a"}})

	c.Begin()
	c.Patch(item{ID: 1, Name: "patched"})

	snap := c.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, "patched", snap.Items[0].Name)
}

func TestContainer_SnapshotIsACopy(t *testing.T) {
	c := newItems()
	c.ReplaceAll(c.Begin(), []item{{ID: 1, Name: "a"}})
	c.SetCurrent(c.Begin(), item{ID: 1, Name: "a"})

	snap := c.Snapshot()
	snap.Items[0].Name = "changed"
	snap.Current.Name = "changed"

	again := c.Snapshot()
	assert.Equal(t, "a", again.Items[0].Name)
	assert.Equal(t, "a", again.Current.Name)
}

func TestContainer_FindAndReset(t *testing.T) {
	c := newItems()
	c.ReplaceAll(c.Begin(), []item{{ID: 1, Name: "a"}})
	c.SetCurrent(c.Begin(), item{ID: 3, Name: "c"})

	found, ok := c.Find(3)
	assert.True(t, ok)
	assert.Equal(t, "c", found.Name)
	_, ok = c.Find(4)
	assert.False(t, ok)

	c.Reset()
	assert.Empty(t, c.Items())
	_, ok = c.Current()
	assert.False(t, ok)
}
