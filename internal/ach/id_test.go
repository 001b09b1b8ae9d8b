package ach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDsAreDeterministic(t *testing.T) {
	a, err := Parse(readFixture(t, "ppd-credit.ach"))
	require.NoError(t, err)
	b, err := Parse(readFixture(t, "ppd-credit.ach"))
	require.NoError(t, err)

	assert.Len(t, a.ID, 64)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Batches[0].ID, b.Batches[0].ID)
	assert.Equal(t, a.Batches[0].Entries[1].ID, b.Batches[0].Entries[1].ID)
}

func TestIDsDifferAcrossFilesAndEntries(t *testing.T) {
	ppd, err := Parse(readFixture(t, "ppd-credit.ach"))
	require.NoError(t, err)
	ret, err := Parse(readFixture(t, "returns.ach"))
	require.NoError(t, err)

	assert.NotEqual(t, ppd.ID, ret.ID)
	assert.NotEqual(t, ppd.ID, ppd.Batches[0].ID)
	entries := ppd.Batches[0].Entries
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestPopulateIDsKeepsExistingIDs(t *testing.T) {
	f := &File{ID: "fixed", Batches: []*Batch{{ID: "batch", Entries: []*Entry{{}}}}}
	PopulateIDs(f, nil)

	assert.Equal(t, "fixed", f.ID)
	assert.Equal(t, "batch", f.Batches[0].ID)
	assert.Equal(t, hash("batch"), f.Batches[0].Entries[0].ID)
}
