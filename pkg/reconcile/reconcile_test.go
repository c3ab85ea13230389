package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bill struct {
	ID     uint
	Name   string
	Amount float64
}

func (b bill) GetID() uint { return b.ID }

// memStore is an in-memory Store with optional per-op failure injection.
type memStore struct {
	nextID   uint
	rows     map[uint]bill
	failOn   map[string]bool
	creates  int
	journals []string
}

func newMemStore(rows ...bill) *memStore {
	s := &memStore{nextID: 100, rows: map[uint]bill{}, failOn: map[string]bool{}}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *memStore) Create(b bill) error {
	if s.failOn["create"] {
		return errors.New("create refused")
	}
	s.nextID++
	b.ID = s.nextID
	s.rows[b.ID] = b
	s.creates++
	s.journals = append(s.journals, "create")
	return nil
}

func (s *memStore) Update(b bill) error {
	if s.failOn["update"] {
		return errors.New("update refused")
	}
	if _, ok := s.rows[b.ID]; !ok {
		return ErrNotFound(b.ID)
	}
	s.rows[b.ID] = b
	s.journals = append(s.journals, "update")
	return nil
}

func (s *memStore) Delete(id uint) error {
	if s.failOn["delete"] {
		return errors.New("delete refused")
	}
	if _, ok := s.rows[id]; !ok {
		return ErrNotFound(id)
	}
	delete(s.rows, id)
	s.journals = append(s.journals, "delete")
	return nil
}

func stored(s *memStore) []bill {
	out := make([]bill, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out
}

func TestSyncCreateUpdateDelete(t *testing.T) {
	// stored {1, 2}; submitted {1 changed, one new} -> update 1, create new, delete 2
	store := newMemStore(
		bill{ID: 1, Name: "aluguel", Amount: 1200},
		bill{ID: 2, Name: "internet", Amount: 90},
	)
	res := Sync[bill](store, stored(store), []bill{
		{ID: 1, Name: "aluguel", Amount: 1350},
		{Name: "academia", Amount: 110},
	})

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Deleted)
	assert.Empty(t, res.Failures)

	require.Len(t, store.rows, 2)
	assert.Equal(t, 1350.0, store.rows[1].Amount)
	_, gone := store.rows[2]
	assert.False(t, gone, "id 2 should have been deleted")
}

func TestSyncDeletesComputedFromPrePassList(t *testing.T) {
	// a row created during the pass must not end up in the deletion set
	store := newMemStore(bill{ID: 1, Name: "luz", Amount: 200})
	before := stored(store)
	res := Sync[bill](store, before, []bill{
		{ID: 1, Name: "luz", Amount: 210},
		{Name: "agua", Amount: 80},
	})
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Deleted)
	assert.Len(t, store.rows, 2)
}

func TestSyncEmptySubmissionDeletesEverything(t *testing.T) {
	store := newMemStore(bill{ID: 1}, bill{ID: 2}, bill{ID: 3})
	res := Sync[bill](store, stored(store), nil)
	assert.Equal(t, 3, res.Deleted)
	assert.Empty(t, store.rows)
}

func TestSyncUpdateOfUnknownIDIsAFailure(t *testing.T) {
	store := newMemStore(bill{ID: 1})
	res := Sync[bill](store, stored(store), []bill{
		{ID: 99, Name: "fantasma", Amount: 10},
	})
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "update", res.Failures[0].Op)
	assert.Equal(t, uint(99), res.Failures[0].ID)
	// id 1 was not in the submission, so it still gets deleted
	assert.Equal(t, 1, res.Deleted)
}

func TestSyncBestEffortContinuesPastFailures(t *testing.T) {
	store := newMemStore(bill{ID: 1}, bill{ID: 2})
	store.failOn["update"] = true
	res := Sync[bill](store, stored(store), []bill{
		{ID: 1, Name: "a"},
		{Name: "b"},
		{ID: 2, Name: "c"},
	})
	// both updates failed, but the create still happened
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Updated)
	assert.Len(t, res.Failures, 2)
	assert.Equal(t, 1, store.creates)
}

func TestSyncDeleteFailureDoesNotAbortRemaining(t *testing.T) {
	store := newMemStore(bill{ID: 1}, bill{ID: 2})
	calls := 0
	flaky := &flakyDeleteStore{memStore: store, failFirst: true, calls: &calls}
	res := Sync[bill](flaky, stored(store), nil)
	assert.Equal(t, 2, calls, "both deletions attempted")
	assert.Equal(t, 1, res.Deleted)
	assert.Len(t, res.Failures, 1)
}

type flakyDeleteStore struct {
	*memStore
	failFirst bool
	calls     *int
}

func (s *flakyDeleteStore) Delete(id uint) error {
	*s.calls++
	if s.failFirst {
		s.failFirst = false
		return errors.New("transient")
	}
	return s.memStore.Delete(id)
}
