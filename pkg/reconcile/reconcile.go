// Package reconcile diffs a submitted full list of recurring items against
// the stored list for one owner and applies the create/update/delete set.
// The same engine serves fixed bills and income sources.
package reconcile

import "fmt"

// Item is any record diffable by numeric id. A zero id means "not stored yet".
type Item interface {
	GetID() uint
}

// Store is the narrow persistence contract the engine drives. Update and
// Delete must report an error when the target row does not exist for the
// owner, so misses surface as per-item failures.
type Store[T Item] interface {
	Create(item T) error
	Update(item T) error
	Delete(id uint) error
}

// Failure records one item that could not be processed.
type Failure struct {
	Op  string `json:"operacao"`
	ID  uint   `json:"id"`
	Err string `json:"erro"`
}

// Result summarizes an applied reconciliation.
type Result struct {
	Created  int       `json:"criados"`
	Updated  int       `json:"atualizados"`
	Deleted  int       `json:"excluidos"`
	Failures []Failure `json:"falhas,omitempty"`
}

// Sync applies the full create/update pass, then deletes every stored id
// absent from the submission. The deletion set is computed from the stored
// list as it was before the pass. Semantics are best-effort: a failing item
// is recorded and the remaining items are still processed. There is no
// transaction around the set; the caller retries on partial failure.
func Sync[T Item](store Store[T], stored []T, submitted []T) Result {
	var res Result

	submittedIDs := make(map[uint]bool, len(submitted))
	for _, item := range submitted {
		if item.GetID() == 0 {
			if err := store.Create(item); err != nil {
				res.Failures = append(res.Failures, Failure{Op: "create", Err: err.Error()})
				continue
			}
			res.Created++
			continue
		}
		submittedIDs[item.GetID()] = true
		if err := store.Update(item); err != nil {
			res.Failures = append(res.Failures, Failure{Op: "update", ID: item.GetID(), Err: err.Error()})
			continue
		}
		res.Updated++
	}

	for _, item := range stored {
		id := item.GetID()
		if submittedIDs[id] {
			continue
		}
		if err := store.Delete(id); err != nil {
			res.Failures = append(res.Failures, Failure{Op: "delete", ID: id, Err: err.Error()})
			continue
		}
		res.Deleted++
	}

	return res
}

// ErrNotFound builds the error stores return when an update or delete target
// is missing for the owner.
func ErrNotFound(id uint) error {
	return fmt.Errorf("item %d not found", id)
}
