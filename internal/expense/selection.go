package expense

import "sort"

// Selection tracks which record ids are checked for a bulk action. A
// selected id stays selected when the record scrolls off-page or is
// filtered out of the current view; it is only dropped when the record
// no longer exists in the store at all.
type Selection struct {
	ids map[int]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

// Add marks an id as selected
func (s *Selection) Add(id int) {
	s.ids[id] = struct{}{}
}

// Remove unmarks an id
func (s *Selection) Remove(id int) {
	delete(s.ids, id)
}

// Toggle flips an id's selection state
func (s *Selection) Toggle(id int) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Has reports whether an id is selected
func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[int]struct{})
}

// IDs returns the selected ids in ascending order
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Reconcile drops selected ids that no longer exist in the snapshot.
// Bulk actions should reconcile against the store's latest snapshot
// before acting so they only carry ids the store still knows.
func (s *Selection) Reconcile(snapshot []*Record) {
	existing := make(map[int]struct{}, len(snapshot))
	for _, r := range snapshot {
		existing[r.ID] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := existing[id]; !ok {
			delete(s.ids, id)
		}
	}
}
