package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("expense not found")

	// ErrNoteIndex is returned when a note position does not exist
	ErrNoteIndex = errors.New("note index out of range")

	// ErrEmptyNote is returned when a note has no content after trimming
	ErrEmptyNote = errors.New("note text is empty")

	// ErrInvalidStatus is returned for a status outside the review states
	// or an attempt to move a record back to Pending, which the store
	// does not expose.
	ErrInvalidStatus = errors.New("invalid status transition")
)

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Observer receives the post-mutation snapshot after every successful
// mutation. Delivery is synchronous and in mutation order; observers must
// not call back into mutating store methods.
type Observer func(snapshot []*Record)

type subscription struct {
	id       uuid.UUID
	observer Observer
}

// Store owns the authoritative expense collection. It is the only component
// that assigns ids, stamps submission times, or changes status and notes.
// Every mutation updates memory, writes a full snapshot to the persistence
// port, and notifies subscribers, in that order. Mutations are serialized
// by a mutex so the store is safe for concurrent hosts.
type Store struct {
	mu            sync.Mutex
	records       []*Record
	state         StateStore
	timeSource    TimeSource
	subscriptions []subscription
	onWriteError  func(error)
}

// NewStore creates a Store backed by the given persistence port, loading
// the prior snapshot or falling back to the built-in seed collection.
func NewStore(state StateStore) *Store {
	return NewStoreWithDeps(state, &defaultTimeSource{}, nil)
}

// NewStoreWithDeps creates a Store with custom dependencies. A nil
// timeSource means the real clock. onWriteError, if non-nil, is invoked
// whenever a persistence write fails; the in-memory mutation stands
// regardless so the caller's action is not lost.
func NewStoreWithDeps(state StateStore, timeSource TimeSource, onWriteError func(error)) *Store {
	if timeSource == nil {
		timeSource = &defaultTimeSource{}
	}
	s := &Store{
		state:        state,
		timeSource:   timeSource,
		onWriteError: onWriteError,
	}
	s.load()
	return s
}

// load restores the collection from the persistence port. Missing or
// corrupt snapshots fall back to the seed fixture rather than failing
// startup.
func (s *Store) load() {
	data, err := s.state.Load()
	if err != nil {
		slog.Warn("Failed to load expense state, seeding sample data", "error", err)
		s.records = seedRecords()
		s.persist()
		return
	}
	if data == nil {
		s.records = seedRecords()
		s.persist()
		return
	}

	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("Corrupt expense state, seeding sample data", "error", err)
		s.records = seedRecords()
		s.persist()
		return
	}
	for _, r := range records {
		if r.Notes == nil {
			r.Notes = []string{}
		}
	}
	s.records = records
}

// Create assigns the next id, stamps status and submission time, appends
// the record and returns a copy of it.
func (s *Store) Create(fields *Fields) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &Record{
		ID:             s.nextID(),
		Amount:         fields.Amount,
		PurchaseDate:   fields.PurchaseDate,
		Vendor:         fields.Vendor,
		Category:       fields.Category,
		Description:    fields.Description,
		EmployeeName:   fields.EmployeeName,
		Department:     fields.Department,
		Status:         StatusPending,
		SubmittedAt:    s.timeSource.Now(),
		AttachmentName: fields.AttachmentName,
		Notes:          []string{},
	}
	s.records = append(s.records, record)
	s.persistAndNotify()
	return record.clone()
}

// nextID is one greater than the current maximum id, or 1 when empty.
// Caller holds the lock.
func (s *Store) nextID() int {
	max := 0
	for _, r := range s.records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

// UpdateStatus replaces the status of the record with the given id.
// Only Approved and Rejected are accepted: reopening to Pending is not
// exposed.
func (s *Store) UpdateStatus(id int, status Status) (*Record, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return nil, fmt.Errorf("updating status of expense %d: %w", id, ErrNotFound)
	}
	record.Status = status
	s.persistAndNotify()
	return record.clone(), nil
}

// BulkUpdateStatus applies the status to every listed id that exists,
// silently skipping the rest, then persists and notifies once. The
// returned records are the ones actually updated.
func (s *Store) BulkUpdateStatus(ids []int, status Status) ([]*Record, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]*Record, 0, len(ids))
	for _, id := range ids {
		record := s.find(id)
		if record == nil {
			continue
		}
		record.Status = status
		updated = append(updated, record.clone())
	}
	if len(updated) > 0 {
		s.persistAndNotify()
	}
	return updated, nil
}

// AddNote appends free-text to the record's notes. Blank text is rejected
// defensively even though the form boundary should have caught it.
func (s *Store) AddNote(id int, text string) (*Record, error) {
	if isBlank(text) {
		return nil, ErrEmptyNote
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return nil, fmt.Errorf("adding note to expense %d: %w", id, ErrNotFound)
	}
	record.Notes = append(record.Notes, text)
	s.persistAndNotify()
	return record.clone(), nil
}

// DeleteNote removes the note at the given position
func (s *Store) DeleteNote(id, index int) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return nil, fmt.Errorf("deleting note from expense %d: %w", id, ErrNotFound)
	}
	if index < 0 || index >= len(record.Notes) {
		return nil, fmt.Errorf("deleting note %d from expense %d: %w", index, id, ErrNoteIndex)
	}
	record.Notes = append(record.Notes[:index], record.Notes[index+1:]...)
	s.persistAndNotify()
	return record.clone(), nil
}

// Delete removes the record entirely
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persistAndNotify()
			return nil
		}
	}
	return fmt.Errorf("deleting expense %d: %w", id, ErrNotFound)
}

// Get returns a copy of the record with the given id
func (s *Store) Get(id int) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return nil, fmt.Errorf("getting expense %d: %w", id, ErrNotFound)
	}
	return record.clone(), nil
}

// Snapshot returns a deep copy of the current collection
func (s *Store) Snapshot() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer and returns a function that cancels the
// subscription.
func (s *Store) Subscribe(observer Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.subscriptions = append(s.subscriptions, subscription{id: id, observer: observer})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscriptions {
			if sub.id == id {
				s.subscriptions = append(s.subscriptions[:i], s.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// find returns the live record with the given id. Caller holds the lock.
func (s *Store) find(id int) *Record {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Store) snapshotLocked() []*Record {
	snapshot := make([]*Record, len(s.records))
	for i, r := range s.records {
		snapshot[i] = r.clone()
	}
	return snapshot
}

// persist writes the full collection to the persistence port. A write
// failure does not roll back memory: the session keeps the user's change
// and the failure is reported upward. Caller holds the lock.
func (s *Store) persist() {
	data, err := json.Marshal(s.records)
	if err == nil {
		err = s.state.Save(data)
	}
	if err != nil {
		slog.Error("Failed to persist expense state", "error", err)
		if s.onWriteError != nil {
			s.onWriteError(err)
		}
	}
}

// persistAndNotify persists and then delivers the new snapshot to every
// subscriber in registration order. Running under the lock keeps delivery
// in mutation order. Caller holds the lock.
func (s *Store) persistAndNotify() {
	s.persist()
	snapshot := s.snapshotLocked()
	for _, sub := range s.subscriptions {
		sub.observer(snapshot)
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
