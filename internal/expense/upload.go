package expense

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrUploadCanceled is delivered when a simulated upload is canceled
// before its delay elapses
var ErrUploadCanceled = errors.New("upload canceled")

// DefaultUploadDelay mirrors the UX feedback delay of the submission form
const DefaultUploadDelay = 2 * time.Second

// UploadResult reports the outcome of a simulated attachment upload
type UploadResult struct {
	Name string
	Err  error
}

// Uploader simulates the attachment upload of the submission form: a fixed
// delay before the file counts as uploaded. Starting a new upload cancels
// any in-flight one, as does Cancel; a canceled upload leaves no partial
// state behind, its result channel just reports ErrUploadCanceled.
type Uploader struct {
	mu     sync.Mutex
	delay  time.Duration
	cancel context.CancelFunc
}

// NewUploader creates an Uploader with the default delay
func NewUploader() *Uploader {
	return NewUploaderWithDelay(DefaultUploadDelay)
}

// NewUploaderWithDelay creates an Uploader with a custom delay for testing
func NewUploaderWithDelay(delay time.Duration) *Uploader {
	return &Uploader{delay: delay}
}

// Start begins a simulated upload for the named file, canceling any
// in-flight upload first. The returned channel receives exactly one result.
func (u *Uploader) Start(name string) <-chan UploadResult {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.cancel != nil {
		u.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel

	ch := make(chan UploadResult, 1)
	timer := time.NewTimer(u.delay)
	go func() {
		defer timer.Stop()
		select {
		case <-timer.C:
			ch <- UploadResult{Name: name}
		case <-ctx.Done():
			ch <- UploadResult{Name: name, Err: ErrUploadCanceled}
		}
	}()
	return ch
}

// Cancel aborts the in-flight upload, if any. Removing the selected file
// in the form maps to this.
func (u *Uploader) Cancel() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cancel != nil {
		u.cancel()
		u.cancel = nil
	}
}
