package coord

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/25smoking/upcheck/internal/core"
)

// Completion describes a finished update check.
type Completion struct {
	CheckID  string
	Manager  string
	Finished time.Time
	Report   core.UpdateReport
}

// Notifier announces completed checks to other observers.
type Notifier interface {
	NotifyCompleted(ctx context.Context, c Completion) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, c Completion) error

func (f NotifierFunc) NotifyCompleted(ctx context.Context, c Completion) error {
	return f(ctx, c)
}

// SyncMarkerNotifier touches the sync marker file watched by other instances.
type SyncMarkerNotifier struct {
	Path string
}

func (n SyncMarkerNotifier) NotifyCompleted(ctx context.Context, _ Completion) error {
	if syncMarkerSuppressed(ctx) {
		return nil
	}
	return TouchSyncMarker(n.Path)
}

type suppressSyncKey struct{}

// WithoutSyncMarker marks ctx so SyncMarkerNotifier leaves the marker alone.
// Checks answering another instance's marker use it, otherwise the two
// instances would keep waking each other.
func WithoutSyncMarker(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressSyncKey{}, true)
}

func syncMarkerSuppressed(ctx context.Context) bool {
	v, _ := ctx.Value(suppressSyncKey{}).(bool)
	return v
}

// Notifiers fans a completion out to every notifier and joins their errors.
type Notifiers []Notifier

func (ns Notifiers) NotifyCompleted(ctx context.Context, c Completion) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.NotifyCompleted(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ChannelNotifier delivers completions to in-process subscribers. Slow
// subscribers miss events rather than block the notifier.
type ChannelNotifier struct {
	mu   sync.Mutex
	subs map[chan Completion]struct{}
}

func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{subs: make(map[chan Completion]struct{})}
}

// Subscribe returns a channel receiving completions and a func that closes it.
func (n *ChannelNotifier) Subscribe(buffer int) (<-chan Completion, func()) {
	ch := make(chan Completion, buffer)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, ch)
			n.mu.Unlock()
			close(ch)
		})
	}
}

func (n *ChannelNotifier) NotifyCompleted(ctx context.Context, c Completion) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs {
		select {
		case ch <- c:
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}
