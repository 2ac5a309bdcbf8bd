package nav

import "sync"

const (
	// TerminalThreshold is the scroll distance, in lines, the terminal page
	// must exceed before its navbar turns opaque.
	TerminalThreshold = 0
	// WebThreshold is the same distance for the HTML page, in pixels.
	WebThreshold = 10
)

// Observer tracks whether the page has scrolled past a threshold.
type Observer struct {
	threshold int

	mu       sync.Mutex
	scrolled bool
	cancel   func()
}

// NewObserver returns an unmounted observer.
func NewObserver(threshold int) *Observer {
	return &Observer{threshold: threshold}
}

// Mount subscribes to s. Mounting twice keeps the first subscription.
func (o *Observer) Mount(s *Signal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		return
	}
	o.cancel = s.Subscribe(o.observe)
}

// Unmount releases the subscription.
func (o *Observer) Unmount() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Mounted reports whether the observer holds a subscription.
func (o *Observer) Mounted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancel != nil
}

// Scrolled reports whether the last observed offset was strictly past the
// threshold.
func (o *Observer) Scrolled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scrolled
}

func (o *Observer) observe(offset int) {
	o.mu.Lock()
	o.scrolled = offset > o.threshold
	o.mu.Unlock()
}
