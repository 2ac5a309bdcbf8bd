package tui

import "sync"

// Lifetime scopes resources to one mounted page. Releases run once, in
// reverse acquisition order, when the page unmounts.
type Lifetime struct {
	mu       sync.Mutex
	mounted  bool
	ended    bool
	releases []func()
}

// Mount marks the page live. It reports false when the page was already
// mounted or has ended.
func (l *Lifetime) Mount() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mounted || l.ended {
		return false
	}
	l.mounted = true
	return true
}

// Acquire registers release to run at unmount. After unmount it runs
// immediately.
func (l *Lifetime) Acquire(release func()) {
	l.mu.Lock()
	if l.ended {
		l.mu.Unlock()
		release()
		return
	}
	l.releases = append(l.releases, release)
	l.mu.Unlock()
}

// Alive reports whether the page is mounted and not yet unmounted.
func (l *Lifetime) Alive() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted && !l.ended
}

// Unmount ends the lifetime and runs every release.
func (l *Lifetime) Unmount() {
	l.mu.Lock()
	if l.ended {
		l.mu.Unlock()
		return
	}
	l.ended = true
	releases := l.releases
	l.releases = nil
	l.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
