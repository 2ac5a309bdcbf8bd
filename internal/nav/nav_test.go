package nav

import (
	"sync"
	"testing"

	"portfolio-terminal/internal/content"
)

func sampleAnchors() []Anchor {
	return []Anchor{
		{ID: content.SectionAbout, Offset: 12},
		{ID: content.SectionSkills, Offset: 40},
		{ID: content.SectionContact, Offset: 90},
	}
}

func TestControllerLocate(t *testing.T) {
	t.Parallel()

	c := NewController(sampleAnchors())
	tests := []struct {
		id     content.SectionID
		want   int
		wantOK bool
	}{
		{id: content.SectionAbout, want: 12, wantOK: true},
		{id: content.SectionSkills, want: 40, wantOK: true},
		{id: content.SectionContact, want: 90, wantOK: true},
		{id: content.SectionEducation, wantOK: false},
		{id: "abuot", wantOK: false},
		{id: "", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := c.Locate(tt.id)
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("Locate(%q) = (%d, %v), want (%d, %v)", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestControllerSectionAt(t *testing.T) {
	t.Parallel()

	c := NewController(sampleAnchors())
	tests := []struct {
		offset int
		want   content.SectionID
	}{
		{offset: 0, want: ""},
		{offset: 11, want: ""},
		{offset: 12, want: content.SectionAbout},
		{offset: 39, want: content.SectionAbout},
		{offset: 40, want: content.SectionSkills},
		{offset: 500, want: content.SectionContact},
	}
	for _, tt := range tests {
		if got := c.SectionAt(tt.offset); got != tt.want {
			t.Fatalf("SectionAt(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestControllerFirstDuplicateWins(t *testing.T) {
	t.Parallel()

	c := NewController([]Anchor{
		{ID: content.SectionAbout, Offset: 5},
		{ID: content.SectionAbout, Offset: 50},
	})
	if off, _ := c.Locate(content.SectionAbout); off != 5 {
		t.Fatalf("Locate(about) = %d, want 5", off)
	}
	if len(c.Anchors()) != 1 {
		t.Fatalf("anchors = %d, want 1", len(c.Anchors()))
	}
}

func TestGlideLandsExactlyOnTarget(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ from, to int }{{0, 57}, {80, 3}, {10, 11}} {
		g := NewGlide()
		g.Start(tc.from, tc.to)

		var (
			offset int
			done   bool
			frames int
		)
		for !done {
			offset, done = g.Step()
			frames++
			if frames > maxGlideFrames+1 {
				t.Fatalf("glide %d->%d did not land", tc.from, tc.to)
			}
		}
		if offset != tc.to {
			t.Fatalf("glide %d->%d landed at %d", tc.from, tc.to, offset)
		}
		if g.Active() {
			t.Fatal("glide should be idle after landing")
		}
	}
}

func TestGlideStartAndCancelBumpGeneration(t *testing.T) {
	t.Parallel()

	g := NewGlide()
	first := g.Start(0, 30)
	second := g.Start(0, 60)
	if second == first {
		t.Fatal("a new glide must get a new generation")
	}
	g.Cancel()
	if g.Active() || g.Generation() == second {
		t.Fatal("Cancel() should stop the glide and retire its generation")
	}

	if g.Start(7, 7); g.Active() {
		t.Fatal("zero-distance glide should not run")
	}
}

func TestGlideRetargetKeepsGeneration(t *testing.T) {
	t.Parallel()

	g := NewGlide()
	gen := g.Start(0, 72)
	g.Step()
	g.Retarget(89)
	if !g.Active() || g.Generation() != gen || g.Target() != 89 {
		t.Fatalf("retarget: active=%v gen=%d target=%d", g.Active(), g.Generation(), g.Target())
	}
	var (
		offset int
		done   bool
	)
	for i := 0; !done; i++ {
		if i > maxGlideFrames+1 {
			t.Fatal("retargeted glide did not land")
		}
		offset, done = g.Step()
	}
	if offset != 89 {
		t.Fatalf("landed at %d, want 89", offset)
	}

	g.Retarget(10)
	if g.Active() || g.Target() != 89 {
		t.Fatal("retargeting an idle glide should do nothing")
	}
}

func TestSignalCancelIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewSignal()
	var got []int
	cancel := s.Subscribe(func(offset int) { got = append(got, offset) })
	other := s.Subscribe(func(int) {})
	if s.Subscribers() != 2 {
		t.Fatalf("subscribers = %d, want 2", s.Subscribers())
	}

	s.Publish(4)
	cancel()
	cancel()
	s.Publish(9)

	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("delivered = %v, want [4]", got)
	}
	if s.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", s.Subscribers())
	}
	other()
	if s.Subscribers() != 0 {
		t.Fatalf("subscribers = %d, want 0", s.Subscribers())
	}
}

func TestSignalSubscriberMayCancelDuringPublish(t *testing.T) {
	t.Parallel()

	s := NewSignal()
	var cancel func()
	cancel = s.Subscribe(func(int) { cancel() })
	s.Publish(1)
	if s.Subscribers() != 0 {
		t.Fatalf("subscribers = %d, want 0", s.Subscribers())
	}
}

func TestObserverMountUnmountLeavesNoSubscription(t *testing.T) {
	t.Parallel()

	s := NewSignal()
	o := NewObserver(WebThreshold)
	o.Mount(s)
	o.Mount(s)
	if s.Subscribers() != 1 {
		t.Fatalf("subscribers after double mount = %d, want 1", s.Subscribers())
	}

	s.Publish(WebThreshold)
	if o.Scrolled() {
		t.Fatal("exactly 10px should not count as scrolled")
	}
	s.Publish(WebThreshold + 1)
	if !o.Scrolled() {
		t.Fatal("11px should count as scrolled")
	}
	s.Publish(0)
	if o.Scrolled() {
		t.Fatal("scrolling back to the top should clear the flag")
	}

	o.Unmount()
	o.Unmount()
	if s.Subscribers() != 0 || o.Mounted() {
		t.Fatal("unmount should release the subscription")
	}
	s.Publish(100)
	if o.Scrolled() {
		t.Fatal("unmounted observer must not react")
	}
}

func TestTerminalObserverFlipsOnFirstLine(t *testing.T) {
	t.Parallel()

	s := NewSignal()
	o := NewObserver(TerminalThreshold)
	o.Mount(s)
	defer o.Unmount()

	s.Publish(0)
	if o.Scrolled() {
		t.Fatal("offset 0 should be transparent")
	}
	s.Publish(1)
	if !o.Scrolled() {
		t.Fatal("one line down should be scrolled")
	}
}

func TestObserverConcurrentPublish(t *testing.T) {
	t.Parallel()

	s := NewSignal()
	o := NewObserver(TerminalThreshold)
	o.Mount(s)
	defer o.Unmount()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(off int) {
			defer wg.Done()
			s.Publish(off)
			_ = o.Scrolled()
		}(i)
	}
	wg.Wait()
}

func TestMenuNavigation(t *testing.T) {
	t.Parallel()

	m := NewMenu(3)
	if _, ok := m.Choose(); ok {
		t.Fatal("closed menu should not choose")
	}
	m.Toggle()
	m.Up()
	if m.Cursor() != 2 {
		t.Fatalf("cursor = %d, want wrap to 2", m.Cursor())
	}
	m.Down()
	m.Down()
	idx, ok := m.Choose()
	if !ok || idx != 1 {
		t.Fatalf("Choose() = (%d, %v), want (1, true)", idx, ok)
	}
	if m.IsOpen() {
		t.Fatal("choosing an entry must close the menu")
	}

	m.Resize(1)
	if m.Cursor() != 0 {
		t.Fatalf("cursor after shrink = %d", m.Cursor())
	}
}
