package nav

// Menu is the collapsible navigation menu used on narrow screens.
type Menu struct {
	open   bool
	cursor int
	size   int
}

// NewMenu returns a closed menu over size entries.
func NewMenu(size int) Menu {
	return Menu{size: size}
}

// Open shows the menu.
func (m *Menu) Open() { m.open = true }

// Close hides the menu.
func (m *Menu) Close() { m.open = false }

// Toggle flips between open and closed.
func (m *Menu) Toggle() { m.open = !m.open }

func (m *Menu) IsOpen() bool { return m.open }

func (m *Menu) Cursor() int { return m.cursor }

func (m *Menu) Size() int { return m.size }

// Resize changes the entry count, keeping the cursor in range.
func (m *Menu) Resize(size int) {
	m.size = size
	if m.cursor >= size {
		m.cursor = max(size-1, 0)
	}
}

// Up moves the cursor, wrapping at the top.
func (m *Menu) Up() {
	if m.size == 0 {
		return
	}
	m.cursor = (m.cursor - 1 + m.size) % m.size
}

// Down moves the cursor, wrapping at the bottom.
func (m *Menu) Down() {
	if m.size == 0 {
		return
	}
	m.cursor = (m.cursor + 1) % m.size
}

// Choose closes the menu and returns the entry under the cursor.
func (m *Menu) Choose() (int, bool) {
	if !m.open || m.size == 0 {
		return 0, false
	}
	m.open = false
	return m.cursor, true
}
