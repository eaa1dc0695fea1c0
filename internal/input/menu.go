package input

import "unicode"

// MenuItem is one entry of the slash-command autocomplete menu.
type MenuItem struct {
	Name string // command name without the leading slash, e.g. "help"
	Desc string // e.g. "Show help message"
}

// menu tracks the autocomplete state for one line being edited. Matches keep
// the registration order of the items; they are never re-sorted.
type menu struct {
	items    []MenuItem
	matches  []MenuItem
	selected int
	visible  bool
}

// update recomputes visibility and the match list from the buffer and
// cursor. The first match is highlighted again after every filter change.
func (m *menu) update(buf []rune, cursor int) {
	filter, ok := slashFilter(buf, cursor)
	m.visible = ok
	m.matches = m.matches[:0]
	m.selected = 0
	if !ok {
		return
	}
	for _, it := range m.items {
		if hasPrefix(it.Name, filter) {
			m.matches = append(m.matches, it)
		}
	}
}

// next moves the highlight down one entry, wrapping around.
func (m *menu) next() {
	if len(m.matches) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.matches)
}

// prev moves the highlight up one entry, wrapping around.
func (m *menu) prev() {
	if len(m.matches) == 0 {
		return
	}
	m.selected = (m.selected - 1 + len(m.matches)) % len(m.matches)
}

// current returns the highlighted entry, if any.
func (m *menu) current() (MenuItem, bool) {
	if !m.visible || len(m.matches) == 0 {
		return MenuItem{}, false
	}
	return m.matches[m.selected], true
}

// slashFilter reports whether the command menu applies at the given cursor
// position, and returns the filter text. The menu applies exactly when the
// first non-whitespace character before the cursor is '/' and no whitespace
// follows it up to the cursor; the filter is the text between the '/' and
// the cursor.
func slashFilter(buf []rune, cursor int) (string, bool) {
	i := 0
	for i < cursor && unicode.IsSpace(buf[i]) {
		i++
	}
	if i >= cursor || buf[i] != '/' {
		return "", false
	}
	for j := i + 1; j < cursor; j++ {
		if unicode.IsSpace(buf[j]) {
			return "", false
		}
	}
	return string(buf[i+1 : cursor]), true
}

// hasPrefix is a case-sensitive prefix match on command names.
func hasPrefix(name, prefix string) bool {
	return len(name) >= len(prefix) && name[:len(prefix)] == prefix
}
