package input

// outcome is the result of applying one key to a line being edited.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeSubmit
	outcomeCancel
)

// lineState is the per-ReadLine editing state: the buffer, the cursor
// offset into it, and the command menu. Created fresh for every read and
// discarded once the line is finalized.
type lineState struct {
	buf    []rune
	cursor int
	menu   menu

	submitText string
}

func newLineState(items []MenuItem) *lineState {
	return &lineState{menu: menu{items: items}}
}

// apply folds one key event into the state. After a submit outcome,
// submitted() returns the final value: the highlighted menu command when the
// menu was visible, otherwise the raw buffer content.
func (s *lineState) apply(k key) outcome {
	switch k.kind {
	case keyRune:
		s.buf = append(s.buf, 0)
		copy(s.buf[s.cursor+1:], s.buf[s.cursor:])
		s.buf[s.cursor] = k.r
		s.cursor++

	case keyBackspace:
		if s.cursor > 0 {
			s.buf = append(s.buf[:s.cursor-1], s.buf[s.cursor:]...)
			s.cursor--
		}

	case keyLeft:
		if s.cursor > 0 {
			s.cursor--
		}

	case keyRight:
		if s.cursor < len(s.buf) {
			s.cursor++
		}

	case keyUp:
		// Cycles the menu; no history navigation.
		s.menu.prev()
		return outcomeNone

	case keyDown:
		s.menu.next()
		return outcomeNone

	case keyEnter:
		if it, ok := s.menu.current(); ok {
			s.submitText = "/" + it.Name
		} else {
			s.submitText = string(s.buf)
		}
		return outcomeSubmit

	case keyCancel:
		return outcomeCancel

	default:
		return outcomeNone
	}

	// Edits and cursor moves can change the filter text, so the menu is
	// refreshed here, but not on up/down, which must keep the selection.
	s.menu.update(s.buf, s.cursor)
	return outcomeNone
}

// submitted returns the finalized value after an outcomeSubmit.
func (s *lineState) submitted() string { return s.submitText }
