package input

import "unicode/utf8"

type keyKind int

const (
	keyNone keyKind = iota
	keyRune
	keyEnter
	keyBackspace
	keyLeft
	keyRight
	keyUp
	keyDown
	keyCancel
)

type key struct {
	kind keyKind
	r    rune
}

// keyParser turns the raw byte stream of a terminal in raw mode into key
// events. It carries partial state for escape sequences and multi-byte
// UTF-8 characters across feed calls.
type keyParser struct {
	esc  []byte
	ubuf []byte
}

const (
	byteEsc       = 0x1b
	byteCtrlC     = 0x03
	byteCtrlD     = 0x04
	byteBackspace = 0x7f
	byteBackspac2 = 0x08 // Ctrl+H
)

// feed consumes one byte and returns the key it completes, if any.
func (p *keyParser) feed(b byte) (key, bool) {
	if len(p.esc) > 0 {
		return p.feedEscape(b)
	}
	if len(p.ubuf) > 0 {
		return p.feedUTF8(b)
	}

	switch b {
	case byteEsc:
		p.esc = append(p.esc, b)
		return key{}, false
	case byteCtrlC, byteCtrlD:
		return key{kind: keyCancel}, true
	case '\r', '\n':
		return key{kind: keyEnter}, true
	case byteBackspace, byteBackspac2:
		return key{kind: keyBackspace}, true
	}
	if b < 0x20 {
		// Other control bytes are ignored.
		return key{}, false
	}
	if b < utf8.RuneSelf {
		return key{kind: keyRune, r: rune(b)}, true
	}
	return p.feedUTF8(b)
}

// feedEscape consumes bytes of a CSI sequence. Only the arrow keys are
// interpreted; any other sequence is swallowed once its final byte arrives.
func (p *keyParser) feedEscape(b byte) (key, bool) {
	p.esc = append(p.esc, b)
	if len(p.esc) == 2 {
		if b == '[' || b == 'O' {
			return key{}, false
		}
		p.esc = nil // lone ESC followed by something else: drop both
		return key{}, false
	}

	// CSI parameter bytes (digits, ';') continue the sequence.
	if b >= '0' && b <= '9' || b == ';' {
		return key{}, false
	}

	p.esc = nil
	switch b {
	case 'A':
		return key{kind: keyUp}, true
	case 'B':
		return key{kind: keyDown}, true
	case 'C':
		return key{kind: keyRight}, true
	case 'D':
		return key{kind: keyLeft}, true
	}
	return key{}, false
}

func (p *keyParser) feedUTF8(b byte) (key, bool) {
	p.ubuf = append(p.ubuf, b)
	if !utf8.FullRune(p.ubuf) {
		if len(p.ubuf) >= utf8.UTFMax {
			p.ubuf = nil // malformed sequence, drop it
		}
		return key{}, false
	}
	r, _ := utf8.DecodeRune(p.ubuf)
	p.ubuf = nil
	if r == utf8.RuneError {
		return key{}, false
	}
	return key{kind: keyRune, r: r}, true
}
