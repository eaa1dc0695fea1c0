package input

import "testing"

// feedAll pushes a byte sequence through the parser and collects the
// completed keys.
func feedAll(p *keyParser, bytes []byte) []key {
	var keys []key
	for _, b := range bytes {
		if k, ok := p.feed(b); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestKeyParserASCII(t *testing.T) {
	p := &keyParser{}
	keys := feedAll(p, []byte("hi"))
	if len(keys) != 2 || keys[0].r != 'h' || keys[1].r != 'i' {
		t.Errorf("keys = %v", keys)
	}
	for _, k := range keys {
		if k.kind != keyRune {
			t.Errorf("kind = %v, want keyRune", k.kind)
		}
	}
}

func TestKeyParserSpecials(t *testing.T) {
	cases := []struct {
		in   byte
		want keyKind
	}{
		{'\r', keyEnter},
		{'\n', keyEnter},
		{0x7f, keyBackspace},
		{0x08, keyBackspace},
		{0x03, keyCancel},
		{0x04, keyCancel},
	}
	for _, tc := range cases {
		p := &keyParser{}
		k, ok := p.feed(tc.in)
		if !ok || k.kind != tc.want {
			t.Errorf("feed(%#x) = (%v, %v), want kind %v", tc.in, k, ok, tc.want)
		}
	}
}

func TestKeyParserArrows(t *testing.T) {
	cases := []struct {
		seq  string
		want keyKind
	}{
		{"\x1b[A", keyUp},
		{"\x1b[B", keyDown},
		{"\x1b[C", keyRight},
		{"\x1b[D", keyLeft},
		{"\x1bOA", keyUp}, // application mode
	}
	for _, tc := range cases {
		p := &keyParser{}
		keys := feedAll(p, []byte(tc.seq))
		if len(keys) != 1 || keys[0].kind != tc.want {
			t.Errorf("seq %q = %v, want one key of kind %v", tc.seq, keys, tc.want)
		}
	}
}

func TestKeyParserSwallowsUnknownSequences(t *testing.T) {
	p := &keyParser{}
	// Home key with parameter bytes; must produce no key and not corrupt
	// subsequent input.
	keys := feedAll(p, []byte("\x1b[1~x"))
	if len(keys) != 1 || keys[0].kind != keyRune || keys[0].r != 'x' {
		t.Errorf("keys = %v, want just 'x'", keys)
	}
}

func TestKeyParserIgnoresControlBytes(t *testing.T) {
	p := &keyParser{}
	keys := feedAll(p, []byte{0x01, 0x02, 'a'}) // Ctrl+A, Ctrl+B
	if len(keys) != 1 || keys[0].r != 'a' {
		t.Errorf("keys = %v, want just 'a'", keys)
	}
}

func TestKeyParserUTF8(t *testing.T) {
	p := &keyParser{}
	keys := feedAll(p, []byte("héllo 世"))
	var runes []rune
	for _, k := range keys {
		if k.kind != keyRune {
			t.Fatalf("non-rune key %v", k)
		}
		runes = append(runes, k.r)
	}
	if string(runes) != "héllo 世" {
		t.Errorf("decoded %q", string(runes))
	}
}

func TestKeyParserMalformedUTF8(t *testing.T) {
	p := &keyParser{}
	// A continuation byte with no lead byte decodes to RuneError and is
	// dropped; the following ASCII byte still comes through.
	keys := feedAll(p, []byte{0x80, 'z'})
	if len(keys) != 1 || keys[0].r != 'z' {
		t.Errorf("keys = %v, want just 'z'", keys)
	}
}
