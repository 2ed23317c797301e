package keys

import "testing"

func TestTranslatePassthroughPlainBytes(t *testing.T) {
	got := Translate([]byte("hello world"))
	if string(got) != "hello world" {
		t.Fatalf("Translate = %q", got)
	}
}

func TestTranslateSpecialCodepoints(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"escape", "\x1b[27u", []byte{0x1B}},
		{"enter", "\x1b[13u", []byte{0x0D}},
		{"alt-enter", "\x1b[13;3u", []byte{0x1B, 0x0D}},
		{"tab", "\x1b[9u", []byte{0x09}},
		{"shift-tab", "\x1b[9;2u", []byte{0x1B, '[', 'Z'}},
		{"del", "\x1b[127u", []byte{0x7F}},
		{"ctrl-backspace", "\x1b[127;5u", []byte{0x08}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Translate([]byte(tc.in))
			if string(got) != string(tc.want) {
				t.Errorf("Translate(%q) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

func TestTranslateLetterKeys(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"ctrl-e", "\x1b[101;5u", []byte{'e' & 0x1F}},
		{"ctrl-alt-e", "\x1b[101;7u", []byte{0x1B, 'e' & 0x1F}},
		{"alt-d-lower", "\x1b[100;3u", []byte{0x1B, 'd'}},
		{"alt-shift-d-upper", "\x1b[100;4u", []byte{0x1B, 'D'}},
		{"plain-a", "\x1b[97u", []byte{'a'}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Translate([]byte(tc.in))
			if string(got) != string(tc.want) {
				t.Errorf("Translate(%q) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

func TestTranslateCanonicalCtrlPunctuation(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []byte
	}{
		{"ctrl-[", "\x1b[91;5u", []byte{0x1B}},
		{"ctrl-backslash", "\x1b[92;5u", []byte{0x1C}},
		{"ctrl-]", "\x1b[93;5u", []byte{0x1D}},
		{"ctrl-caret", "\x1b[94;5u", []byte{0x1E}},
		{"ctrl-underscore", "\x1b[95;5u", []byte{0x1F}},
		{"ctrl-at", "\x1b[64;5u", []byte{0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Translate([]byte(tc.in))
			if string(got) != string(tc.want) {
				t.Errorf("Translate(%q) = %x, want %x", tc.in, got, tc.want)
			}
		})
	}
}

func TestTranslateNegotiationPrefixesUntouched(t *testing.T) {
	for _, prefix := range []string{">", "<", "=", "?"} {
		in := "\x1b[" + prefix + "1u"
		got := Translate([]byte(in))
		if string(got) != in {
			t.Errorf("Translate(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestTranslateMixedBufferWalksThroughNonMatches(t *testing.T) {
	in := "abc\x1b[101;5udef"
	want := "abc" + string([]byte{'e' & 0x1F}) + "def"
	got := Translate([]byte(in))
	if string(got) != want {
		t.Fatalf("Translate(%q) = %q, want %q", in, got, want)
	}
}
