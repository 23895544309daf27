package keypad

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Layout maps lower case host characters to keypad keys.
type Layout map[rune]uint8

// HexLayout uses the hexadecimal digit keys 0-9 and A-F.
var HexLayout = Layout{
	'0': 0x0, '1': 0x1, '2': 0x2, '3': 0x3,
	'4': 0x4, '5': 0x5, '6': 0x6, '7': 0x7,
	'8': 0x8, '9': 0x9, 'a': 0xA, 'b': 0xB,
	'c': 0xC, 'd': 0xD, 'e': 0xE, 'f': 0xF,
}

// QwertyLayout maps the left hand 4x4 block of a QWERTY keyboard onto the
// COSMAC VIP keypad:
//
//	1 2 3 4     1 2 3 C
//	q w e r  => 4 5 6 D
//	a s d f     7 8 9 E
//	z x c v     A 0 B F
var QwertyLayout = Layout{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var layouts = map[string]Layout{
	"hex":    HexLayout,
	"qwerty": QwertyLayout,
}

// LayoutByName returns the layout called name, case insensitive.
func LayoutByName(name string) (Layout, error) {
	l, ok := layouts[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown keypad layout '%s', valid: %s", name, strings.Join(LayoutNames(), ", "))
	}
	return l, nil
}

// LayoutNames returns the sorted names of all layouts.
func LayoutNames() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns the keypad key for the host character r.
func (l Layout) Key(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, ok := l[r]
	return k, ok
}
