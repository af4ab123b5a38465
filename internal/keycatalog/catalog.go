// Package keycatalog maps BeanScript key names to the scan codes a driver
// sends over the wire. It owns no input hardware; it is pure lookup.
package keycatalog

import "fmt"

// extended marks a scan code that belongs to the keyboard's extended set
// (arrows, navigation cluster, right-hand modifiers, numpad divide, window
// keys). Drivers distinguish these from the base set when framing the
// down/up sequence for the OS.
const extended = 1024

// Catalog is an immutable name -> scan code table. The zero value is not
// usable; construct one with New.
type Catalog struct {
	byName map[string]uint16
}

// New builds the default catalog, covering the full keyboard: function
// keys, the navigation cluster, the numpad, punctuation, both shift rows,
// and the Windows/menu keys, with extended scan codes offset per the
// reference keyboard driver.
func New() *Catalog {
	c := &Catalog{byName: make(map[string]uint16, 96)}
	for _, e := range defaultKeys {
		c.insert(e.name, e.code)
	}
	return c
}

type keyEntry struct {
	name string
	code uint16
}

func (c *Catalog) insert(name string, code uint16) {
	if _, exists := c.byName[name]; exists {
		panic(fmt.Sprintf("keycatalog: duplicate key name %q", name))
	}
	c.byName[name] = code
}

// Lookup returns the scan code for a key name. ok is false for unknown
// names, which the DSL layer turns into a parse-time semantic error rather
// than a runtime panic.
func (c *Catalog) Lookup(name string) (code uint16, ok bool) {
	code, ok = c.byName[name]
	return
}

// Has reports whether name is a known key.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns every known key name, in no particular order, for
// diagnostics.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	return names
}

var defaultKeys = []keyEntry{
	{"none", 0x00},
	{"escape", 0x01},
	{"f1", 0x3B}, {"f2", 0x3C}, {"f3", 0x3D}, {"f4", 0x3E},
	{"f5", 0x3F}, {"f6", 0x40}, {"f7", 0x41}, {"f8", 0x42},
	{"f9", 0x43}, {"f10", 0x44}, {"f11", 0x57}, {"f12", 0x58},
	{"printscreen", 0xB7},
	{"scrolllock", 0x46},
	{"pause", 0xC5},
	{"`", 0x29},
	{"1", 0x02}, {"2", 0x03}, {"3", 0x04}, {"4", 0x05}, {"5", 0x06},
	{"6", 0x07}, {"7", 0x08}, {"8", 0x09}, {"9", 0x0A}, {"0", 0x0B},
	{"-", 0x0C}, {"=", 0x0D},
	{"backspace", 0x0E},
	{"insert", 0xD2 + extended},
	{"home", 0xC7 + extended},
	{"pageup", 0xC9 + extended},
	{"pagedown", 0xD1 + extended},
	{"numberlock", 0x45},
	{"divide", 0xB5 + extended},
	{"multiply", 0x37},
	{"subtract", 0x4A},
	{"add", 0x4E},
	{"decimal", 0x53},
	{"tab", 0x0F},
	{"q", 0x10}, {"w", 0x11}, {"e", 0x12}, {"r", 0x13}, {"t", 0x14},
	{"y", 0x2C}, {"u", 0x16}, {"i", 0x17}, {"o", 0x18}, {"p", 0x19},
	{"[", 0x1A}, {"]", 0x1B}, {"\\", 0x2B},
	{"delete", 0xD3 + extended},
	{"end", 0xCF + extended},
	{"capslock", 0x3A},
	{"a", 0x1E}, {"s", 0x1F}, {"d", 0x20}, {"f", 0x21}, {"g", 0x22},
	{"h", 0x23}, {"j", 0x24}, {"k", 0x25}, {"l", 0x26},
	{";", 0x27}, {"'", 0x28},
	{"enter", 0x1C}, {"return", 0x1C},
	{"shift", 0x2A},
	{"z", 0x15}, {"x", 0x2D}, {"c", 0x2E}, {"v", 0x2F}, {"b", 0x30},
	{"n", 0x31}, {"m", 0x32},
	{",", 0x33}, {".", 0x34}, {"/", 0x35},
	{"shiftright", 0x36},
	{"ctrl", 0x1D},
	{"window", 0xDB + extended},
	{"alt", 0x38},
	{"space", 0x39},
	{"altright", 0xB8 + extended},
	{"windowright", 0xDC + extended},
	{"apps", 0xDD + extended},
	{"ctrlright", 0x9D + extended},
	{"up", 0x48 + extended},
	{"left", 0x4B + extended},
	{"down", 0x50 + extended},
	{"right", 0x4D + extended},
}
