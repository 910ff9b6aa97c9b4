package instable

import "sync"

// Table is the immutable, bidirectional instruction map. Construct one
// with New(); it never changes after that.
type Table struct {
	encode map[string]*Descriptor // key: keyString(normalizeKey(tokens))
	dec1   map[byte]*Descriptor
	dec2   map[[2]byte]*Descriptor
	dec3   map[[3]byte]*Descriptor // (prefix, 0xCB, suffix) for DDCB/FDCB
}

var (
	shared     *Table
	sharedOnce sync.Once
)

// New returns the full Z80 instruction table.
func New() *Table {
	t := &Table{
		encode: make(map[string]*Descriptor),
		dec1:   make(map[byte]*Descriptor),
		dec2:   make(map[[2]byte]*Descriptor),
		dec3:   make(map[[3]byte]*Descriptor),
	}
	addBase(t)
	addCB(t)
	addED(t)
	addIndex(t, 0xDD, "ix")
	addIndex(t, 0xFD, "iy")
	return t
}

// Shared returns a process-wide, lazily built instruction table. The
// table is read-only after construction, so sharing it across
// Assembler/Disassembler instances is safe.
func Shared() *Table {
	sharedOnce.Do(func() { shared = New() })
	return shared
}

// add registers a descriptor for decode lookup and, when it carries an
// encode key, for encode lookup too.
func (t *Table) add(d *Descriptor) *Descriptor {
	if d.Key != nil {
		t.addEncodeAlias(d.Key, d)
	}

	switch {
	case d.Kind == KindDdCbExt:
		// (prefix, 0xCB) is shared by every DDCB/FDCB instruction; only
		// the 3-byte (prefix, 0xCB, suffix) key distinguishes them, so
		// this pair is never itself a meaningful 2-byte decode key.
		t.dec3[[3]byte{d.Code[0], d.Code[1], d.Ext}] = d
	case len(d.Code) == 1:
		t.dec1[d.Code[0]] = d
	case len(d.Code) == 2:
		t.dec2[[2]byte{d.Code[0], d.Code[1]}] = d
	}
	return d
}

// addEncodeAlias registers an additional encode-side key for a
// descriptor already present in the decode maps, e.g. the "(ix-d)"
// spelling of an instruction whose canonical key uses "(ix+d)".
func (t *Table) addEncodeAlias(keyTokens []string, d *Descriptor) {
	k := keyString(normalizeKey(keyTokens))
	if _, exists := t.encode[k]; exists {
		panic("instable: duplicate encode key " + k)
	}
	t.encode[k] = d
}

// Lookup performs the encode-side lookup: normalized mnemonic+operand
// tokens to descriptor.
func (t *Table) Lookup(tokens []string) (*Descriptor, bool) {
	d, ok := t.encode[keyString(normalizeKey(tokens))]
	return d, ok
}

// DecodeKey1 looks up a single-byte instruction (the b0-only fallback
// of §4.1).
func (t *Table) DecodeKey1(b0 byte) (*Descriptor, bool) {
	d, ok := t.dec1[b0]
	return d, ok
}

// DecodeKey2 looks up a two-byte-keyed instruction; the descriptor's
// Bytes field may exceed 2 when trailing operand bytes follow.
func (t *Table) DecodeKey2(b0, b1 byte) (*Descriptor, bool) {
	d, ok := t.dec2[[2]byte{b0, b1}]
	return d, ok
}

// DecodeKey3 looks up a DDCB/FDCB-family instruction by (prefix, 0xCB,
// suffix), ignoring the displacement byte that sits between them.
func (t *Table) DecodeKey3(prefix, cb, suffix byte) (*Descriptor, bool) {
	d, ok := t.dec3[[3]byte{prefix, cb, suffix}]
	return d, ok
}
