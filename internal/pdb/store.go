package pdb

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/gocube_solver/internal/coord"
	"github.com/SeamusWaldron/gocube_solver/internal/cube"
)

// Table file layout, little-endian:
//
//	magic      [6]byte "GCPDB\x00"
//	version    uint16
//	name       uint16 length + bytes
//	size       uint64
//	width      uint8
//	max depth  uint8
//	payload    uint64 length + packed distance words
//	checksum   uint32 CRC-32 (IEEE) of the payload
const (
	formatVersion = 1
	maxNameLen    = 256
)

var magic = [6]byte{'G', 'C', 'P', 'D', 'B', 0}

// Extension is the file extension used for table files.
const Extension = ".pdb"

// FileName returns the conventional file name of a projection's table.
func FileName(projection string) string {
	var b bytes.Buffer
	for _, r := range projection {
		switch r {
		case ':', ',':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String() + Extension
}

// Checksum returns the CRC-32 of the distance payload.
func (t *Table) Checksum() uint32 {
	h := crc32.NewIEEE()
	_ = binary.Write(h, binary.LittleEndian, t.words)
	return h.Sum32()
}

// WriteTo writes t in the table file format.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	le := binary.LittleEndian
	fields := []any{
		magic,
		uint16(formatVersion),
		uint16(len(t.name)),
		[]byte(t.name),
		t.size,
		t.width,
		t.maxDepth,
		uint64(len(t.words)) * 4,
	}
	for _, f := range fields {
		if err := binary.Write(cw, le, f); err != nil {
			return cw.n, fmt.Errorf("write table header: %w", err)
		}
	}

	h := crc32.NewIEEE()
	if err := binary.Write(io.MultiWriter(cw, h), le, t.words); err != nil {
		return cw.n, fmt.Errorf("write table payload: %w", err)
	}
	if err := binary.Write(cw, le, h.Sum32()); err != nil {
		return cw.n, fmt.Errorf("write table checksum: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Save writes t to path. The file is written next to its destination and
// renamed into place, so a reader never sees a partial table.
func Save(t *Table, path string) error {
	if len(t.name) > maxNameLen {
		return fmt.Errorf("save table: projection name too long")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create table directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriterSize(tmp, 1<<20)
	if _, err := t.WriteTo(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush table file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync table file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close table file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename table file: %w", err)
	}
	return nil
}

// Load reads the table at path and checks it against p. Any mismatch or
// damage, including an unreached coordinate, is reported as ErrCorruptTable
// and no table is returned.
func Load(path string, p coord.Projection) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	t, err := Read(bufio.NewReaderSize(f, 1<<20), p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptTable}, args...)...)
}

// Read decodes a table written by WriteTo and checks it against p.
func Read(r io.Reader, p coord.Projection) (*Table, error) {
	le := binary.LittleEndian

	var m [6]byte
	if err := binary.Read(r, le, &m); err != nil {
		return nil, corrupt("read magic: %v", err)
	}
	if m != magic {
		return nil, corrupt("bad magic %q", m[:])
	}

	var version, nameLen uint16
	if err := binary.Read(r, le, &version); err != nil {
		return nil, corrupt("read version: %v", err)
	}
	if version != formatVersion {
		return nil, corrupt("unsupported version %d", version)
	}
	if err := binary.Read(r, le, &nameLen); err != nil {
		return nil, corrupt("read name length: %v", err)
	}
	if nameLen > maxNameLen {
		return nil, corrupt("name length %d", nameLen)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, corrupt("read name: %v", err)
	}
	if string(name) != p.Name() {
		return nil, corrupt("table is for %q, want %q", name, p.Name())
	}

	var (
		size        uint64
		width, maxD uint8
		payloadLen  uint64
	)
	for _, f := range []any{&size, &width, &maxD, &payloadLen} {
		if err := binary.Read(r, le, f); err != nil {
			return nil, corrupt("read header: %v", err)
		}
	}
	if size != p.Size() {
		return nil, corrupt("size %d, projection %s has %d", size, p.Name(), p.Size())
	}
	if !validWidth(width) {
		return nil, corrupt("width %d", width)
	}
	if want := TableBytes(size, width); payloadLen != want {
		return nil, corrupt("payload is %d bytes, want %d", payloadLen, want)
	}

	t := &Table{
		name:     p.Name(),
		size:     size,
		width:    width,
		maxDepth: maxD,
		words:    make([]uint32, payloadLen/4),
	}
	if maxD >= t.Unknown() {
		return nil, corrupt("max depth %d at width %d", maxD, width)
	}

	h := crc32.NewIEEE()
	if err := binary.Read(io.TeeReader(r, h), le, t.words); err != nil {
		return nil, corrupt("read payload: %v", err)
	}
	var sum uint32
	if err := binary.Read(r, le, &sum); err != nil {
		return nil, corrupt("read checksum: %v", err)
	}
	if sum != h.Sum32() {
		return nil, corrupt("checksum %08x, payload has %08x", sum, h.Sum32())
	}
	if d := t.Get(p.Encode(cube.Solved())); d != 0 {
		return nil, corrupt("solved coordinate has distance %d", d)
	}
	for c := uint64(0); c < size; c++ {
		if d := t.Get(c); d > maxD {
			if d == t.Unknown() {
				return nil, corrupt("coordinate %d was never reached", c)
			}
			return nil, corrupt("coordinate %d at %d, beyond max depth %d", c, d, maxD)
		}
	}
	return t, nil
}
