package debugger

import (
	"encoding/binary"
	"fmt"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// Image is a loaded target program: one or more segments to copy into
// memory plus the entry point execution should start at. Grounded on
// media_loader.go's segmented-file loading convention, simplified to
// length-prefixed segments with absolute load addresses since the core
// doesn't need hunk-style relocation.
type Image struct {
	Entry    uint32
	Segments []Segment
}

type Segment struct {
	LoadAddr uint32
	Data     []byte
}

// ParseImage reads the wire format: a big-endian uint32 entry point,
// followed by any number of (uint32 load address, uint32 length, data)
// segments.
func ParseImage(raw []byte) (*Image, error) {
	if len(raw) < 4 {
		return nil, fmt.Errorf("debugger: image too short to contain an entry point")
	}
	img := &Image{Entry: binary.BigEndian.Uint32(raw)}
	offset := 4
	for offset < len(raw) {
		if offset+8 > len(raw) {
			return nil, fmt.Errorf("debugger: truncated segment header at offset %d", offset)
		}
		loadAddr := binary.BigEndian.Uint32(raw[offset:])
		length := binary.BigEndian.Uint32(raw[offset+4:])
		offset += 8
		if offset+int(length) > len(raw) {
			return nil, fmt.Errorf("debugger: truncated segment data at offset %d", offset)
		}
		data := make([]byte, length)
		copy(data, raw[offset:offset+int(length)])
		img.Segments = append(img.Segments, Segment{LoadAddr: loadAddr, Data: data})
		offset += int(length)
	}
	return img, nil
}

// LoadInto copies every segment into the CPU's memory and resets the CPU
// so PC starts at the image's entry point.
func (img *Image) LoadInto(cpu *m68k.CPU, supervisorStackTop uint32) error {
	for _, seg := range img.Segments {
		if err := cpu.LoadCode(seg.LoadAddr, seg.Data); err != nil {
			return err
		}
	}
	cpu.Reset(supervisorStackTop, img.Entry)
	return nil
}
