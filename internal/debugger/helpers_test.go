package debugger_test

import "encoding/binary"

func buildImage(entry, loadAddr uint32, code []byte) []byte {
	buf := make([]byte, 0, 12+len(code))
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], entry)
	buf = append(buf, hdr[:]...)
	binary.BigEndian.PutUint32(hdr[:], loadAddr)
	buf = append(buf, hdr[:]...)
	binary.BigEndian.PutUint32(hdr[:], uint32(len(code)))
	buf = append(buf, hdr[:]...)
	buf = append(buf, code...)
	return buf
}

var (
	opNOP = []byte{0x4E, 0x71}
	opRTS = []byte{0x4E, 0x75}
)

func instr(ops ...[]byte) []byte {
	var out []byte
	for _, op := range ops {
		out = append(out, op...)
	}
	return out
}
