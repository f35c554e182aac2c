package ds

import (
	"encoding/binary"
	"fmt"
)

const commVersion byte = 0x01

// BuildControlPacket encodes the outbound UDP control packet for one tick:
// seqnum:u16 | comm_version | control | request | alliance | tag*.
func BuildControlPacket(seqnum uint16, control Control, request Request, alliance Alliance, tags []UDPTag) ([]byte, error) {
	buf := make([]byte, 0, 6)
	seqBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(seqBuf, seqnum)
	buf = append(buf, seqBuf...)
	buf = append(buf, commVersion)
	buf = append(buf, control.Byte())
	buf = append(buf, request.Byte())
	buf = append(buf, alliance.Byte())

	for _, tag := range tags {
		encoded, err := encodeUDPTag(tag)
		if err != nil {
			return nil, err
		}
		buf = append(buf, encoded...)
	}

	return buf, nil
}

// UDPResponsePacket is the status packet the RIO sends over UDP roughly every 20ms.
type UDPResponsePacket struct {
	Seqnum   uint16
	Status   Status
	Trace    Trace
	Battery  float32
	NeedDate bool
}

// chompFixed consumes n bytes from buf starting at *off, erroring on underrun.
func chompFixed(buf []byte, off *int, n int) error {
	if *off+n > len(buf) {
		return fmt.Errorf("ds: %w: need %d bytes at offset %d, have %d", errDecodeUnderrun, n, *off, len(buf))
	}
	*off += n
	return nil
}

// inboundTagLength gives the fixed payload length (excluding the id byte
// already consumed) for recognized inbound UDP tag ids. Their contents are
// not surfaced in this version of the protocol; they are consumed and
// discarded so the stream stays in sync.
var inboundTagLength = map[byte]int{
	0x01: 8,  // joystick output
	0x04: 4,  // disk info
	0x05: 20, // cpu info
	0x06: 8,  // ram info
	0x08: 25, // pdp log
	0x09: 9,  // unknown
	0x0e: 14, // can metrics
}

// DecodeUDPResponse decodes an inbound UDP response packet. Unrecognized
// trailing tag ids terminate the tag loop without failing the decode — this
// is deliberately lenient so new tag ids the RIO adds stay forward compatible.
func DecodeUDPResponse(buf []byte) (UDPResponsePacket, error) {
	var pkt UDPResponsePacket
	off := 0

	if err := chompFixed(buf, &off, 2); err != nil {
		return pkt, err
	}
	pkt.Seqnum = binary.BigEndian.Uint16(buf[off-2 : off])

	if err := chompFixed(buf, &off, 1); err != nil { // comm_version, ignored
		return pkt, err
	}

	if err := chompFixed(buf, &off, 1); err != nil {
		return pkt, err
	}
	pkt.Status = Status(buf[off-1])

	if err := chompFixed(buf, &off, 1); err != nil {
		return pkt, err
	}
	pkt.Trace = Trace(buf[off-1])

	if err := chompFixed(buf, &off, 2); err != nil {
		return pkt, err
	}
	high, low := buf[off-2], buf[off-1]
	pkt.Battery = float32(high) + float32(low)/256.0

	if err := chompFixed(buf, &off, 1); err != nil {
		return pkt, err
	}
	pkt.NeedDate = buf[off-1] == 1

	for off < len(buf) {
		tagID := buf[off]
		off++
		length, recognized := inboundTagLength[tagID]
		if !recognized {
			break
		}
		if off+length > len(buf) {
			return pkt, fmt.Errorf("ds: %w: truncated tag 0x%02x", errDecodeUnderrun, tagID)
		}
		off += length
	}

	return pkt, nil
}
