package ds

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TCPPacket is a decoded inbound TCP frame, handed to the user-installed
// TCP consumer closure.
type TCPPacket struct {
	ID   byte
	Data []byte
}

// WriteTCPTag encodes and writes one outbound TCP tag to w.
func WriteTCPTag(w io.Writer, tag TCPTag) error {
	encoded, err := encodeTCPTag(tag)
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}

// ReadTCPFrame blocks until one length-prefixed TCP frame has been read from r.
func ReadTCPFrame(r io.Reader) (TCPPacket, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return TCPPacket{}, err
	}
	length := binary.BigEndian.Uint16(lenBuf[:])
	if length == 0 {
		return TCPPacket{}, fmt.Errorf("ds: tcp frame has zero length")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return TCPPacket{}, err
	}

	return TCPPacket{ID: body[0], Data: body[1:]}, nil
}
