package ds

import (
	"bytes"
	"testing"
)

func encodeUDPTagHelper(t *testing.T, tag UDPTag) []byte {
	t.Helper()
	encoded, err := encodeUDPTag(tag)
	if err != nil {
		t.Fatalf("encodeUDPTag: unexpected error: %v", err)
	}
	return encoded
}

func TestCountdownEncoding(t *testing.T) {
	got := encodeUDPTagHelper(t, Countdown{SecondsRemaining: 2.0})
	want := []byte{0x05, 0x07, 0x40, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("Countdown(2.0) = % X; want % X", got, want)
	}
}

func TestJoysticksEncoding(t *testing.T) {
	j := Joysticks{
		Axes:    []int8{-128, 0, 127},
		Buttons: []bool{true, false, true, false, false, false, false, false, true},
		Povs:    []int16{0, 18000},
	}
	got := encodeUDPTagHelper(t, j)
	want := []byte{0x0D, 0x0C, 0x03, 0x80, 0x00, 0x7F, 0x09, 0x05, 0x01, 0x02, 0x00, 0x00, 0x46, 0x50}
	if !bytes.Equal(got, want) {
		t.Errorf("Joysticks(...) = % X; want % X", got, want)
	}
}

func TestDateTimeEncoding(t *testing.T) {
	d := DateTime{Micros: 123456, Second: 30, Minute: 55, Hour: 17, Day: 23, Month0: 4, Year: 124}
	got := encodeUDPTagHelper(t, d)
	want := []byte{0x0B, 0x0F, 0x00, 0x01, 0xE2, 0x40, 0x1E, 0x37, 0x11, 0x17, 0x04, 0x7C}
	if !bytes.Equal(got, want) {
		t.Errorf("DateTime(...) = % X; want % X", got, want)
	}
}

func TestTimezoneEncoding(t *testing.T) {
	got := encodeUDPTagHelper(t, Timezone{Zone: "UTC"})
	want := []byte{0x04, 0x10, 0x55, 0x54, 0x43}
	if !bytes.Equal(got, want) {
		t.Errorf("Timezone(UTC) = % X; want % X", got, want)
	}
}

// packBools packs LSB-first, one group of 8 per byte. Verify the round
// trip for every length 0..256.
func TestPackBools_RoundTrip(t *testing.T) {
	for n := 0; n <= 256; n++ {
		values := make([]bool, n)
		for i := range values {
			values[i] = i%3 == 0
		}

		packed := packBools(values)
		unpacked := unpackBoolsForTest(packed, n)

		for i := range values {
			if unpacked[i] != values[i] {
				t.Fatalf("length %d: bit %d mismatch: got %v want %v", n, i, unpacked[i], values[i])
			}
		}
	}
}

// unpackBoolsForTest inverts packBools: unpack LSB-first.
func unpackBoolsForTest(packed []byte, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		bit := uint(i % 8)
		out[i] = packed[byteIdx]&(1<<bit) != 0
	}
	return out
}
