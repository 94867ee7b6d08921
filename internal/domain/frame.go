package domain

import (
	"strconv"
	"strings"
)

// TrailerSize is the length of the fixed trailer that ends every RawFrame.
const TrailerSize = 2

// RawFrame is the byte buffer delivered by one link receive event.
// It is owned by a single handler invocation and must not be retained.
type RawFrame struct {
	Bytes []byte
}

// Len returns the number of bytes in the frame.
func (f RawFrame) Len() int {
	return len(f.Bytes)
}

// DurationSequence is an ordered list of IR mark/space lengths in microseconds.
// Even indices are marks (carrier on), odd indices are spaces.
type DurationSequence []uint16

// Empty returns true if the sequence holds no durations.
func (s DurationSequence) Empty() bool {
	return len(s) == 0
}

// Total returns the summed length of all durations in microseconds.
func (s DurationSequence) Total() uint64 {
	var total uint64
	for _, d := range s {
		total += uint64(d)
	}
	return total
}

// String renders the sequence as space separated decimal values.
func (s DurationSequence) String() string {
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(d), 10))
	}
	return b.String()
}

// DurationCount returns how many durations a frame of n bytes carries:
// floor((n - TrailerSize) / 2), or zero when n is shorter than the trailer.
func DurationCount(n int) int {
	if n < TrailerSize {
		return 0
	}
	return (n - TrailerSize) / 2
}

// Decode converts a RawFrame into a DurationSequence.
//
// Duration i is the big-endian word formed by bytes 2i and 2i+1. The final
// TrailerSize bytes are never decoded. An odd byte left over before the
// trailer is ignored, so no read ever goes past the end of the buffer.
// Frames shorter than the trailer decode to an empty sequence.
//
// Decode has no side effects and does not retain the frame's buffer.
func Decode(frame RawFrame) DurationSequence {
	n := DurationCount(len(frame.Bytes))
	if n == 0 {
		return nil
	}

	b := frame.Bytes
	seq := make(DurationSequence, n)
	for i := range seq {
		seq[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return seq
}
