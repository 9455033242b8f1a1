package encoder

import (
	"encoding/binary"
	"math"
)

// Buffer accumulates binary output.
type Buffer struct {
	Bytes []byte
}

func (b *Buffer) AppendByte(v byte) {
	b.Bytes = append(b.Bytes, v)
}

func (b *Buffer) WriteBytes(v []byte) {
	b.Bytes = append(b.Bytes, v...)
}

// WriteU32 writes unsigned LEB128.
func (b *Buffer) WriteU32(v uint32) {
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if v == 0 {
			b.AppendByte(c)
			return
		}
		b.AppendByte(c | 0x80)
	}
}

// WriteI32 writes signed LEB128.
func (b *Buffer) WriteI32(v int32) {
	b.WriteI64(int64(v))
}

// WriteI64 writes signed LEB128.
func (b *Buffer) WriteI64(v int64) {
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			b.AppendByte(c)
			return
		}
		b.AppendByte(c | 0x80)
	}
}

// WriteI33 writes a block type index, a signed 33-bit LEB128.
func (b *Buffer) WriteI33(v int64) {
	b.WriteI64(v)
}

func (b *Buffer) WriteF32(v float32) {
	b.Bytes = binary.LittleEndian.AppendUint32(b.Bytes, math.Float32bits(v))
}

func (b *Buffer) WriteF64(v float64) {
	b.Bytes = binary.LittleEndian.AppendUint64(b.Bytes, math.Float64bits(v))
}

// WriteString writes a length-prefixed name.
func (b *Buffer) WriteString(s string) {
	b.WriteU32(uint32(len(s)))
	b.Bytes = append(b.Bytes, s...)
}

func (b *Buffer) WriteLimits(min uint32, max *uint32) {
	if max == nil {
		b.AppendByte(0x00)
		b.WriteU32(min)
		return
	}
	b.AppendByte(0x01)
	b.WriteU32(min)
	b.WriteU32(*max)
}
