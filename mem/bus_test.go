package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatBusReadWrite(t *testing.T) {
	b := NewFlatBus()
	b.WriteByte(0x1234, 0x56)
	assert.Equal(t, byte(0x56), b.ReadByte(0x1234))
}

func TestFlatBusLoadProgramWraps(t *testing.T) {
	b := NewFlatBus()
	b.LoadProgram([]byte{0xAA, 0xBB, 0xCC}, 0xFFFF)
	assert.Equal(t, byte(0xAA), b.RAM[0xFFFF])
	assert.Equal(t, byte(0xBB), b.RAM[0x0000])
	assert.Equal(t, byte(0xCC), b.RAM[0x0001])
}

func TestRecordingBusRecordsInOrder(t *testing.T) {
	flat := NewFlatBus()
	rec := NewRecordingBus(flat)

	rec.WriteByte(0x10, 0x01)
	rec.ReadByte(0x10)
	rec.WriteByte(0x11, 0x02)

	assert.Equal(t, []BusAccess{
		{Op: "write", Addr: 0x10, Value: 0x01},
		{Op: "read", Addr: 0x10, Value: 0x01},
		{Op: "write", Addr: 0x11, Value: 0x02},
	}, rec.Accesses)
}

func TestFaultingBusPanicsInRange(t *testing.T) {
	flat := NewFlatBus()
	f := &FaultingBus{Bus: flat, UnmappedStart: 0xFE00, UnmappedEnd: 0xFEFF}

	assert.NotPanics(t, func() { f.ReadByte(0x0000) })

	assert.PanicsWithValue(t, FaultSignal{Addr: 0xFE50, Op: "read"}, func() {
		f.ReadByte(0xFE50)
	})
	assert.PanicsWithValue(t, FaultSignal{Addr: 0xFE50, Op: "write"}, func() {
		f.WriteByte(0xFE50, 0x01)
	})
}
