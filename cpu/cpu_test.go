package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grevsten/snekboy/mem"
)

func newTestCpu() (*Cpu, *mem.FlatBus) {
	bus := mem.NewFlatBus()
	c := New(bus, Registers{})
	return c, bus
}

func TestPowerOnNop(t *testing.T) {
	bus := mem.NewFlatBus()
	c := New(bus, PowerOnRegisters())
	bus.WriteByte(0x0100, 0x00) // NOP

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0x0101), c.Regs.PC)
	assert.Equal(t, byte(0x01), c.Regs.A)
}

func TestAddAFlagScenarios(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b    byte
		wantA   byte
		wantZ   bool
		wantH   bool
		wantC   bool
	}{
		{name: "no flags", a: 0x01, b: 0x02, wantA: 0x03},
		{name: "half carry", a: 0x0F, b: 0x01, wantA: 0x10, wantH: true},
		{name: "carry and zero", a: 0xFF, b: 0x01, wantA: 0x00, wantZ: true, wantH: true, wantC: true},
	} {
		c, bus := newTestCpu()
		c.Regs.A = tc.a
		c.Regs.B = tc.b
		bus.WriteByte(0x0000, 0x80) // ADD A,B
		c.Regs.PC = 0x0000

		cycles, err := c.Step()
		assert.NoError(t, err, tc.name)
		assert.Equal(t, 4, cycles, tc.name)
		assert.Equal(t, tc.wantA, c.Regs.A, tc.name)
		assert.Equal(t, tc.wantZ, c.Regs.GetFlag(FlagZ), tc.name)
		assert.False(t, c.Regs.GetFlag(FlagN), tc.name)
		assert.Equal(t, tc.wantH, c.Regs.GetFlag(FlagH), tc.name)
		assert.Equal(t, tc.wantC, c.Regs.GetFlag(FlagC), tc.name)
	}
}

func TestIncHalfCarryBoundary(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.A = 0x0F
	bus.WriteByte(0x0000, 0x3C) // INC A
	c.Regs.PC = 0x0000

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x10), c.Regs.A)
	assert.True(t, c.Regs.GetFlag(FlagH))
	assert.False(t, c.Regs.GetFlag(FlagZ))

	c.Regs.A = 0xFF
	bus.WriteByte(0x0001, 0x3C)
	_, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), c.Regs.A)
	assert.True(t, c.Regs.GetFlag(FlagH))
	assert.True(t, c.Regs.GetFlag(FlagZ))
}

func TestJrNotTakenCycles(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.SetFlag(FlagZ, false)
	bus.WriteByte(0x0000, 0x28) // JR Z,s8
	bus.WriteByte(0x0001, 0x05)
	c.Regs.PC = 0x0000

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 8, cycles)
	assert.Equal(t, uint16(0x0002), c.Regs.PC)

	c.Regs.PC = 0x0000
	bus.WriteByte(0x0000, 0x28)
	bus.WriteByte(0x0001, 0x05)
	c.Regs.SetFlag(FlagZ, true)
	cycles, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 12, cycles)
	assert.Equal(t, uint16(0x0007), c.Regs.PC)
}

func TestCallRetRoundTrip(t *testing.T) {
	c, flat := newTestCpu()
	recorder := mem.NewRecordingBus(flat)
	c.Bus = recorder

	c.Regs.SP = 0xFFFE
	c.Regs.PC = 0x0100
	flat.WriteByte(0x0100, 0xCD) // CALL a16
	flat.WriteByte(0x0101, 0x50)
	flat.WriteByte(0x0102, 0x01)
	flat.WriteByte(0x0150, 0xC9) // RET

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 24, cycles)
	assert.Equal(t, uint16(0x0150), c.Regs.PC)
	assert.Equal(t, uint16(0xFFFC), c.Regs.SP)
	assert.Equal(t, byte(0x01), flat.RAM[0xFFFD]) // high byte of return addr
	assert.Equal(t, byte(0x03), flat.RAM[0xFFFC]) // low byte of return addr

	cycles, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 16, cycles)
	assert.Equal(t, uint16(0x0103), c.Regs.PC)
	assert.Equal(t, uint16(0xFFFE), c.Regs.SP)

	// The call fetches its opcode and a16 operand (3 reads) before pushing
	// the return address: high byte to SP-1, then low byte to SP-2.
	writes := make([]mem.BusAccess, 0, 2)
	for _, a := range recorder.Accesses {
		if a.Op == "write" {
			writes = append(writes, a)
		}
	}
	assert.Len(t, writes, 2)
	assert.Equal(t, uint16(0xFFFD), writes[0].Addr)
	assert.Equal(t, uint16(0xFFFC), writes[1].Addr)
}

func TestCbSwap(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.A = 0xAB
	bus.WriteByte(0x0000, 0xCB)
	bus.WriteByte(0x0001, 0x37) // SWAP A
	c.Regs.PC = 0x0000

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 8, cycles)
	assert.Equal(t, byte(0xBA), c.Regs.A)
	assert.False(t, c.Regs.GetFlag(FlagC))
}

func TestIllegalOpcode(t *testing.T) {
	c, bus := newTestCpu()
	bus.WriteByte(0x0000, 0xD3)
	c.Regs.PC = 0x0000

	cycles, err := c.Step()
	assert.Equal(t, 0, cycles)
	assert.Equal(t, IllegalOpcode{Byte: 0xD3, PC: 0x0000}, err)
	assert.Equal(t, uint16(0x0000), c.Regs.PC, "PC is left at the faulting fetch")
}

func TestBusFaultRecovered(t *testing.T) {
	flat := mem.NewFlatBus()
	faulting := &mem.FaultingBus{Bus: flat, UnmappedStart: 0x0000, UnmappedEnd: 0x0000}
	c := New(faulting, Registers{PC: 0x0000})

	cycles, err := c.Step()
	assert.Equal(t, 0, cycles)
	assert.Equal(t, BusFault{Addr: 0x0000, Op: "read"}, err)
}

func TestSetReg8Totality(t *testing.T) {
	var r Registers
	r.SetReg8(RegA, 0x1FF)
	assert.Equal(t, byte(0xFF), r.GetReg8(RegA))
}

func TestSetReg16TruncatesAndAFKeepsLowNibbleZero(t *testing.T) {
	var r Registers
	r.SetReg16(RegBC, 0x1FFFF)
	assert.Equal(t, uint16(0xFFFF), r.GetReg16(RegBC))

	r.SetReg16(RegAF, 0x12FF)
	assert.Equal(t, byte(0xF0), r.F, "low nibble of F is always forced to zero")
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCpu()
	c.Regs.SP = 0xFFFE
	c.push16(0xBEEF)
	assert.Equal(t, uint16(0xFFFC), c.Regs.SP)
	assert.Equal(t, uint16(0xBEEF), c.pop16())
	assert.Equal(t, uint16(0xFFFE), c.Regs.SP)
}

func TestHaltResumesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.Halted = true
	bus.WriteByte(addrIE, 0x01)
	bus.WriteByte(addrIF, 0x01)
	c.Regs.IME = false // halt clears regardless of IME

	bus.WriteByte(0x0000, 0x00) // NOP, so Step after un-halting executes something observable
	c.Regs.PC = 0x0000

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.False(t, c.Regs.Halted)
}

func TestStopOnlyClearedByResume(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.Stopped = true
	c.Regs.PC = 0x0000
	bus.WriteByte(0x0000, 0x00) // NOP, would be observable if Stopped cleared

	RequestInterrupt(bus, InterruptJoypad)
	bus.WriteByte(addrIE, 0xFF)

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 4, cycles)
	assert.True(t, c.Regs.Stopped, "a pending interrupt must not clear Stopped")
	assert.Equal(t, uint16(0x0000), c.Regs.PC)

	c.Resume()
	assert.False(t, c.Regs.Stopped)

	cycles, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0001), c.Regs.PC, "Step executes again once Resume clears Stopped")
}

func TestInterruptServiceDisablesIMEAndPushesPC(t *testing.T) {
	c, bus := newTestCpu()
	c.Regs.IME = true
	c.Regs.SP = 0xFFFE
	c.Regs.PC = 0x1234
	RequestInterrupt(bus, InterruptVBlank)
	bus.WriteByte(addrIE, 0x01)

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, 20, cycles)
	assert.False(t, c.Regs.IME)
	assert.Equal(t, uint16(0x0040), c.Regs.PC)
	assert.Equal(t, uint16(0xFFFC), c.Regs.SP)
	assert.Equal(t, uint16(0x1234), c.pop16())
}

func TestEIisDelayedByOneInstruction(t *testing.T) {
	c, bus := newTestCpu()
	bus.WriteByte(0x0000, 0xFB) // EI
	bus.WriteByte(0x0001, 0x00) // NOP
	c.Regs.PC = 0x0000

	_, err := c.Step()
	assert.NoError(t, err)
	assert.False(t, c.Regs.IME, "EI must not take effect immediately")

	_, err = c.Step()
	assert.NoError(t, err)
	assert.True(t, c.Regs.IME, "EI takes effect after the following instruction")
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, _ := newTestCpu()
	c.Regs = PowerOnRegisters()
	c.Regs.IME = true
	c.Regs.EIPending = true

	snap := c.Snapshot()

	var restored Cpu
	restored.Bus = c.Bus
	err := restored.Restore(snap)
	assert.NoError(t, err)
	assert.Equal(t, c.Regs, restored.Regs)
}

func TestRestoreRejectsMalformedSnapshot(t *testing.T) {
	var c Cpu
	var snap Snapshot
	snap[snapIME] = 0xFF // reserved bits set
	err := c.Restore(snap)
	assert.Error(t, err)
}
