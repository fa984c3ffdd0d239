package cpu

import (
	"github.com/grevsten/snekboy/mem"
)

// IE/IF register addresses.
const (
	addrIF = 0xFF0F
	addrIE = 0xFFFF
)

// An InterruptLine names one of the five interrupt sources the CPU vectors
// to, in priority order (lowest value serviced first when multiple are
// pending).
type InterruptLine byte

const (
	InterruptVBlank InterruptLine = iota
	InterruptLCDStat
	InterruptTimer
	InterruptSerial
	InterruptJoypad
)

var interruptVectors = [5]uint16{
	InterruptVBlank:  0x40,
	InterruptLCDStat: 0x48,
	InterruptTimer:   0x50,
	InterruptSerial:  0x58,
	InterruptJoypad:  0x60,
}

// RequestInterrupt sets the IF bit for line through bus, the usual way a
// timer/PPU/joypad collaborator signals a pending interrupt. The CPU only
// reads and clears this bit; owning the IRQ line itself stays the
// collaborator's job.
func RequestInterrupt(bus mem.Bus, line InterruptLine) {
	bus.WriteByte(addrIF, bus.ReadByte(addrIF)|(1<<byte(line)))
}

// Cpu is the LR35902 fetch-decode-execute engine. It owns its register file
// exclusively; the Bus is shared with the collaborator, but the Cpu never
// assumes concurrent access to it during a single Step.
type Cpu struct {
	Regs Registers
	Bus  mem.Bus
}

// New constructs a Cpu wired to bus, with the given initial register state.
// Registers is a parameter, not baked in: the collaborator decides whether
// to start from PowerOnRegisters(), a save state, or zero.
func New(bus mem.Bus, initial Registers) *Cpu {
	return &Cpu{Regs: initial, Bus: bus}
}

// Read reads one byte through the Bus.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.ReadByte(addr)
}

// Write writes one byte through the Bus.
func (c *Cpu) Write(addr uint16, v byte) {
	c.Bus.WriteByte(addr, v)
}

// Step executes exactly one instruction (servicing a pending interrupt
// first, if one is enabled) and returns the machine cycles it consumed.
//
// A Bus implementation that cannot service a read/write panics with a
// mem.FaultSignal; Step recovers it here, restores the register state the
// step began with (so PC is left at the faulting instruction), and returns
// a BusFault instead of letting the panic escape, per the "no retry,
// surface a fault kind" contract in the failure semantics.
func (c *Cpu) Step() (cycles int, err error) {
	saved := c.Regs
	defer func() {
		if r := recover(); r != nil {
			if fs, ok := r.(mem.FaultSignal); ok {
				c.Regs = saved
				cycles = 0
				err = BusFault{Addr: fs.Addr, Op: fs.Op}
				return
			}
			panic(r)
		}
	}()

	if c.Regs.Stopped {
		return 4, nil
	}

	if line, ok := c.pendingServiceableInterrupt(); ok {
		return c.serviceInterrupt(line), nil
	}

	if c.Regs.Halted {
		if c.anyInterruptPending() {
			c.Regs.Halted = false
		} else {
			return 4, nil
		}
	}

	// EI's effect is delayed until after the instruction following it has
	// executed.
	enableAfter := c.Regs.EIPending
	c.Regs.EIPending = false

	pc := c.Regs.PC
	opByte := c.Read(pc)
	c.Regs.PC++

	var op *Opcode
	if opByte == 0xCB {
		cbByte := c.Read(c.Regs.PC)
		c.Regs.PC++
		op = cbOpcodes[cbByte]
	} else {
		op = baseOpcodes[opByte]
	}

	if op == nil {
		c.Regs.PC = pc
		return 0, IllegalOpcode{Byte: opByte, PC: pc}
	}

	n := op.Exec(c)

	// A DI executed right after EI cancels the pending enable.
	if enableAfter && op != baseOpcodes[0xF3] {
		c.Regs.IME = true
	}

	return n, nil
}

// anyInterruptPending reports whether any IE&IF bit is set, regardless of
// IME. HALT clears on any pending IF bit regardless of IME.
func (c *Cpu) anyInterruptPending() bool {
	return c.Read(addrIE)&c.Read(addrIF)&0x1F != 0
}

// pendingServiceableInterrupt returns the highest-priority line that is
// both pending (IF) and enabled (IE), provided IME is also set.
func (c *Cpu) pendingServiceableInterrupt() (InterruptLine, bool) {
	if !c.Regs.IME {
		return 0, false
	}
	pending := c.Read(addrIE) & c.Read(addrIF) & 0x1F
	if pending == 0 {
		return 0, false
	}
	for line := InterruptVBlank; line <= InterruptJoypad; line++ {
		if pending&(1<<byte(line)) != 0 {
			return line, true
		}
	}
	return 0, false
}

// serviceInterrupt disables interrupts, pushes PC, jumps to the vector for
// line, clears the serviced IF bit, and returns the fixed 20-cycle cost.
func (c *Cpu) serviceInterrupt(line InterruptLine) int {
	c.Regs.IME = false
	c.Regs.Halted = false
	c.push16(c.Regs.PC)
	c.Regs.PC = interruptVectors[line]

	ifReg := c.Read(addrIF)
	c.Write(addrIF, ifReg&^(1<<byte(line)))

	return 20
}

// Resume clears a STOP-induced stop, the same effect a joypad button press
// has on real hardware. The collaborator that owns the joypad is
// responsible for calling this when it observes input; unlike HALT, a
// pending interrupt alone never clears Stopped.
func (c *Cpu) Resume() {
	c.Regs.Stopped = false
}
