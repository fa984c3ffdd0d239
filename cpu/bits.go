package cpu

import "github.com/grevsten/snekboy/mask"

// Rotate/shift/bit primitives. All rotate/shift forms set N=0, H=0 and take
// C from the ejected bit; Z reflects the result being zero, except the
// accumulator-fast forms (RLCA/RLA/RRCA/RRA) which always force Z=0.

func (c *Cpu) setShiftFlags(result byte, carryOut bool) {
	c.Regs.SetFlag(FlagZ, result == 0)
	c.Regs.SetFlag(FlagN, false)
	c.Regs.SetFlag(FlagH, false)
	c.Regs.SetFlag(FlagC, carryOut)
}

// rlc rotates v left, carry out = old bit 7, carry in = old bit 7 (wraps).
func (c *Cpu) rlc(v byte) byte {
	carryOut := v&0x80 != 0
	result := (v << 1) | (v >> 7)
	c.setShiftFlags(result, carryOut)
	return result
}

// rl rotates v left through the carry flag.
func (c *Cpu) rl(v byte) byte {
	var carryIn byte
	if c.Regs.GetFlag(FlagC) {
		carryIn = 1
	}
	carryOut := v&0x80 != 0
	result := (v << 1) | carryIn
	c.setShiftFlags(result, carryOut)
	return result
}

// rrc rotates v right, carry out = old bit 0, carry in = old bit 0 (wraps).
func (c *Cpu) rrc(v byte) byte {
	carryOut := v&0x01 != 0
	result := (v >> 1) | (v << 7)
	c.setShiftFlags(result, carryOut)
	return result
}

// rr rotates v right through the carry flag.
func (c *Cpu) rr(v byte) byte {
	var carryIn byte
	if c.Regs.GetFlag(FlagC) {
		carryIn = 1
	}
	carryOut := v&0x01 != 0
	result := (v >> 1) | (carryIn << 7)
	c.setShiftFlags(result, carryOut)
	return result
}

// sla shifts v left, shifting in a 0 bit.
func (c *Cpu) sla(v byte) byte {
	carryOut := v&0x80 != 0
	result := v << 1
	c.setShiftFlags(result, carryOut)
	return result
}

// sra shifts v right arithmetically, preserving bit 7.
func (c *Cpu) sra(v byte) byte {
	carryOut := v&0x01 != 0
	result := (v >> 1) | (v & 0x80)
	c.setShiftFlags(result, carryOut)
	return result
}

// srl shifts v right logically, shifting in a 0 bit.
func (c *Cpu) srl(v byte) byte {
	carryOut := v&0x01 != 0
	result := v >> 1
	c.setShiftFlags(result, carryOut)
	return result
}

// swap exchanges the high and low nibbles of v. Carry is always cleared.
func (c *Cpu) swap(v byte) byte {
	result := (v << 4) | (v >> 4)
	c.Regs.SetFlag(FlagZ, result == 0)
	c.Regs.SetFlag(FlagN, false)
	c.Regs.SetFlag(FlagH, false)
	c.Regs.SetFlag(FlagC, false)
	return result
}

// rlca/rla/rrca/rra are the fast accumulator-only forms (opcodes 0x07,
// 0x17, 0x0F, 0x1F). They are identical to rlc/rl/rrc/rr applied to A,
// except Z is always forced to 0.
func (c *Cpu) rlca() {
	c.Regs.A = c.rlc(c.Regs.A)
	c.Regs.SetFlag(FlagZ, false)
}

func (c *Cpu) rla() {
	c.Regs.A = c.rl(c.Regs.A)
	c.Regs.SetFlag(FlagZ, false)
}

func (c *Cpu) rrca() {
	c.Regs.A = c.rrc(c.Regs.A)
	c.Regs.SetFlag(FlagZ, false)
}

func (c *Cpu) rra() {
	c.Regs.A = c.rr(c.Regs.A)
	c.Regs.SetFlag(FlagZ, false)
}

// bitTest implements BIT b,v: Z = bit b of v is clear; N=0; H=1; C
// unchanged.
func (c *Cpu) bitTest(b byte, v byte) {
	c.Regs.SetFlag(FlagZ, !mask.IsSet(v, mask.PosFromBit(b)))
	c.Regs.SetFlag(FlagN, false)
	c.Regs.SetFlag(FlagH, true)
}

// setBit implements SET b,v: no flags affected.
func (c *Cpu) setBit(b byte, v byte) byte {
	return mask.Set(v, mask.PosFromBit(b), 1)
}

// resBit implements RES b,v: no flags affected.
func (c *Cpu) resBit(b byte, v byte) byte {
	pos := mask.PosFromBit(b)
	return mask.Unset(v, pos, pos)
}
