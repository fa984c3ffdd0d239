package cpu

import "github.com/grevsten/snekboy/mask"

// Operand addressing primitives. Each reads through PC and auto-advances
// it. There is no AddressingMode enum dispatching to these: the LR35902's
// operand shapes are few and fixed enough per-opcode that the opcode tables
// reference these directly instead of going through a mode switch.

// imm8 reads one byte at PC and advances PC by 1.
func (c *Cpu) imm8() byte {
	v := c.Read(c.Regs.PC)
	c.Regs.PC++
	return v
}

// imm16 reads two bytes at PC, low byte first, and advances PC by 2.
func (c *Cpu) imm16() uint16 {
	lo := c.imm8()
	hi := c.imm8()
	return mask.Word(hi, lo)
}

// immS8 reads one byte at PC, advances PC by 1, and interprets the byte as
// a signed two's-complement offset.
func (c *Cpu) immS8() int8 {
	return int8(c.imm8())
}

// readHLInd reads the byte at the address held in HL.
func (c *Cpu) readHLInd() byte {
	return c.Read(c.Regs.GetReg16(RegHL))
}

// writeHLInd writes v to the address held in HL.
func (c *Cpu) writeHLInd(v byte) {
	c.Write(c.Regs.GetReg16(RegHL), v)
}

// ioportRead reads the byte at 0xFF00+n, the shortcut used by LDH and the
// (C)-indexed load forms.
func (c *Cpu) ioportRead(n byte) byte {
	return c.Read(0xFF00 + uint16(n))
}

// ioportWrite writes v to 0xFF00+n.
func (c *Cpu) ioportWrite(n byte, v byte) {
	c.Write(0xFF00+uint16(n), v)
}
