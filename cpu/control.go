package cpu

// Control transfer primitives. Conditional forms always fetch their operand
// before checking the condition, as specified: JP/CALL fetch the u16
// first, JR fetches its s8 first, regardless of whether the branch is
// taken.

// jp implements JP u16.
func (c *Cpu) jp() {
	c.Regs.PC = c.imm16()
}

// jpCond implements JP cc,u16, returning whether the branch was taken.
func (c *Cpu) jpCond(cc Cond) bool {
	addr := c.imm16()
	if c.Regs.evalCond(cc) {
		c.Regs.PC = addr
		return true
	}
	return false
}

// jpHL implements JP HL.
func (c *Cpu) jpHL() {
	c.Regs.PC = c.Regs.GetReg16(RegHL)
}

// jr implements JR s8. The displacement is added to PC as it stands after
// the s8 fetch.
func (c *Cpu) jr() {
	s := c.immS8()
	c.Regs.PC = uint16(int32(c.Regs.PC) + int32(s))
}

// jrCond implements JR cc,s8, returning whether the branch was taken.
func (c *Cpu) jrCond(cc Cond) bool {
	s := c.immS8()
	if c.Regs.evalCond(cc) {
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(s))
		return true
	}
	return false
}

// call implements CALL u16.
func (c *Cpu) call() {
	addr := c.imm16()
	c.push16(c.Regs.PC)
	c.Regs.PC = addr
}

// callCond implements CALL cc,u16, returning whether the call was taken.
func (c *Cpu) callCond(cc Cond) bool {
	addr := c.imm16()
	if c.Regs.evalCond(cc) {
		c.push16(c.Regs.PC)
		c.Regs.PC = addr
		return true
	}
	return false
}

// rst implements RST n.
func (c *Cpu) rst(vector byte) {
	c.push16(c.Regs.PC)
	c.Regs.PC = uint16(vector)
}

// ret implements RET.
func (c *Cpu) ret() {
	c.Regs.PC = c.pop16()
}

// retCond implements RET cc, returning whether the return was taken.
func (c *Cpu) retCond(cc Cond) bool {
	if c.Regs.evalCond(cc) {
		c.Regs.PC = c.pop16()
		return true
	}
	return false
}

// reti implements RETI: pops PC and enables interrupts immediately,
// unlike EI which is delayed by one instruction.
func (c *Cpu) reti() {
	c.Regs.PC = c.pop16()
	c.Regs.IME = true
}
