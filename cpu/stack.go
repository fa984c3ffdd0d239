package cpu

import "github.com/grevsten/snekboy/mask"

// push16 pushes v onto the stack: SP-=1, write high byte; SP-=1, write low
// byte. The high byte lands at the higher address.
func (c *Cpu) push16(v uint16) {
	c.Regs.SP--
	c.Write(c.Regs.SP, mask.HighByte(v))
	c.Regs.SP--
	c.Write(c.Regs.SP, mask.LowByte(v))
}

// pop16 pops a 16-bit value: read low byte, SP+=1; read high byte, SP+=1.
func (c *Cpu) pop16() uint16 {
	lo := c.Read(c.Regs.SP)
	c.Regs.SP++
	hi := c.Read(c.Regs.SP)
	c.Regs.SP++
	return mask.Word(hi, lo)
}

// pop16AF pops into AF, applying the F-low-nibble-zero invariant.
func (c *Cpu) pop16AF() {
	v := c.pop16()
	c.Regs.SetReg16(RegAF, int(v))
}
