package cpu

// The base and CB tables both index an 8-entry operand column (B, C, D, E,
// H, L, (HL), A) in row-major opcode layout. col8Reg maps columns 0-5 and 7
// to their Reg8; column 6 is the (HL) indirect operand and has no Reg8, so
// callers must special-case it (getOperand/setOperand do this once here
// rather than in every opcode handler).
var col8Reg = [8]Reg8{RegB, RegC, RegD, RegE, RegH, RegL, 0, RegA}

const col8IndirectHL = 6

var col8Name = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// getOperand reads the byte-sized operand named by col, fetching through
// (HL) for col==6.
func (c *Cpu) getOperand(col int) byte {
	if col == col8IndirectHL {
		return c.readHLInd()
	}
	return c.Regs.GetReg8(col8Reg[col])
}

// setOperand writes the byte-sized operand named by col, writing through
// (HL) for col==6.
func (c *Cpu) setOperand(col int, v byte) {
	if col == col8IndirectHL {
		c.writeHLInd(v)
		return
	}
	c.Regs.SetReg8(col8Reg[col], int(v))
}
