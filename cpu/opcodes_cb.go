package cpu

import "fmt"

// cbOpcodes is the second dispatch table, entered via the 0xCB prefix
// byte. Its 256 entries decompose cleanly into four 64-opcode quadrants
// by operation, each further split into 8 rows (one per shift/rotate
// operation in the first quadrant, one per bit position 0-7 in the BIT,
// RES and SET quadrants) of 8 columns (the same B,C,D,E,H,L,(HL),A operand
// column used by the base table), so the whole table is generated rather
// than hand-listed.
var cbOpcodes [256]*Opcode

func init() {
	shiftOps := [8]func(c *Cpu, v byte) byte{
		(*Cpu).rlc, (*Cpu).rrc, (*Cpu).rl, (*Cpu).rr,
		(*Cpu).sla, (*Cpu).sra, (*Cpu).swap, (*Cpu).srl,
	}
	shiftNames := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for row := 0; row < 8; row++ {
		shiftOp := shiftOps[row]
		name := shiftNames[row]
		for col := 0; col < 8; col++ {
			opcode := byte(row*8 + col)
			c8 := col
			cycles := 8
			if c8 == col8IndirectHL {
				cycles = 16
			}
			cbOpcodes[opcode] = &Opcode{
				Name:   name + " " + col8Name[c8],
				Cycles: cycles,
				Exec: func(c *Cpu) int {
					c.setOperand(c8, shiftOp(c, c.getOperand(c8)))
					return cycles
				},
			}
		}
	}

	for bit := 0; bit < 8; bit++ {
		b := byte(bit)
		for col := 0; col < 8; col++ {
			c8 := col

			bitOpcode := byte(0x40 + bit*8 + col)
			bitCycles := 8
			if c8 == col8IndirectHL {
				bitCycles = 12
			}
			cbOpcodes[bitOpcode] = &Opcode{
				Name:   fmt.Sprintf("BIT %d,%s", b, col8Name[c8]),
				Cycles: bitCycles,
				Exec: func(c *Cpu) int {
					c.bitTest(b, c.getOperand(c8))
					return bitCycles
				},
			}

			resOpcode := byte(0x80 + bit*8 + col)
			resSetCycles := 8
			if c8 == col8IndirectHL {
				resSetCycles = 16
			}
			cbOpcodes[resOpcode] = &Opcode{
				Name:   fmt.Sprintf("RES %d,%s", b, col8Name[c8]),
				Cycles: resSetCycles,
				Exec: func(c *Cpu) int {
					c.setOperand(c8, c.resBit(b, c.getOperand(c8)))
					return resSetCycles
				},
			}

			setOpcode := byte(0xC0 + bit*8 + col)
			cbOpcodes[setOpcode] = &Opcode{
				Name:   fmt.Sprintf("SET %d,%s", b, col8Name[c8]),
				Cycles: resSetCycles,
				Exec: func(c *Cpu) int {
					c.setOperand(c8, c.setBit(b, c.getOperand(c8)))
					return resSetCycles
				},
			}
		}
	}
}
