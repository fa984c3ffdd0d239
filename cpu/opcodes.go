package cpu

import "fmt"

// An Opcode carries everything the dispatch loop needs: a name for the
// debugger/disassembler, a nominal cycle cost for display, and the Exec
// func that performs the instruction and returns the cycles actually
// consumed (which differs from Cycles only for conditional control
// transfers, where Exec returns the taken-vs-not-taken cost itself).
//
// Two dense 256-entry arrays hold these, one per table, rather than a
// single map: the LR35902 has a second, CB-prefixed table alongside the
// base one, and an array gives O(1) dispatch with no hashing.
type Opcode struct {
	Name   string
	Cycles int // nominal cost; see Exec's return value for conditional ops
	Exec   func(c *Cpu) int
}

// baseOpcodes and cbOpcodes are indexed directly by opcode byte. A nil
// entry is an illegal opcode.
var baseOpcodes [256]*Opcode

var rrRegs = [4]Reg16{RegBC, RegDE, RegHL, RegSP}
var pushPopRegs = [4]Reg16{RegBC, RegDE, RegHL, RegAF}
var condOrder = [4]Cond{CondNZ, CondZ, CondNC, CondC}
var condNames = [4]string{"NZ", "Z", "NC", "C"}

func init() {
	initLoadRegToReg()
	initIncDecLoadImm8()
	initRRPairOps()
	initAluRegBlock()
	initPushPop()
	initBranchBlock()
	initRestOfBaseTable()
}

// initLoadRegToReg fills 0x40-0x7F, the LD r,r' block, with 0x76 reserved
// for HALT.
func initLoadRegToReg() {
	for dest := 0; dest < 8; dest++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x40 + dest*8 + src)
			if dest == col8IndirectHL && src == col8IndirectHL {
				continue // 0x76 is HALT, not LD (HL),(HL)
			}
			destCol, srcCol := dest, src
			cycles := 4
			if destCol == col8IndirectHL || srcCol == col8IndirectHL {
				cycles = 8
			}
			name := fmt.Sprintf("LD %s,%s", col8Name[destCol], col8Name[srcCol])
			baseOpcodes[opcode] = &Opcode{
				Name:   name,
				Cycles: cycles,
				Exec: func(c *Cpu) int {
					c.setOperand(destCol, c.getOperand(srcCol))
					return cycles
				},
			}
		}
	}
	baseOpcodes[0x76] = &Opcode{
		Name:   "HALT",
		Cycles: 4,
		Exec: func(c *Cpu) int {
			c.Regs.Halted = true
			return 4
		},
	}
}

// initIncDecLoadImm8 fills the regular INC r8/DEC r8/LD r8,u8 triplets
// that recur every 8 opcodes starting at 0x04.
func initIncDecLoadImm8() {
	for col := 0; col < 8; col++ {
		incOp := byte(0x04 + col*8)
		decOp := byte(0x05 + col*8)
		ldOp := byte(0x06 + col*8)
		c8 := col

		incCycles, decCycles, ldCycles := 4, 4, 8
		if c8 == col8IndirectHL {
			incCycles, decCycles, ldCycles = 12, 12, 12
		}

		baseOpcodes[incOp] = &Opcode{
			Name:   "INC " + col8Name[c8],
			Cycles: incCycles,
			Exec: func(c *Cpu) int {
				c.setOperand(c8, c.incValue(c.getOperand(c8)))
				return incCycles
			},
		}
		baseOpcodes[decOp] = &Opcode{
			Name:   "DEC " + col8Name[c8],
			Cycles: decCycles,
			Exec: func(c *Cpu) int {
				c.setOperand(c8, c.decValue(c.getOperand(c8)))
				return decCycles
			},
		}
		baseOpcodes[ldOp] = &Opcode{
			Name:   "LD " + col8Name[c8] + ",d8",
			Cycles: ldCycles,
			Exec: func(c *Cpu) int {
				c.setOperand(c8, c.imm8())
				return ldCycles
			},
		}
	}
}

// initRRPairOps fills LD rr,d16 / INC rr / ADD HL,rr / DEC rr for the four
// 16-bit register pairs, each recurring every 0x10 opcodes from a row base.
func initRRPairOps() {
	rrNames := [4]string{"BC", "DE", "HL", "SP"}
	for i := 0; i < 4; i++ {
		reg := rrRegs[i]
		name := rrNames[i]
		base := byte(i * 0x10)

		baseOpcodes[base+0x01] = &Opcode{
			Name:   "LD " + name + ",d16",
			Cycles: 12,
			Exec: func(c *Cpu) int {
				c.Regs.SetReg16(reg, int(c.imm16()))
				return 12
			},
		}
		baseOpcodes[base+0x03] = &Opcode{
			Name:   "INC " + name,
			Cycles: 8,
			Exec: func(c *Cpu) int {
				c.incRR16(reg)
				return 8
			},
		}
		baseOpcodes[base+0x09] = &Opcode{
			Name:   "ADD HL," + name,
			Cycles: 8,
			Exec: func(c *Cpu) int {
				c.addHL(c.Regs.GetReg16(reg))
				return 8
			},
		}
		baseOpcodes[base+0x0B] = &Opcode{
			Name:   "DEC " + name,
			Cycles: 8,
			Exec: func(c *Cpu) int {
				c.decRR16(reg)
				return 8
			},
		}
	}
}

// initAluRegBlock fills 0x80-0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r8.
func initAluRegBlock() {
	aluOps := [8]func(c *Cpu, v byte){
		(*Cpu).addA, (*Cpu).adcA, (*Cpu).subA, (*Cpu).sbcA,
		(*Cpu).andA, (*Cpu).xorA, (*Cpu).orA, (*Cpu).cpA,
	}
	aluNames := [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

	for row := 0; row < 8; row++ {
		op := aluOps[row]
		for col := 0; col < 8; col++ {
			opcode := byte(0x80 + row*8 + col)
			c8 := col
			cycles := 4
			if c8 == col8IndirectHL {
				cycles = 8
			}
			baseOpcodes[opcode] = &Opcode{
				Name:   aluNames[row] + col8Name[c8],
				Cycles: cycles,
				Exec: func(c *Cpu) int {
					op(c, c.getOperand(c8))
					return cycles
				},
			}
		}
	}
}

// initPushPop fills PUSH rr / POP rr for BC, DE, HL, AF.
func initPushPop() {
	rrNames := [4]string{"BC", "DE", "HL", "AF"}
	for i := 0; i < 4; i++ {
		reg := pushPopRegs[i]
		name := rrNames[i]
		base := byte(i * 0x10)
		isAF := i == 3

		baseOpcodes[base+0xC5] = &Opcode{
			Name:   "PUSH " + name,
			Cycles: 16,
			Exec: func(c *Cpu) int {
				c.push16(c.Regs.GetReg16(reg))
				return 16
			},
		}
		baseOpcodes[base+0xC1] = &Opcode{
			Name:   "POP " + name,
			Cycles: 12,
			Exec: func(c *Cpu) int {
				if isAF {
					c.pop16AF()
				} else {
					c.Regs.SetReg16(reg, int(c.pop16()))
				}
				return 12
			},
		}
	}
}

// initBranchBlock fills RET cc / JP cc,a16 / CALL cc,a16, the conditional
// JR cc,s8 forms and the eight RST vectors, all of which recur regularly
// across the opcode space.
func initBranchBlock() {
	for i := 0; i < 4; i++ {
		cc := condOrder[i]
		cn := condNames[i]
		base := byte(i * 0x08)

		baseOpcodes[0xC0+base] = &Opcode{
			Name:   "RET " + cn,
			Cycles: 20,
			Exec: func(c *Cpu) int {
				if c.retCond(cc) {
					return 20
				}
				return 8
			},
		}
		baseOpcodes[0xC2+base] = &Opcode{
			Name:   "JP " + cn + ",a16",
			Cycles: 16,
			Exec: func(c *Cpu) int {
				if c.jpCond(cc) {
					return 16
				}
				return 12
			},
		}
		baseOpcodes[0xC4+base] = &Opcode{
			Name:   "CALL " + cn + ",a16",
			Cycles: 24,
			Exec: func(c *Cpu) int {
				if c.callCond(cc) {
					return 24
				}
				return 12
			},
		}
		baseOpcodes[0x20+base] = &Opcode{
			Name:   "JR " + cn + ",s8",
			Cycles: 12,
			Exec: func(c *Cpu) int {
				if c.jrCond(cc) {
					return 12
				}
				return 8
			},
		}
	}

	for i := 0; i < 8; i++ {
		vector := byte(i * 0x08)
		baseOpcodes[0xC7+byte(i*0x08)] = &Opcode{
			Name:   fmt.Sprintf("RST %02XH", vector),
			Cycles: 16,
			Exec: func(c *Cpu) int {
				c.rst(vector)
				return 16
			},
		}
	}
}

// initRestOfBaseTable fills every remaining opcode that has no regular
// sibling pattern: NOP, the accumulator-fast rotates, the (BC)/(DE)/(HL+-)
// loads, STOP, unconditional JR, DAA/CPL/SCF/CCF, the immediate-operand
// ALU forms, and the 0xC0-0xFF specials.
func initRestOfBaseTable() {
	baseOpcodes[0x00] = &Opcode{Name: "NOP", Cycles: 4, Exec: func(c *Cpu) int { return 4 }}

	baseOpcodes[0x02] = &Opcode{Name: "LD (BC),A", Cycles: 8, Exec: func(c *Cpu) int {
		c.Write(c.Regs.GetReg16(RegBC), c.Regs.A)
		return 8
	}}
	baseOpcodes[0x0A] = &Opcode{Name: "LD A,(BC)", Cycles: 8, Exec: func(c *Cpu) int {
		c.Regs.A = c.Read(c.Regs.GetReg16(RegBC))
		return 8
	}}
	baseOpcodes[0x12] = &Opcode{Name: "LD (DE),A", Cycles: 8, Exec: func(c *Cpu) int {
		c.Write(c.Regs.GetReg16(RegDE), c.Regs.A)
		return 8
	}}
	baseOpcodes[0x1A] = &Opcode{Name: "LD A,(DE)", Cycles: 8, Exec: func(c *Cpu) int {
		c.Regs.A = c.Read(c.Regs.GetReg16(RegDE))
		return 8
	}}
	baseOpcodes[0x22] = &Opcode{Name: "LD (HL+),A", Cycles: 8, Exec: func(c *Cpu) int {
		hl := c.Regs.GetReg16(RegHL)
		c.Write(hl, c.Regs.A)
		c.Regs.SetReg16(RegHL, int(hl)+1)
		return 8
	}}
	baseOpcodes[0x2A] = &Opcode{Name: "LD A,(HL+)", Cycles: 8, Exec: func(c *Cpu) int {
		hl := c.Regs.GetReg16(RegHL)
		c.Regs.A = c.Read(hl)
		c.Regs.SetReg16(RegHL, int(hl)+1)
		return 8
	}}
	baseOpcodes[0x32] = &Opcode{Name: "LD (HL-),A", Cycles: 8, Exec: func(c *Cpu) int {
		hl := c.Regs.GetReg16(RegHL)
		c.Write(hl, c.Regs.A)
		c.Regs.SetReg16(RegHL, int(hl)-1)
		return 8
	}}
	baseOpcodes[0x3A] = &Opcode{Name: "LD A,(HL-)", Cycles: 8, Exec: func(c *Cpu) int {
		hl := c.Regs.GetReg16(RegHL)
		c.Regs.A = c.Read(hl)
		c.Regs.SetReg16(RegHL, int(hl)-1)
		return 8
	}}

	baseOpcodes[0x07] = &Opcode{Name: "RLCA", Cycles: 4, Exec: func(c *Cpu) int { c.rlca(); return 4 }}
	baseOpcodes[0x0F] = &Opcode{Name: "RRCA", Cycles: 4, Exec: func(c *Cpu) int { c.rrca(); return 4 }}
	baseOpcodes[0x17] = &Opcode{Name: "RLA", Cycles: 4, Exec: func(c *Cpu) int { c.rla(); return 4 }}
	baseOpcodes[0x1F] = &Opcode{Name: "RRA", Cycles: 4, Exec: func(c *Cpu) int { c.rra(); return 4 }}

	baseOpcodes[0x08] = &Opcode{Name: "LD (a16),SP", Cycles: 20, Exec: func(c *Cpu) int {
		addr := c.imm16()
		sp := c.Regs.SP
		c.Write(addr, byte(sp))
		c.Write(addr+1, byte(sp>>8))
		return 20
	}}

	baseOpcodes[0x10] = &Opcode{Name: "STOP", Cycles: 4, Exec: func(c *Cpu) int {
		c.imm8() // conventionally followed by a 0x00 padding byte
		c.Regs.Stopped = true
		return 4
	}}

	baseOpcodes[0x18] = &Opcode{Name: "JR s8", Cycles: 12, Exec: func(c *Cpu) int { c.jr(); return 12 }}

	baseOpcodes[0x27] = &Opcode{Name: "DAA", Cycles: 4, Exec: func(c *Cpu) int { c.daa(); return 4 }}
	baseOpcodes[0x2F] = &Opcode{Name: "CPL", Cycles: 4, Exec: func(c *Cpu) int { c.cpl(); return 4 }}
	baseOpcodes[0x37] = &Opcode{Name: "SCF", Cycles: 4, Exec: func(c *Cpu) int { c.scf(); return 4 }}
	baseOpcodes[0x3F] = &Opcode{Name: "CCF", Cycles: 4, Exec: func(c *Cpu) int { c.ccf(); return 4 }}

	baseOpcodes[0xC6] = &Opcode{Name: "ADD A,d8", Cycles: 8, Exec: func(c *Cpu) int { c.addA(c.imm8()); return 8 }}
	baseOpcodes[0xCE] = &Opcode{Name: "ADC A,d8", Cycles: 8, Exec: func(c *Cpu) int { c.adcA(c.imm8()); return 8 }}
	baseOpcodes[0xD6] = &Opcode{Name: "SUB d8", Cycles: 8, Exec: func(c *Cpu) int { c.subA(c.imm8()); return 8 }}
	baseOpcodes[0xDE] = &Opcode{Name: "SBC A,d8", Cycles: 8, Exec: func(c *Cpu) int { c.sbcA(c.imm8()); return 8 }}
	baseOpcodes[0xE6] = &Opcode{Name: "AND d8", Cycles: 8, Exec: func(c *Cpu) int { c.andA(c.imm8()); return 8 }}
	baseOpcodes[0xEE] = &Opcode{Name: "XOR d8", Cycles: 8, Exec: func(c *Cpu) int { c.xorA(c.imm8()); return 8 }}
	baseOpcodes[0xF6] = &Opcode{Name: "OR d8", Cycles: 8, Exec: func(c *Cpu) int { c.orA(c.imm8()); return 8 }}
	baseOpcodes[0xFE] = &Opcode{Name: "CP d8", Cycles: 8, Exec: func(c *Cpu) int { c.cpA(c.imm8()); return 8 }}

	baseOpcodes[0xC3] = &Opcode{Name: "JP a16", Cycles: 16, Exec: func(c *Cpu) int { c.jp(); return 16 }}
	baseOpcodes[0xC9] = &Opcode{Name: "RET", Cycles: 16, Exec: func(c *Cpu) int { c.ret(); return 16 }}
	baseOpcodes[0xCD] = &Opcode{Name: "CALL a16", Cycles: 24, Exec: func(c *Cpu) int { c.call(); return 24 }}
	baseOpcodes[0xD9] = &Opcode{Name: "RETI", Cycles: 16, Exec: func(c *Cpu) int { c.reti(); return 16 }}
	baseOpcodes[0xE9] = &Opcode{Name: "JP HL", Cycles: 4, Exec: func(c *Cpu) int { c.jpHL(); return 4 }}

	baseOpcodes[0xE0] = &Opcode{Name: "LDH (a8),A", Cycles: 12, Exec: func(c *Cpu) int {
		c.ioportWrite(c.imm8(), c.Regs.A)
		return 12
	}}
	baseOpcodes[0xF0] = &Opcode{Name: "LDH A,(a8)", Cycles: 12, Exec: func(c *Cpu) int {
		c.Regs.A = c.ioportRead(c.imm8())
		return 12
	}}
	baseOpcodes[0xE2] = &Opcode{Name: "LD (C),A", Cycles: 8, Exec: func(c *Cpu) int {
		c.ioportWrite(c.Regs.C, c.Regs.A)
		return 8
	}}
	baseOpcodes[0xF2] = &Opcode{Name: "LD A,(C)", Cycles: 8, Exec: func(c *Cpu) int {
		c.Regs.A = c.ioportRead(c.Regs.C)
		return 8
	}}
	baseOpcodes[0xEA] = &Opcode{Name: "LD (a16),A", Cycles: 16, Exec: func(c *Cpu) int {
		c.Write(c.imm16(), c.Regs.A)
		return 16
	}}
	baseOpcodes[0xFA] = &Opcode{Name: "LD A,(a16)", Cycles: 16, Exec: func(c *Cpu) int {
		c.Regs.A = c.Read(c.imm16())
		return 16
	}}

	baseOpcodes[0xE8] = &Opcode{Name: "ADD SP,s8", Cycles: 16, Exec: func(c *Cpu) int {
		s := c.immS8()
		c.Regs.SP = c.spPlusS8(c.Regs.SP, s)
		return 16
	}}
	baseOpcodes[0xF8] = &Opcode{Name: "LD HL,SP+s8", Cycles: 12, Exec: func(c *Cpu) int {
		s := c.immS8()
		result := c.spPlusS8(c.Regs.SP, s)
		c.Regs.SetReg16(RegHL, int(result))
		return 12
	}}
	baseOpcodes[0xF9] = &Opcode{Name: "LD SP,HL", Cycles: 8, Exec: func(c *Cpu) int {
		c.Regs.SP = c.Regs.GetReg16(RegHL)
		return 8
	}}

	baseOpcodes[0xF3] = &Opcode{Name: "DI", Cycles: 4, Exec: func(c *Cpu) int {
		c.Regs.IME = false
		c.Regs.EIPending = false
		return 4
	}}
	baseOpcodes[0xFB] = &Opcode{Name: "EI", Cycles: 4, Exec: func(c *Cpu) int {
		c.Regs.EIPending = true
		return 4
	}}

	// 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD are
	// left nil: the illegal-opcode set per the base opcode table.
}
