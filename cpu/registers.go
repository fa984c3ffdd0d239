// Package cpu implements the LR35902 microprocessor, the 8-bit CPU at the
// heart of a well-known 1989 handheld console, at the instruction level.

package cpu

import "github.com/grevsten/snekboy/mask"

// A Reg8 names one of the eight 8-bit register views.
type Reg8 int

const (
	RegA Reg8 = iota
	RegB
	RegC
	RegD
	RegE
	RegH
	RegL
	RegF
)

// A Reg16 names one of the six 16-bit register cells.
type Reg16 int

const (
	RegAF Reg16 = iota
	RegBC
	RegDE
	RegHL
	RegSP
	RegPC
)

// A FlagBit names one of the four flags packed into the high nibble of F.
type FlagBit int

const (
	FlagZ FlagBit = iota // bit 7, zero
	FlagN                // bit 6, subtract
	FlagH                // bit 5, half-carry
	FlagC                // bit 4, carry
)

// bitPos returns the 0-indexed bit position of a flag within F.
func (f FlagBit) bitPos() byte {
	switch f {
	case FlagZ:
		return 7
	case FlagN:
		return 6
	case FlagH:
		return 5
	case FlagC:
		return 4
	default:
		panic("invalid flag")
	}
}

// A Cond names one of the four branch conditions available to JP/JR/CALL/RET.
type Cond int

const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
)

// Registers is the LR35902 register file: six 16-bit cells, four of which
// (AF, BC, DE, HL) are addressable as high/low byte pairs, plus the
// interrupt/halt state a collaborator needs to drive Step correctly.
//
// F's low nibble is always zero; see SetReg16 and SetFlag.
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16

	IME       bool // interrupt master enable
	Halted    bool // cleared by Step on any pending IF bit, regardless of IME
	Stopped   bool // set by STOP; only Resume clears it, never an interrupt
	EIPending bool // EI takes effect after the next instruction executes
}

// PowerOnRegisters returns the typical post-boot-ROM register profile. It is
// a convenience value for callers constructing a Cpu, never baked into New
// itself.
func PowerOnRegisters() Registers {
	return Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
}

// GetReg8 reads an 8-bit register view.
func (r *Registers) GetReg8(reg Reg8) byte {
	switch reg {
	case RegA:
		return r.A
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	case RegF:
		return r.F
	default:
		panic("invalid 8-bit register")
	}
}

// SetReg8 writes an 8-bit register view. v is truncated modulo 256, so
// SetReg8 is total for any int input.
func (r *Registers) SetReg8(reg Reg8, v int) {
	b := byte(v & 0xFF)
	switch reg {
	case RegA:
		r.A = b
	case RegB:
		r.B = b
	case RegC:
		r.C = b
	case RegD:
		r.D = b
	case RegE:
		r.E = b
	case RegH:
		r.H = b
	case RegL:
		r.L = b
	case RegF:
		r.F = b & 0xF0 // bits 3..0 of F are always zero
	default:
		panic("invalid 8-bit register")
	}
}

// GetReg16 reads a 16-bit register cell, assembling high/low byte pairs
// where applicable.
func (r *Registers) GetReg16(reg Reg16) uint16 {
	switch reg {
	case RegAF:
		return mask.Word(r.A, r.F)
	case RegBC:
		return mask.Word(r.B, r.C)
	case RegDE:
		return mask.Word(r.D, r.E)
	case RegHL:
		return mask.Word(r.H, r.L)
	case RegSP:
		return r.SP
	case RegPC:
		return r.PC
	default:
		panic("invalid 16-bit register")
	}
}

// SetReg16 writes a 16-bit register cell. v is truncated modulo 65536. When
// reg is RegAF, the low nibble of the stored F is forced to zero.
func (r *Registers) SetReg16(reg Reg16, v int) {
	w := uint16(v & 0xFFFF)
	switch reg {
	case RegAF:
		r.A = mask.HighByte(w)
		r.F = mask.LowByte(w) & 0xF0
	case RegBC:
		r.B = mask.HighByte(w)
		r.C = mask.LowByte(w)
	case RegDE:
		r.D = mask.HighByte(w)
		r.E = mask.LowByte(w)
	case RegHL:
		r.H = mask.HighByte(w)
		r.L = mask.LowByte(w)
	case RegSP:
		r.SP = w
	case RegPC:
		r.PC = w
	default:
		panic("invalid 16-bit register")
	}
}

// GetFlag reports whether the given flag bit is set in F.
func (r *Registers) GetFlag(f FlagBit) bool {
	return r.F&mask.BitMask(f.bitPos()) != 0
}

// SetFlag sets or clears the given flag bit in F, leaving the other three
// flags and F's always-zero low nibble untouched.
func (r *Registers) SetFlag(f FlagBit, v bool) {
	bit := mask.BitMask(f.bitPos())
	if v {
		r.F |= bit
	} else {
		r.F &^= bit
	}
	r.F &= 0xF0
}

// evalCond evaluates a branch condition against the current flags.
func (r *Registers) evalCond(cc Cond) bool {
	switch cc {
	case CondNZ:
		return !r.GetFlag(FlagZ)
	case CondZ:
		return r.GetFlag(FlagZ)
	case CondNC:
		return !r.GetFlag(FlagC)
	case CondC:
		return r.GetFlag(FlagC)
	default:
		panic("invalid condition")
	}
}
