package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/grevsten/snekboy/mem"
)

// model is the bubbletea model driving the single-step debugger. It only
// works against a *mem.FlatBus, since rendering a memory page needs direct
// array access that the Bus interface deliberately doesn't expose.
type model struct {
	cpu    *Cpu
	bus    *mem.FlatBus
	offset uint16 // load address of the program; not read when drawing

	prevPC uint16
	error  error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.cpu.Regs.PC
			if _, err := m.cpu.Step(); err != nil {
				m.error = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page as a line. The current PC is
// highlighted.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.bus.RAM[addr]
		if addr == m.cpu.Regs.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	var flags string
	for _, flag := range []bool{
		m.cpu.Regs.GetFlag(FlagZ),
		m.cpu.Regs.GetFlag(FlagN),
		m.cpu.Regs.GetFlag(FlagH),
		m.cpu.Regs.GetFlag(FlagC),
		m.cpu.Regs.IME,
		m.cpu.Regs.Halted,
	} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
AF: %04x
BC: %04x
DE: %04x
HL: %04x
Z N H C IME HLT
`,
		m.cpu.Regs.PC,
		m.prevPC,
		m.cpu.Regs.SP,
		m.cpu.Regs.GetReg16(RegAF),
		m.cpu.Regs.GetReg16(RegBC),
		m.cpu.Regs.GetReg16(RegDE),
		m.cpu.Regs.GetReg16(RegHL),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	pcPage := m.cpu.Regs.PC &^ 0xF
	offsets := []uint16{
		0, 16, 32, 48, 64,
		pcPage, pcPage + 16, pcPage + 32, pcPage + 48, pcPage + 64,
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(i))
	}
	return strings.Join(pages, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	var currentOp *Opcode
	opByte := m.bus.RAM[m.cpu.Regs.PC]
	if opByte == 0xCB {
		currentOp = cbOpcodes[m.bus.RAM[m.cpu.Regs.PC+1]]
	} else {
		currentOp = baseOpcodes[opByte]
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(currentOp),
	)
}

// Debug loads program into bus at offset, points PC at it, and starts an
// interactive single-step TUI.
func Debug(c *Cpu, bus *mem.FlatBus, program []byte, offset uint16) {
	bus.LoadProgram(program, offset)
	c.Regs.PC = offset

	m, err := tea.NewProgram(model{cpu: c, bus: bus, offset: offset}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.error != nil {
		fmt.Println("Error:", x.error)
	}
}
