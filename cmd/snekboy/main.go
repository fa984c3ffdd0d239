// Command snekboy loads a flat LR35902 binary image and either runs it
// headlessly for a fixed cycle budget or drops into the interactive
// single-step debugger.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grevsten/snekboy/cpu"
	"github.com/grevsten/snekboy/mem"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "snekboy",
		Short: "LR35902 instruction-level core — run or step through a flat binary image",
	}

	var loadAddr uint16
	var cycleBudget int

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Run a flat binary image headlessly for a fixed cycle budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			bus := mem.NewFlatBus()
			bus.LoadProgram(program, loadAddr)

			c := cpu.New(bus, cpu.PowerOnRegisters())
			c.Regs.PC = loadAddr

			spent := 0
			for spent < cycleBudget {
				n, err := c.Step()
				if err != nil {
					return fmt.Errorf("at PC=0x%04X: %w", c.Regs.PC, err)
				}
				spent += n
			}

			fmt.Printf("ran %d cycles, halted at PC=0x%04X\n", spent, c.Regs.PC)
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&loadAddr, "addr", 0x0100, "address to load the image at and start execution from")
	runCmd.Flags().IntVar(&cycleBudget, "cycles", 1_000_000, "cycle budget before the run stops")

	debugCmd := &cobra.Command{
		Use:   "debug <image>",
		Short: "Load a flat binary image and start the interactive single-step debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			bus := mem.NewFlatBus()
			c := cpu.New(bus, cpu.PowerOnRegisters())
			cpu.Debug(c, bus, program, loadAddr)
			return nil
		},
	}
	debugCmd.Flags().Uint16Var(&loadAddr, "addr", 0x0100, "address to load the image at and start execution from")

	rootCmd.AddCommand(runCmd, debugCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
