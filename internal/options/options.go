// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // input ROM file
	Output string // trace output file, stdout if empty
	Golden string // golden log file to verify the execution against
	Batch  string // batch process files matching the pattern

	CodeDataLog string // code data log output file of the executed code
}

// Flags contains behavior options.
type Flags struct {
	Debug     bool
	Quiet     bool
	Trace     bool   // print a trace line for every executed instruction
	VerifyROM bool   // verify that the ROM encoding recreates the input
	Steps     int    // number of instructions to execute, 0 runs until an error occurs
	Start     *uint16 // program counter override, nil uses the reset vector

	Breakpoints []uint16 // addresses that stop the execution
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Executes returns whether the options request instructions to be executed.
func (p Program) Executes() bool {
	return p.Trace || p.Golden != "" || p.Steps > 0 || len(p.Breakpoints) > 0
}
