package cpu

// Status register bit masks.
const (
	FlagCarry byte = 1 << iota
	FlagZero
	FlagInterrupt
	FlagDecimal
	FlagBreak
	FlagReserved // always set when the register is read as byte
	FlagOverflow
	FlagSign
)

// Status is the processor status register.
type Status struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	DecimalMode      bool // settable, arithmetic ignores it
	Break            bool
	Overflow         bool
	Sign             bool
}

// ToUint8 converts the status into the packed register format. The reserved
// bit is always set.
func (s Status) ToUint8() byte {
	v := FlagReserved

	if s.Carry {
		v |= FlagCarry
	}
	if s.Zero {
		v |= FlagZero
	}
	if s.InterruptDisable {
		v |= FlagInterrupt
	}
	if s.DecimalMode {
		v |= FlagDecimal
	}
	if s.Break {
		v |= FlagBreak
	}
	if s.Overflow {
		v |= FlagOverflow
	}
	if s.Sign {
		v |= FlagSign
	}
	return v
}

// FromUint8 sets all flags from the packed register format.
func (s *Status) FromUint8(v byte) {
	s.Carry = v&FlagCarry != 0
	s.Zero = v&FlagZero != 0
	s.InterruptDisable = v&FlagInterrupt != 0
	s.DecimalMode = v&FlagDecimal != 0
	s.Break = v&FlagBreak != 0
	s.Overflow = v&FlagOverflow != 0
	s.Sign = v&FlagSign != 0
}

// String returns the flags as labelled bit pattern, upper case for set flags.
func (s Status) String() string {
	flags := []struct {
		set   bool
		label byte
	}{
		{s.Sign, 'N'},
		{s.Overflow, 'V'},
		{true, '-'},
		{s.Break, 'B'},
		{s.DecimalMode, 'D'},
		{s.InterruptDisable, 'I'},
		{s.Zero, 'Z'},
		{s.Carry, 'C'},
	}

	buf := make([]byte, len(flags))
	for i, flag := range flags {
		label := flag.label
		if !flag.set {
			label |= 0x20 // lower case
		}
		buf[i] = label
	}
	return string(buf)
}
