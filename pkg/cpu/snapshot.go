package cpu

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// snapshotWindow is the number of memory bytes from PC included in a Snapshot.
const snapshotWindow = 10

// Snapshot is a read-only view of the CPU control state for debugging.
type Snapshot struct {
	I      uint16     `json:"index"`
	PC     uint16     `json:"pc"`
	DT     uint8      `json:"delay_timer"`
	ST     uint8      `json:"sound_timer"`
	SP     uint8      `json:"sp"`
	V      [16]uint8  `json:"registers"`
	Stack  []uint16   `json:"stack"`
	Window []byte     `json:"memory"` // memory from PC onward
	Exited bool       `json:"exited"`
	Config Config     `json:"config"`
	Lit    int        `json:"lit_pixels"`
	Rows   [32]uint64 `json:"-"`
}

// Snapshot captures the current state.
func (c *CPU) Snapshot() Snapshot {
	end := min(int(c.PC)+snapshotWindow, MemorySize)
	var window []byte
	if int(c.PC) < end {
		window = append(window, c.Memory[c.PC:end]...)
	}

	return Snapshot{
		I:      c.I,
		PC:     c.PC,
		DT:     c.DT,
		ST:     c.ST,
		SP:     c.SP,
		V:      c.V,
		Stack:  append([]uint16(nil), c.Stack[:c.SP]...),
		Window: window,
		Exited: c.exited,
		Config: c.config,
		Lit:    c.Display.Lit(),
		Rows:   c.Display.Rows,
	}
}

// JSON encodes the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal snapshot")
	}
	return data, nil
}

func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I=0x%03X PC=0x%03X DT=%d ST=%d SP=%d\n", s.I, s.PC, s.DT, s.ST, s.SP)
	for i, v := range s.V {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=%02X", i, v)
	}
	sb.WriteByte('\n')
	sb.WriteString("stack:")
	for _, addr := range s.Stack {
		fmt.Fprintf(&sb, " %03X", addr)
	}
	sb.WriteByte('\n')
	sb.WriteString("memory:")
	for _, b := range s.Window {
		fmt.Fprintf(&sb, " %02X", b)
	}
	return sb.String()
}
