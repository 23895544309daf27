package cpu

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

const StackSize = 32

type CPU struct {
	V  [16]uint8
	I  uint16
	PC uint16

	DT uint8
	ST uint8

	Stack [StackSize]uint16
	SP    uint8 // number of entries in use

	Memory  [MemorySize]byte
	Display Framebuffer

	config   Config
	renderer Renderer
	audio    AudioDevice
	logger   *log.Logger
	random   func() uint8
	trace    func(pc uint16, in Instruction)

	buzzing bool
	exited  bool
}

// NewCPU creates a CPU with PC at ProgramStart and the default font loaded
// at the configured font address.
func NewCPU(opts ...Option) (*CPU, error) {
	c := &CPU{
		PC:     ProgramStart,
		config: DefaultConfig(),
		random: func() uint8 { return uint8(rand.IntN(256)) },
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.LoadDefaultFont()
	return c, nil
}

// Config returns the compatibility configuration.
func (c *CPU) Config() Config {
	return c.config
}

// HasExited reports whether the CPU was halted by the host or by a fault.
func (c *CPU) HasExited() bool {
	return c.exited
}

// Halt stops the CPU. Further Step and Execute calls return ErrHalted.
func (c *CPU) Halt() {
	if !c.exited && c.logger != nil {
		c.logger.Debug("cpu halted", log.Hex("pc", c.PC))
	}
	c.exited = true
	c.setBuzzer(false)
}

// Step fetches and executes one instruction.
func (c *CPU) Step(keys KeyInput) error {
	if c.exited {
		return ErrHalted
	}
	pc := c.PC
	in, err := c.Fetch()
	if err != nil {
		return err
	}
	if c.trace != nil {
		c.trace(pc, in)
	}
	return c.Execute(in, keys)
}

// Run executes up to cycles instructions and stops at the first error.
func (c *CPU) Run(cycles int, keys KeyInput) error {
	for range cycles {
		if err := c.Step(keys); err != nil {
			return err
		}
	}
	return nil
}

// Fetch reads the big-endian word at PC and advances PC by 2.
func (c *CPU) Fetch() (Instruction, error) {
	if int(c.PC)+1 >= MemorySize {
		err := &MemoryError{Op: "fetch", Address: c.PC, Target: int(c.PC) + 1}
		c.fault(err)
		return Instruction{}, err
	}
	w := uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1])
	c.PC += 2
	return Decode(w), nil
}

// Execute applies one instruction. keys may be nil when no input is
// available. Any error is terminal: the CPU is marked as exited.
//
// Execute expects in to be the instruction Fetch just returned: PC already
// points past it, and error addresses are reported as PC-2.
func (c *CPU) Execute(in Instruction, keys KeyInput) error {
	if c.exited {
		return ErrHalted
	}
	if err := c.execute(in, keys); err != nil {
		c.fault(err)
		return err
	}
	return nil
}

func (c *CPU) execute(in Instruction, keys KeyInput) error {
	x, y := in.X, in.Y

	switch in.I {
	case 0x0:
		switch in.NNN {
		case 0x0E0:
			c.Display.Clear()
			c.render()
		case 0x0EE:
			addr, err := c.pop()
			if err != nil {
				return err
			}
			c.PC = addr
		default:
			return c.decodeError(in)
		}

	case 0x1:
		c.PC = in.NNN

	case 0x2:
		if err := c.push(c.PC); err != nil {
			return err
		}
		c.PC = in.NNN

	case 0x3:
		if c.V[x] == in.NN {
			c.skip()
		}

	case 0x4:
		if c.V[x] != in.NN {
			c.skip()
		}

	case 0x5:
		if in.N != 0 {
			return c.decodeError(in)
		}
		if c.V[x] == c.V[y] {
			c.skip()
		}

	case 0x6:
		c.V[x] = in.NN

	case 0x7:
		c.V[x] += in.NN

	case 0x8:
		return c.executeALU(in)

	case 0x9:
		if in.N != 0 {
			return c.decodeError(in)
		}
		if c.V[x] != c.V[y] {
			c.skip()
		}

	case 0xA:
		c.I = in.NNN

	case 0xB:
		base := c.V[x]
		if c.config.JumpOffsetLegacy {
			base = c.V[0]
		}
		c.PC = uint16(base) + in.NNN

	case 0xC:
		c.V[x] = in.NN & c.random()

	case 0xD:
		return c.draw(in)

	case 0xE:
		switch in.NN {
		case 0x9E:
			if isPressed(keys, c.V[x]) {
				c.skip()
			}
		case 0xA1:
			if !isPressed(keys, c.V[x]) {
				c.skip()
			}
		default:
			return c.decodeError(in)
		}

	case 0xF:
		return c.executeMisc(in, keys)
	}

	return nil
}

// executeALU handles the 8XYN register arithmetic family. Operands are read
// before any write and VF is written last, so VF as a destination always
// ends up holding the flag.
func (c *CPU) executeALU(in Instruction) error {
	vx, vy := c.V[in.X], c.V[in.Y]

	switch in.N {
	case 0x0:
		c.V[in.X] = vy
	case 0x1:
		c.V[in.X] = vx | vy
	case 0x2:
		c.V[in.X] = vx & vy
	case 0x3:
		c.V[in.X] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		c.V[in.X] = uint8(sum)
		c.V[0xF] = flag(sum > 0xFF)
	case 0x5:
		c.V[in.X] = vx - vy
		c.V[0xF] = flag(vy <= vx)
	case 0x6:
		src := c.shiftSource(vx, vy)
		c.V[in.X] = src >> 1
		c.V[0xF] = src & 0x01
	case 0x7:
		c.V[in.X] = vy - vx
		c.V[0xF] = flag(vx <= vy)
	case 0xE:
		src := c.shiftSource(vx, vy)
		c.V[in.X] = src << 1
		c.V[0xF] = src >> 7
	default:
		return c.decodeError(in)
	}
	return nil
}

func (c *CPU) shiftSource(vx, vy uint8) uint8 {
	if c.config.ShiftInPlace {
		return vx
	}
	return vy
}

// executeMisc handles the FXNN family.
func (c *CPU) executeMisc(in Instruction, keys KeyInput) error {
	x := in.X

	switch in.NN {
	case 0x07:
		c.V[x] = c.DT

	case 0x0A:
		if key, ok := pressedKey(keys); ok {
			c.V[x] = key
		} else {
			c.PC -= 2
		}

	case 0x15:
		c.DT = c.V[x]

	case 0x18:
		c.ST = c.V[x]
		c.refreshAudio()

	case 0x1E:
		// I may leave memory here; the next dereference is bounds-checked.
		sum := c.I + uint16(c.V[x])
		c.I = sum
		if c.config.IndexAddCarry {
			c.V[0xF] = flag(sum > 0x0FFF)
		}

	case 0x29:
		c.I = c.config.FontStart + uint16(c.V[x])*GlyphSize

	case 0x33:
		if err := c.checkRange("bcd", 3); err != nil {
			return err
		}
		v := c.V[x]
		c.Memory[c.I] = v / 100
		c.Memory[c.I+1] = v / 10 % 10
		c.Memory[c.I+2] = v % 10

	case 0x55:
		n := int(x) + 1
		if err := c.checkRange("store registers", n); err != nil {
			return err
		}
		copy(c.Memory[c.I:int(c.I)+n], c.V[:n])
		if c.config.RegisterSaveLegacy {
			c.I += uint16(n)
		}

	case 0x65:
		n := int(x) + 1
		if err := c.checkRange("load registers", n); err != nil {
			return err
		}
		copy(c.V[:n], c.Memory[c.I:int(c.I)+n])
		if c.config.RegisterSaveLegacy {
			c.I += uint16(n)
		}

	default:
		return c.decodeError(in)
	}
	return nil
}

// draw renders an N row sprite from memory at I. Rows that would land at or
// beyond the bottom edge are clipped.
func (c *CPU) draw(in Instruction) error {
	x := c.V[in.X] % Width
	y := c.V[in.Y] % Height

	rows := min(int(in.N), Height-int(y))
	if err := c.checkRange("draw", rows); err != nil {
		return err
	}

	collision := false
	for row := range rows {
		b := c.Memory[int(c.I)+row]
		if c.Display.DrawSprite(x, y+uint8(row), b) {
			collision = true
		}
	}
	if !c.config.NoCollisionFlag {
		c.V[0xF] = flag(collision)
	}
	c.render()
	return nil
}

// TickTimers decrements the delay and sound timers toward zero and updates
// the audio device.
func (c *CPU) TickTimers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
	c.refreshAudio()
}

func (c *CPU) refreshAudio() {
	c.setBuzzer(c.ST > 0)
}

func (c *CPU) setBuzzer(on bool) {
	if on == c.buzzing {
		return
	}
	c.buzzing = on
	if c.audio == nil {
		return
	}
	if on {
		c.audio.Start()
	} else {
		c.audio.Stop()
	}
}

// Buzzing reports whether the audio device is currently started.
func (c *CPU) Buzzing() bool {
	return c.buzzing
}

func (c *CPU) push(addr uint16) error {
	if int(c.SP) >= StackSize {
		return &StackError{Op: StackOverflow, Address: c.PC - 2}
	}
	c.Stack[c.SP] = addr
	c.SP++
	return nil
}

func (c *CPU) pop() (uint16, error) {
	if c.SP == 0 {
		return 0, &StackError{Op: StackUnderflow, Address: c.PC - 2}
	}
	c.SP--
	return c.Stack[c.SP], nil
}

func (c *CPU) skip() {
	c.PC += 2
}

func (c *CPU) render() {
	if c.renderer != nil {
		c.renderer.Render(&c.Display)
	}
}

func (c *CPU) decodeError(in Instruction) error {
	return &DecodeError{Address: c.PC - 2, Word: in.Word}
}

func (c *CPU) fault(err error) {
	c.exited = true
	c.setBuzzer(false)
	if c.logger != nil {
		c.logger.Debug("Execution fault", log.Hex("pc", c.PC), log.Err(err))
	}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
