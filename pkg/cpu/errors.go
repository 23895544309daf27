package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrHalted is returned by Step and Execute once the CPU has exited.
var ErrHalted = errors.New("cpu halted")

// DecodeError reports an instruction word that matches no opcode.
type DecodeError struct {
	Address uint16 // address the word was fetched from
	Word    uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at 0x%03X", e.Word, e.Address)
}

// ProgramTooLargeError is returned by LoadProgram when the program does not
// fit between ProgramStart and the end of memory.
type ProgramTooLargeError struct {
	Size int
	Max  int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program too large for memory: %d bytes > %d bytes", e.Size, e.Max)
}

// StackOp names the stack operation that failed.
type StackOp string

const (
	StackOverflow  StackOp = "overflow"
	StackUnderflow StackOp = "underflow"
)

// StackError reports a call with a full stack or a return with an empty one.
type StackError struct {
	Op      StackOp
	Address uint16 // address of the faulting instruction
}

func (e *StackError) Error() string {
	return fmt.Sprintf("stack %s at 0x%03X", e.Op, e.Address)
}

// MemoryError reports an access outside the 4096 byte address space.
type MemoryError struct {
	Op      string // instruction or operation that performed the access
	Address uint16 // address of the faulting instruction
	Target  int    // first address that was out of range
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("%s at 0x%03X: memory access 0x%X out of bounds", e.Op, e.Address, e.Target)
}
