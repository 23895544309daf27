package asm

import "testing"

// smallProgram is a counter loop.
const smallProgram = `
    ld V0, 10
    ld V1, 0
loop:
    add V1, V0
    ld V2, 1
    sub V0, V2
    se V0, 0
    jp loop
end:
    jp end
`

// mediumProgram draws every hex digit with subroutines and a data table.
const mediumProgram = `
    jp main

; draw the digit in V0 at V1, V2
draw_digit:
    ld F, V0
    drw V1, V2, 5
    ret

; advance the cursor, wrapping to the next row
next_cell:
    add V1, 6
    se V1, 60
    ret
    ld V1, 0
    add V2, 6
    ret

main:
    cls
    ld V0, 0
    ld V1, 0
    ld V2, 0
digits:
    call draw_digit
    call next_cell
    add V0, 1
    se V0, 16
    jp digits

    ld I, table
    ld V3, [I]
    ld B, V0
    ld DT, V3
wait:
    ld V4, DT
    se V4, 0
    jp wait
halt:
    jp halt

table:
    .byte $0A, $0B, $0C, $0D
`

// largeProgram exercises sprites, keys, timers and memory transfers.
const largeProgram = `
    jp main

; bounce a sprite across the screen
bounce:
    ld I, ball
    drw V0, V1, 4
    add V0, V5
    add V1, V6
    se V0, 60
    jp b_y
    ld V5, $FF
b_y:
    se V1, 28
    jp b_draw
    ld V6, $FF
b_draw:
    drw V0, V1, 4
    ret

; copy V0..V7 to scratch and back
spill:
    ld I, scratch
    ld [I], V7
    ld I, scratch
    ld V7, [I]
    ret

; digits of V8 into scratch
bcd:
    ld I, scratch
    ld B, V8
    ld V2, [I]
    ret

; read the keypad, beep on 5
keys:
    ld V9, 5
    sknp V9
    jp k_beep
    ret
k_beep:
    ld VA, 4
    ld ST, VA
    ret

; arithmetic mix
mix:
    ld VB, $F0
    ld VC, $0F
    or VB, VC
    and VB, VC
    xor VB, VC
    add VB, VC
    sub VB, VC
    subn VB, VC
    shr VB
    shl VB
    rnd VD, $3F
    ret

main:
    cls
    ld V0, 2
    ld V1, 3
    ld V5, 1
    ld V6, 1
    ld V8, 0
    ld I, ball
    drw V0, V1, 4
frame:
    call bounce
    call spill
    call bcd
    call keys
    call mix
    add V8, 1
    ld VE, 2
    ld DT, VE
tick:
    ld VE, DT
    se VE, 0
    jp tick
    sne V8, 200
    jp done
    jp frame
done:
    jp done

ball:
    .byte $60, $F0, $F0, $60
scratch:
    .byte 0, 0, 0, 0, 0, 0, 0, 0
`

func BenchmarkAssemble_Small(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(smallProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Medium(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(mediumProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Large(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Assemble(largeProgram)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDisassemble_Large(b *testing.B) {
	program, _, err := Assemble(largeProgram)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DisassembleProgram(program)
	}
}
