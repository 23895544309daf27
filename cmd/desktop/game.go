package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"gochip8/pkg/cpu"
	"gochip8/pkg/display"
	"gochip8/pkg/host"
	"gochip8/pkg/keypad"
	"gochip8/pkg/utils"
)

const (
	screenScale  = 10
	statusHeight = 18
)

type Game struct {
	ctx    context.Context
	vm     *cpu.CPU
	runner *host.Runner
	keys   *keypad.State
	layout keypad.Layout
	screen *display.Ebiten
	logger *log.Logger

	romPath     string
	clipboardOK bool
	screenshots int

	paused  bool
	message string
	err     error
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.vm.Halt()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		g.copyScreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.saveScreenshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && !g.vm.HasExited() {
		g.paused = !g.paused
	}

	keypad.PollEbiten(g.keys, g.layout)
	if g.paused || g.vm.HasExited() {
		return nil
	}

	err := g.runner.Frame()
	switch {
	case errors.Is(err, cpu.ErrHalted):
	case err != nil:
		// keep the window open so the final screen stays visible
		g.err = err
		g.message = err.Error()
		g.logger.Error("Execution stopped", log.Err(err))
	}
	return nil
}

func (g *Game) copyScreen() {
	if !g.clipboardOK {
		g.message = "clipboard not available"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.vm.Display.ASCII('@', '-')))
	g.message = "screen copied to clipboard"
}

func (g *Game) saveScreenshot() {
	g.screenshots++
	name := utils.ReplaceExt(g.romPath, fmt.Sprintf("-%03d.png", g.screenshots))
	if err := g.vm.Display.SaveScreenshot(name); err != nil {
		g.message = "screenshot failed"
		g.logger.Error("Saving screenshot failed", log.Err(err))
		return
	}
	g.message = "saved " + name
	g.logger.Info("Saved screenshot", log.String("file", name))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Draw(screen, statusHeight)

	status := statusLine(g.vm, g.paused)
	if g.message != "" {
		status += "  " + g.message
	}
	text.Draw(screen, status, basicfont.Face7x13, 4, 13, color.RGBA{190, 190, 190, 255})

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 4, statusHeight+4)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return cpu.Width * screenScale, cpu.Height*screenScale + statusHeight
}

// statusLine summarizes the machine state for the status bar.
func statusLine(vm *cpu.CPU, paused bool) string {
	state := "running"
	switch {
	case vm.HasExited():
		state = "halted"
	case paused:
		state = "paused"
	}
	return fmt.Sprintf("PC=%03X I=%03X DT=%02X ST=%02X %s", vm.PC, vm.I, vm.DT, vm.ST, state)
}
