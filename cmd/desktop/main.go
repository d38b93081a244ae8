package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"goscript/pkg/grid"
	"goscript/pkg/script"
	"goscript/pkg/utils"
	"goscript/pkg/vm"
)

const (
	screenW    = 512
	screenH    = 384
	cols       = 80
	rowHeight  = 16
	visibleRow = screenH/rowHeight - 1 // last row is the input line
	scrollback = 400
)

// console is the screen-backed I/O bridge. PRINT appends wrapped rows,
// INPUT blocks the machine goroutine on the typed-line channel.
type console struct {
	mu      sync.Mutex
	rows    []string
	pending []rune
	input   chan string
}

func newConsole() *console {
	return &console{input: make(chan string, 64)}
}

func (c *console) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendRows(text)
	return nil
}

func (c *console) ReadLine() (string, error) {
	line, ok := <-c.input
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

// appendRows wraps and appends one logical line, trimming scrollback.
// Callers hold c.mu.
func (c *console) appendRows(text string) {
	c.rows = append(c.rows, grid.WrapLine(text, cols)...)
	if len(c.rows) > scrollback {
		c.rows = c.rows[len(c.rows)-scrollback:]
	}
}

type Game struct {
	scr *console
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.scr.mu.Lock()
	defer g.scr.mu.Unlock()

	for _, r := range ebiten.AppendInputChars(nil) {
		g.scr.pending = append(g.scr.pending, r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.scr.pending) > 0 {
		g.scr.pending = g.scr.pending[:len(g.scr.pending)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		line := string(g.scr.pending)
		select {
		case g.scr.input <- line:
			g.scr.appendRows("> " + line)
			g.scr.pending = g.scr.pending[:0]
		default:
			// Machine is far behind; keep the line in the edit buffer.
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scr.mu.Lock()
	defer g.scr.mu.Unlock()

	rows := g.scr.rows
	if len(rows) > visibleRow {
		rows = rows[len(rows)-visibleRow:]
	}
	for i, row := range rows {
		ebitenutil.DebugPrintAt(screen, row, 4, i*rowHeight)
	}
	ebitenutil.DebugPrintAt(screen, "> "+string(g.scr.pending)+"_", 4, visibleRow*rowHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	maxSteps := flag.Int("max-steps", 0, "fault after this many instructions (0 = unlimited)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: desktop [flags] script-file")
		os.Exit(2)
	}

	fullPath, source, err := utils.ReadScript(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read script: %v\n", err)
		os.Exit(1)
	}
	prog, err := script.Compile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", fullPath, err)
		os.Exit(1)
	}

	scr := newConsole()
	machine := vm.New(prog, vm.WithBridge(scr), vm.WithMaxSteps(*maxSteps))

	// The render loop never blocks: the machine runs on its own
	// goroutine and parks inside ReadLine until a line is typed.
	go func() {
		err := machine.Run()
		scr.mu.Lock()
		defer scr.mu.Unlock()
		if err != nil {
			scr.appendRows(err.Error())
		} else {
			scr.appendRows("[program halted]")
		}
	}()

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("GoScript Desktop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&Game{scr: scr}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
