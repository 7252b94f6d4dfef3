package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adriweb/gosnes"
	"github.com/adriweb/gosnes/backend"
	"github.com/adriweb/gosnes/backend/oto"
	"github.com/adriweb/gosnes/cart"
	"github.com/adriweb/gosnes/cart/db"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

// Frame timing: the core has no PPU to pace against, so a headless run
// just free-runs RunFrame as fast as the host can, while an attached
// terminal paces itself to the same ~60Hz the cart expects.
const frameTime = time.Second / 60

func main() {
	app := cli.NewApp()
	app.Name = "gosnes"
	app.Description = "An SNES core: CPU, DMA/HDMA and APU, no video"
	app.Usage = "gosnes [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "Path to the ROM file"},
		cli.BoolFlag{Name: "headless", Usage: "Run without a terminal UI, logging a status line every 60 frames"},
		cli.IntFlag{Name: "frames", Value: 0, Usage: "Stop after N frames in headless mode (0 = run until killed)"},
		cli.IntFlag{Name: "sample-rate", Value: 32000, Usage: "Host audio sample rate in Hz"},
		cli.StringFlag{Name: "db-carts", Usage: "Path to a carts.bml database file"},
		cli.StringFlag{Name: "db-boards", Usage: "Path to a boards.bml database file"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gosnes exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	info, err := resolveInfo(rom, c.String("db-carts"), c.String("db-boards"))
	if err != nil {
		return err
	}

	emu := gosnes.New(cart.New(rom, info), nil, 512)

	audio, err := oto.New(c.Int("sample-rate"))
	if err != nil {
		slog.Warn("audio backend unavailable, running silent", "error", err)
	} else {
		defer audio.Close()
		emu = gosnes.New(cart.New(rom, info), backend.Backend(audio), 512)
	}

	headless := c.Bool("headless") || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		return runHeadless(emu, c.Int("frames"))
	}
	return runTerminal(emu)
}

// resolveInfo follows a database-first resolution order: a sha256 hit
// in carts.bml names a board, the board is
// looked up in boards.bml for its region/size map; either database
// being absent, unreadable, or missing the entry falls through to the
// header guesser, never an error.
func resolveInfo(rom []byte, cartsPath, boardsPath string) (cart.Info, error) {
	if cartsPath == "" || boardsPath == "" {
		return cart.GuessInfo(rom), nil
	}

	cartsData, err := os.ReadFile(cartsPath)
	if err != nil {
		slog.Warn("carts database unreadable, falling back to header guess", "error", err)
		return cart.GuessInfo(rom), nil
	}
	boardsData, err := os.ReadFile(boardsPath)
	if err != nil {
		slog.Warn("boards database unreadable, falling back to header guess", "error", err)
		return cart.GuessInfo(rom), nil
	}

	carts, err := db.LoadCarts(string(cartsData))
	if err != nil {
		return cart.Info{}, fmt.Errorf("parsing carts database: %w", err)
	}
	boards, err := db.LoadBoards(string(boardsData))
	if err != nil {
		return cart.Info{}, fmt.Errorf("parsing boards database: %w", err)
	}

	sum := sha256.Sum256(rom)
	digest := hex.EncodeToString(sum[:])

	entry, ok := carts[digest]
	if !ok {
		slog.Info("ROM not found in carts database, falling back to header guess", "sha256", digest)
		return cart.GuessInfo(rom), nil
	}

	romMap, ramMap, ramSize, ok := db.ResolveBoard(boards, entry.Board)
	if !ok {
		slog.Warn("cart's board not found in boards database, falling back to header guess", "board", entry.Board)
		return cart.GuessInfo(rom), nil
	}

	return cart.Info{
		Title:      entry.Name,
		RAMSize:    ramSize,
		HasBattery: true,
		RomMap:     romMap,
		RamMap:     ramMap,
	}, nil
}

// runHeadless drives RunFrame with no UI at all, logging a status line
// every 60 frames, for scripted use (benchmarking, integration tests).
func runHeadless(emu *gosnes.Emu, maxFrames int) error {
	for maxFrames == 0 || int(emu.FrameCount()) < maxFrames {
		emu.RunFrame()
		if emu.FrameCount()%60 == 0 {
			slog.Info("running", "frame", emu.FrameCount())
		}
	}
	return nil
}

// diagnosticUI is the terminal frontend: since this core has no PPU,
// there is no framebuffer to paint. Instead it redraws a small status
// panel (frame count and register file) once per frame,
// since the only observable output here is CPU/APU state and audio.
type diagnosticUI struct {
	screen tcell.Screen
	emu    *gosnes.Emu
}

func runTerminal(emu *gosnes.Emu) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ui := &diagnosticUI{screen: screen, emu: emu}
	return ui.run()
}

func (ui *diagnosticUI) run() error {
	ui.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	events := make(chan tcell.Event, 8)
	go ui.screen.ChannelEvents(events, nil)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ui.emu.RunFrame()
			ui.render()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
			case *tcell.EventResize:
				ui.screen.Sync()
			}
		}
	}
}

func (ui *diagnosticUI) render() {
	ui.screen.Clear()
	reg := ui.emu.CPU.Registers()
	line := fmt.Sprintf("frame %-8d  PC=%02X:%04X  A=%04X X=%04X Y=%04X SP=%04X P=%02X",
		ui.emu.FrameCount(), reg.PBR, reg.PC, reg.A, reg.X, reg.Y, reg.SP, reg.P)
	drawString(ui.screen, 0, 0, line)
	drawString(ui.screen, 0, 1, "Esc to quit")
	ui.screen.Show()
}

func drawString(screen tcell.Screen, x, y int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range s {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
