// This file is part of Microvaders.
//
// Microvaders is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Microvaders is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Microvaders.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/microvaders/govern"
	"github.com/jetsetilly/microvaders/gui"
	"github.com/jetsetilly/microvaders/gui/sdlmatrix"
	"github.com/jetsetilly/microvaders/gui/terminal"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/periphio"
	"github.com/jetsetilly/microvaders/hardware/preferences"
	"github.com/jetsetilly/microvaders/logger"
	"github.com/jetsetilly/microvaders/modalflag"
	"github.com/jetsetilly/microvaders/performance"
	"github.com/jetsetilly/microvaders/playmode"
	"github.com/jetsetilly/microvaders/prefs"
	"github.com/jetsetilly/microvaders/recorder"
	"github.com/jetsetilly/microvaders/screenshot"
	"github.com/jetsetilly/microvaders/script"
	"github.com/jetsetilly/microvaders/statsview"
	"github.com/jetsetilly/microvaders/version"
)

// the frontend window belongs to the main goroutine. SDL windows must be
// created and have their events polled on the thread that called main(), so
// the launch goroutine asks the main goroutine to do it.
type mainThread struct {
	quit     chan int
	noIntSig chan struct{}
	create   chan func() (frontend, error)
	created  chan created
}

// frontend is the part of a gui.GUI that runs on the main goroutine.
type frontend interface {
	Destroy(io.Writer)

	// Service must return promptly
	Service()
}

type created struct {
	fe  frontend
	err error
}

func newMainThread() *mainThread {
	return &mainThread{
		quit:     make(chan int),
		noIntSig: make(chan struct{}),
		create:   make(chan func() (frontend, error)),
		created:  make(chan created),
	}
}

// exit the program with the status code. called from the launch goroutine.
func (mt *mainThread) exit(code int) {
	mt.quit <- code
}

// stop the main goroutine ending the program on ctrl-c. the caller handles
// the interrupt signal itself.
func (mt *mainThread) handleInterrupt() {
	mt.noIntSig <- struct{}{}
}

// newFrontend runs fn on the main goroutine and returns its result.
func (mt *mainThread) newFrontend(fn func() (frontend, error)) (frontend, error) {
	mt.create <- fn
	c := <-mt.created
	return c.fe, c.err
}

// serve frontend requests until exit() is called or until ctrl-c. returns
// the status code for os.Exit().
func (mt *mainThread) serve() int {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	var fe frontend
	destroy := func() {
		if fe != nil {
			fe.Destroy(os.Stderr)
			fe = nil
		}
	}

	for {
		select {
		case <-intChan:
			fmt.Println("\r")
			destroy()
			return 0

		case code := <-mt.quit:
			destroy()
			return code

		case <-mt.noIntSig:
			signal.Reset(os.Interrupt)

		case fn := <-mt.create:
			destroy()
			var err error
			fe, err = fn()
			if err != nil {
				fe = nil
			}
			mt.created <- created{fe: fe, err: err}

		default:
			if fe != nil {
				fe.Service()
			}
			time.Sleep(time.Millisecond)
		}
	}
}

func main() {
	mt := newMainThread()
	go launch(mt)
	code := mt.serve()
	fmt.Print("\r")
	os.Exit(code)
}

// launch parses the command line and runs the selected mode.
func launch(mt *mainThread) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("PLAY", "TERM", "RUN", "PERF", "PI", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		mt.exit(0)
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		mt.exit(10)
		return
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md, mt, false)

	case "TERM":
		err = play(md, mt, true)

	case "RUN":
		err = run(md)

	case "PERF":
		err = perform(md)

	case "PI":
		err = pi(md, mt)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		mt.exit(20)
		return
	}

	mt.exit(0)
}

// flags common to every mode that creates a board.
type common struct {
	log       *bool
	prefs     *string
	statsview *bool
}

func addCommon(md *modalflag.Modes) common {
	c := common{
		log:   md.AddBool("log", false, "echo debugging log to stdout"),
		prefs: md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
	}
	if statsview.Available() {
		c.statsview = md.AddBool("statsview", false, "run stats server on localhost:12600")
	}
	return c
}

// apply the common flags and create the board. the returned function must be
// called when the board is no longer needed.
func (c common) board(md *modalflag.Modes) (*hardware.Board, func(), error) {
	if *c.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	logger.Log(logger.Allow, "microvaders", version.String())

	stopStats := func() {}
	if c.statsview != nil && *c.statsview {
		stopStats = statsview.Launch(md.Output)
	}

	prefs.PushCommandLineStack(*c.prefs)
	done := func() {
		stopStats()
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "microvaders", "unused preferences: %s", unused)
		}
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		done()
		return nil, nil, err
	}

	board, err := hardware.NewBoard(p)
	if err != nil {
		done()
		return nil, nil, err
	}

	return board, done, nil
}

func play(md *modalflag.Modes, mt *mainThread, term bool) error {
	md.NewMode()

	c := addCommon(md)
	record := md.AddString("record", "", "record user input to a file")
	playback := md.AddString("playback", "", "play back a recording")
	pace := md.AddBool("pace", true, "limit the board to real time")
	var cell *int
	if !term {
		cell = md.AddInt("cell", sdlmatrix.DefaultCell, "size of each LED in pixels")
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	// log output would disturb the terminal display
	if term && *c.log {
		return fmt.Errorf("the -log flag can't be used in %s mode", md)
	}

	board, done, err := c.board(md)
	if err != nil {
		return err
	}
	defer done()

	fe, err := mt.newFrontend(func() (frontend, error) {
		if term {
			return terminal.NewTerminal(os.Stdout)
		}
		return sdlmatrix.NewSdlMatrix(*cell)
	})
	if err != nil {
		return err
	}
	scr := fe.(gui.GUI)

	// playmode ends recordings on ctrl-c
	mt.handleInterrupt()

	return playmode.Play(board, scr, playmode.Options{
		Record:   *record,
		Playback: *playback,
		Pacing:   *pace,
	})
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	frames := md.AddInt("frames", 600, "number of frames to run if there is no script")
	playback := md.AddString("playback", "", "play back a recording before the script")
	mv := md.AddString("memviz", "", "write a graph of the final game state to a DOT file")
	shot := md.AddString("screenshot", "", "save the final frame as a PNG file")

	md.AdditionalHelp(
		`The optional argument is a script of commands to run. Without a script the board
runs for the number of frames given by the -frames flag.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var scr *script.Script
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		f, err := os.Open(md.GetArg(0))
		if err != nil {
			return err
		}
		scr, err = script.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	board, done, err := c.board(md)
	if err != nil {
		return err
	}
	defer done()

	if *playback != "" {
		plb, err := recorder.NewPlayback(*playback)
		if err != nil {
			return err
		}
		if err := plb.AttachToBoard(board); err != nil {
			return err
		}
		if err := board.RunFor(plb.EndTime()); err != nil {
			return err
		}
	}

	runner := script.NewRunner(board)

	if scr != nil {
		err = runner.Run(scr)
	} else {
		err = board.RunForFrameCount(*frames)
	}
	if err != nil {
		return err
	}

	s := board.Firmware.Snapshot()
	fmt.Fprintf(md.Output, "%s\n%s\n", board, s.String())
	fmt.Fprintf(md.Output, "digest: %s\n", runner.Digest().Hash())

	if *shot != "" {
		if err := screenshot.Save(runner.LastFrame(), *shot); err != nil {
			return err
		}
	}

	if *mv != "" {
		f, err := os.Create(*mv)
		if err != nil {
			return err
		}
		memviz.Map(f, &s)
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	duration := md.AddDuration("duration", 5*time.Second, "run duration (after leadtime)")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, ALL")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	board, done, err := c.board(md)
	if err != nil {
		return err
	}
	defer done()

	_, err = performance.Check(md.Output, board, prf, *duration, performance.Leadtime)
	return err
}

func pi(md *modalflag.Modes, mt *mainThread) error {
	md.NewMode()

	c := addCommon(md)
	rowPeriod := md.AddDuration("rowperiod", periphio.DefaultRowPeriod, "time each row of the physical matrix is lit")
	rows := md.AddString("rows", strings.Join(periphio.DefaultPinNames.Rows[:], ","), "row pins")
	cols := md.AddString("columns", strings.Join(periphio.DefaultPinNames.Columns[:], ","), "column pins")
	btns := md.AddString("buttons", strings.Join(periphio.DefaultPinNames.Buttons[:], ","), "button pins")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	names := periphio.DefaultPinNames
	if err := splitPins(names.Rows[:], *rows); err != nil {
		return err
	}
	if err := splitPins(names.Columns[:], *cols); err != nil {
		return err
	}
	if err := splitPins(names.Buttons[:], *btns); err != nil {
		return err
	}

	board, done, err := c.board(md)
	if err != nil {
		return err
	}
	defer done()

	pins, err := periphio.Open(names, board.Prefs.ActiveLow.Get().(bool))
	if err != nil {
		return err
	}

	br := periphio.NewBridge(pins, board, *rowPeriod)
	board.AddFrameListener(br)
	board.SetPacing(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridgeErr := make(chan error, 1)
	go func() {
		bridgeErr <- br.Run(ctx)
	}()

	// this mode handles ctrl-c itself so that the matrix is blanked
	mt.handleInterrupt()
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	bridgeEnded := false
	err = board.Run(func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil
		case err := <-bridgeErr:
			bridgeEnded = true
			return govern.Ending, err
		default:
		}
		return govern.Running, nil
	})

	cancel()
	if err != nil || bridgeEnded {
		return err
	}
	return <-bridgeErr
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintln(md.Output, v)
	if *revision {
		fmt.Fprintln(md.Output, r)
	}

	return nil
}

// splitPins fills names from a comma separated list of pin names.
func splitPins(names []string, list string) error {
	s := strings.Split(list, ",")
	if len(s) != len(names) {
		return fmt.Errorf("%d pins required (%s)", len(names), list)
	}
	for i := range s {
		names[i] = strings.TrimSpace(s[i])
	}
	return nil
}
