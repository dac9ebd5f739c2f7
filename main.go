// entry point

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/skx/chip8ulator/chip8"
	"github.com/skx/chip8ulator/keypad"
	"github.com/skx/chip8ulator/runner"
	"github.com/skx/chip8ulator/static"
	"github.com/skx/chip8ulator/version"
)

// loadROM loads the named ROM into the machine, either from the
// embedded collection or from the host filesystem.
func loadROM(c *chip8.Chip8, name string) error {
	if strings.HasPrefix(name, static.Prefix) {
		data, err := static.ReadROM(name)
		if err != nil {
			return err
		}
		return c.LoadROM(data)
	}
	return c.LoadFile(name)
}

// summary returns a short description of the state of the machine.
func summary(c *chip8.Chip8) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PC:%04X I:%04X SP:%X DT:%02X ST:%02X cycles:%d\n",
		c.PC(), c.Index(), c.SP(), c.DelayTimer(), c.SoundTimer(), c.Cycles())
	for i, v := range c.Registers() {
		fmt.Fprintf(&sb, "V%X:%02X", i, v)
		if i%8 == 7 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func main() {

	hz := flag.Int("hz", runner.DefaultHz, "The number of instructions to execute each second, 0 for unlimited.")
	cycles := flag.Uint64("cycles", 0, "Stop after executing this many instructions, 0 for no limit.")
	input := flag.String("input", keypad.DefaultDriver, "The name of the keypad driver to use.")
	seed := flag.Uint64("seed", 0, "Seed the random number generator, for reproducible runs.")
	trace := flag.Bool("trace", false, "Log every instruction as it is executed.")
	dump := flag.Bool("dump", false, "Show the display, and registers, when execution ends.")
	listInputs := flag.Bool("list-inputs", false, "Show the available keypad drivers, and exit.")
	listROMs := flag.Bool("list-roms", false, "Show the embedded ROMs, and exit.")
	showVersion := flag.Bool("version", false, "Show our version number, and exit.")

	flag.Usage = func() {
		fmt.Printf("Usage: chip8ulator [flags] path/to/rom.ch8|%sNAME\n", static.Prefix)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetVersionBanner())
		return
	}

	if *listInputs {
		k, err := keypad.New(keypad.DefaultDriver)
		if err != nil {
			fmt.Printf("Error creating keypad: %s\n", err)
			os.Exit(1)
		}
		for _, name := range k.GetDrivers() {
			fmt.Println(name)
		}
		return
	}

	if *listROMs {
		names, err := static.List()
		if err != nil {
			fmt.Printf("Error listing ROMs: %s\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Printf("%s%s\n", static.Prefix, name)
		}
		return
	}

	// Ensure we've been given the name of a ROM
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	rom := flag.Arg(0)

	// Setup our logging level - default to warnings or higher
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	// But show "everything" if $DEBUG is non-empty, or we're tracing.
	if os.Getenv("DEBUG") != "" || *trace {
		lvl.Set(slog.LevelDebug)
	}

	//
	// Create our logging handler, using the level we've just setup
	//
	log := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: lvl,
		}))

	//
	// Create a new emulator.
	//
	options := []chip8.Option{
		chip8.WithLogger(log),
		chip8.WithTrace(*trace),
	}
	if *seed != 0 {
		options = append(options, chip8.WithSeed(*seed))
	}

	c, err := chip8.New(options...)
	if err != nil {
		fmt.Printf("Error creating emulator: %s\n", err)
		os.Exit(1)
	}

	err = loadROM(c, rom)
	if err != nil {
		fmt.Printf("Error loading %s: %s\n", rom, err)
		os.Exit(1)
	}

	//
	// Setup our keypad.
	//
	k, err := keypad.New(*input)
	if err != nil {
		fmt.Printf("Error creating keypad: %s\n", err)
		os.Exit(1)
	}
	err = k.Setup()
	if err != nil {
		fmt.Printf("Error setting up keypad driver %s: %s\n", k.GetName(), err)
		os.Exit(1)
	}

	log.Info("chip8ulator is starting",
		slog.String("version", version.GetVersionString()),
		slog.String("rom", rom),
		slog.String("input", k.GetName()),
		slog.Int("hz", *hz))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	r := &runner.Runner{
		Machine:   c,
		Input:     k,
		Hz:        *hz,
		MaxCycles: *cycles,
		Logger:    log,
	}

	//
	// Run the ROM we've been given.
	//
	err = r.Run(ctx)
	stop()

	// Restore the terminal before we show anything.
	if tErr := k.TearDown(); tErr != nil {
		fmt.Printf("Error tearing down keypad: %s\n", tErr)
	}

	if *dump {
		fmt.Print(c.Display.String())
		fmt.Print(summary(c))
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error running %s: %s\n", rom, err)
		os.Exit(1)
	}
}
