// Command sierra-emu loads a validated IR program from a JSON file, runs one
// entry function to completion, and writes the resulting trace as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/urfave/cli.v1"

	"github.com/feltvm/sierra-emu/internal/sierraemu/felt"
	"github.com/feltvm/sierra-emu/internal/sierraemu/ir"
	"github.com/feltvm/sierra-emu/pkg/sierraemu"
)

func main() {
	app := cli.NewApp()
	app.Name = "sierra-emu"
	app.Usage = "run a typed libfunc IR program and dump its execution trace"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "program", Usage: "path to the JSON-encoded IR program"},
		cli.StringFlag{Name: "entry", Usage: "diagnostic name of the entry function to run"},
		cli.StringFlag{Name: "args", Usage: "comma-separated decimal felt literals for calldata"},
		cli.Uint64Flag{Name: "gas", Usage: "gas made available to the entry function", Value: 0},
		cli.StringFlag{Name: "out", Usage: "trace output path (default: stdout)"},
		cli.BoolFlag{Name: "debug-dump", Usage: "also dump the raw trace structure to stderr via go-spew"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fatal(err.Error())
	}
}

func run(c *cli.Context) error {
	programPath := c.String("program")
	entryName := c.String("entry")
	if programPath == "" || entryName == "" {
		return fmt.Errorf("both --program and --entry are required")
	}

	logStderr(fmt.Sprintf("loading program %s", programPath))
	program, err := loadProgram(programPath)
	if err != nil {
		fatal(fmt.Sprintf("loading program: %v", err))
	}

	calldata, err := parseCalldata(c.String("args"))
	if err != nil {
		fatal(fmt.Sprintf("parsing --args: %v", err))
	}

	emu, err := sierraemu.NewEmulator(program)
	if err != nil {
		fatal(fmt.Sprintf("constructing emulator: %v", err))
	}

	reg, err := ir.NewRegistry(program)
	if err != nil {
		fatal(fmt.Sprintf("building registry: %v", err))
	}

	entry, ok := emu.FunctionByName(entryName)
	if !ok {
		fatal(fmt.Sprintf("no function named %q", entryName))
	}
	fn, err := reg.FunctionOf(entry)
	if err != nil {
		fatal(fmt.Sprintf("resolving entry function: %v", err))
	}

	gas := c.Uint64("gas")
	args, err := sierraemu.BuildEntryArgs(reg, fn, calldata, gas)
	if err != nil {
		fatal(fmt.Sprintf("building entry arguments: %v", err))
	}

	logStderr(fmt.Sprintf("running %s with %d gas", entryName, gas))
	trace, results, err := emu.Run(entry, args, gas)
	if err != nil {
		fatal(fmt.Sprintf("execution failed: %v", err))
	}
	logStderr(fmt.Sprintf("execution completed, %d return value(s)", len(results)))

	if c.Bool("debug-dump") {
		spew.Fdump(os.Stderr, trace)
	}

	traceBytes, err := json.Marshal(trace)
	if err != nil {
		fatal(fmt.Sprintf("serializing trace: %v", err))
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			fatal(fmt.Sprintf("opening --out: %v", err))
		}
		defer f.Close()
		out = f
	}
	out.Write(traceBytes)
	out.Write([]byte("\n"))
	return nil
}

func loadProgram(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var program ir.Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func parseCalldata(raw string) ([]felt.Element, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]felt.Element, len(parts))
	for i, p := range parts {
		v, ok := new(big.Int).SetString(strings.TrimSpace(p), 10)
		if !ok {
			return nil, fmt.Errorf("invalid felt literal %q", p)
		}
		out[i] = felt.FromBigInt(v)
	}
	return out, nil
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "sierra-emu:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
