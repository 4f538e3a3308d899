package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/goccy/go-json"
	"github.com/indexsupply/ethabi/abi"
	"github.com/indexsupply/ethabi/eth"
	"github.com/indexsupply/ethabi/wctx"
	"github.com/indexsupply/ethabi/wos"
	"github.com/indexsupply/ethabi/wslog"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: abi [-abi file] [-fn name|signature] <command> [args]

commands:
	sig          print the signature and selector of -fn
	enc ARG...   encode call data for -fn
	dec [HEX...] decode return data of -fn. reads stdin lines without args
	in HEX       decode call data. -fn is optional when -abi is set

-abi accepts a $VAR placeholder naming an env variable.
-fn accepts a signature with outputs when -abi is not set:

	abi -fn 'balanceOf(address)(uint256)' dec 0x...
`

func check(err error) {
	if err != nil {
		fmt.Printf("%s\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		ctx     = context.Background()
		abiFile string
		fn      string
		verbose bool
		version bool
	)
	flag.StringVar(&abiFile, "abi", "", "json interface description")
	flag.StringVar(&fn, "fn", "", "function name or signature")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.BoolVar(&version, "version", false, "version")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if version {
		fmt.Printf("v%s %s\n", Version, Commit)
		os.Exit(0)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}
	lh := wslog.New(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	lh.RegisterContext(func(ctx context.Context) (string, any) {
		name := wctx.Func(ctx)
		if name == "" {
			return "", nil
		}
		return "fn", name
	})
	lh.RegisterContext(func(ctx context.Context) (string, any) {
		sel, ok := wctx.Selector(ctx)
		if !ok {
			return "", nil
		}
		return "sel", sel
	})
	slog.SetDefault(slog.New(lh))
	ctx = wctx.WithVersion(ctx, Commit)

	c := cli{stdin: os.Stdin, stdout: os.Stdout}
	if abiFile != "" {
		js, err := wos.ReadFile(abiFile)
		check(err)
		ct, err := abi.ParseABI(js)
		check(err)
		c.contract = &ct
		slog.DebugContext(ctx, "loaded abi", "functions", len(ct.Functions))
	}
	check(c.run(ctx, fn, flag.Args()))
}

type cli struct {
	contract *abi.Contract // nil without -abi
	stdin    io.Reader
	stdout   io.Writer
}

var errUsage = errors.New("see abi -h for usage")

// Functions come from the abi when one was loaded.
// Otherwise s must be a signature.
func (c cli) function(s string) (abi.Function, error) {
	if s == "" {
		return abi.Function{}, fmt.Errorf("missing -fn. %w", errUsage)
	}
	if c.contract == nil {
		return abi.ParseSignature(s)
	}
	return c.contract.Find(s)
}

func (c cli) run(ctx context.Context, fn string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command. %w", errUsage)
	}
	switch cmd, args := args[0], args[1:]; cmd {
	case "sig":
		f, err := c.function(fn)
		if err != nil {
			return err
		}
		sel := f.Selector()
		_, err = fmt.Fprintf(c.stdout, "%s %s\n", f.Signature(), eth.EncodeHex(sel[:]))
		return err
	case "enc":
		f, err := c.function(fn)
		if err != nil {
			return err
		}
		ctx = wctx.WithSelector(wctx.WithFunc(ctx, f.Name), f.Selector())
		tokens, err := abi.TokenizeAll(f.InputTypes(), args)
		if err != nil {
			return err
		}
		b, err := f.EncodeInput(tokens...)
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "encoded", "n", len(b))
		_, err = fmt.Fprintln(c.stdout, eth.EncodeHex(b))
		return err
	case "dec":
		f, err := c.function(fn)
		if err != nil {
			return err
		}
		ctx = wctx.WithFunc(ctx, f.Name)
		if len(args) == 0 {
			args, err = lines(c.stdin)
			if err != nil {
				return err
			}
		}
		return c.decode(ctx, f, args)
	case "in":
		if len(args) != 1 {
			return fmt.Errorf("in takes one payload. %w", errUsage)
		}
		b, err := eth.DecodeHexTrim(args[0])
		if err != nil {
			return fmt.Errorf("decoding hex: %w", err)
		}
		f, err := c.caller(fn, b)
		if err != nil {
			return err
		}
		ctx = wctx.WithSelector(wctx.WithFunc(ctx, f.Name), f.Selector())
		tokens, err := f.DecodeInput(b)
		if err != nil {
			slog.DebugContext(ctx, "decoding input", "error", err, "n", len(b))
			return err
		}
		return c.print(f.Signature(), tokens)
	default:
		return fmt.Errorf("unknown command %q. %w", cmd, errUsage)
	}
}

// finds the function for call data by selector
// when -fn is not set
func (c cli) caller(fn string, calldata []byte) (abi.Function, error) {
	if fn != "" {
		return c.function(fn)
	}
	if c.contract == nil {
		return abi.Function{}, fmt.Errorf("in needs -fn or -abi. %w", errUsage)
	}
	if len(calldata) < 4 {
		return abi.Function{}, fmt.Errorf("%w: missing selector", abi.ErrMalformed)
	}
	f, ok := c.contract.BySelector([4]byte(calldata[:4]))
	if !ok {
		return abi.Function{}, fmt.Errorf("%w: selector %x", abi.ErrNotFound, calldata[:4])
	}
	return f, nil
}

// Decodes payloads in parallel and prints the
// results in the order they were given.
func (c cli) decode(ctx context.Context, f abi.Function, payloads []string) error {
	var (
		res    = make([][]abi.Token, len(payloads))
		ctr    uint64
		eg, gc = errgroup.WithContext(wctx.WithCounter(ctx, &ctr))
	)
	eg.SetLimit(runtime.NumCPU())
	for i := range payloads {
		i := i
		eg.Go(func() error {
			if err := gc.Err(); err != nil {
				return err
			}
			b, err := eth.DecodeHexTrim(payloads[i])
			if err != nil {
				return fmt.Errorf("payload %d: decoding hex: %w", i, err)
			}
			res[i], err = f.DecodeOutput(b)
			if err != nil {
				return fmt.Errorf("payload %d: %w", i, err)
			}
			wctx.CounterAdd(gc, 1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	slog.DebugContext(ctx, "decoded", "n", wctx.Counter(gc))
	for i := range res {
		if err := c.print(f.Name, res[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c cli) print(label string, tokens []abi.Token) error {
	if tokens == nil {
		tokens = []abi.Token{}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.stdout, "%s %s\n", label, b)
	return err
}

func lines(r io.Reader) ([]string, error) {
	var (
		res []string
		s   = bufio.NewScanner(r)
	)
	s.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for s.Scan() {
		if l := strings.TrimSpace(s.Text()); l != "" {
			res = append(res, l)
		}
	}
	return res, s.Err()
}

// Set using: go build -ldflags="-X main.Version=XXX"
var (
	Version string
	Commit  = func() string {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return "ernobuildinfo"
		}
		var (
			revision = ""
			modified bool
		)
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value[:4]
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if !modified {
			return revision
		}
		return revision + "-"
	}()
)
