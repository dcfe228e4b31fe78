package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bufbuild/protocompile/reporter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"gopkg.microglot.org/tptp.go/internal/compiler"
	"gopkg.microglot.org/tptp.go/internal/compiler/tptp"
	"gopkg.microglot.org/tptp.go/internal/config"
	"gopkg.microglot.org/tptp.go/internal/exc"
)

type opts struct {
	Roots             []string
	Config            string
	TimeLimit         time.Duration
	ForbiddenIncludes []string
	FilterReserved    bool
	CollectSources    bool
	DumpTokens        bool
	Format            string
	MaxConcurrency    int
	Verbose           bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("tptpc", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for includes.")
	flags.StringVar(&op.Config, "config", "", "YAML configuration file.")
	flags.DurationVar(&op.TimeLimit, "time-limit", 0, "Stop reading a problem after this long and keep the units read so far.")
	flags.StringSliceVar(&op.ForbiddenIncludes, "forbid-include", nil, "Include names to ignore.")
	flags.BoolVar(&op.FilterReserved, "filter-reserved", false, "Lex names starting with $$ as ordinary names.")
	flags.BoolVar(&op.CollectSources, "collect-sources", false, "Keep the source annotation of each unit.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream of each problem before parsing")
	flags.StringVar(&op.Format, "format", config.FormatText, "Output format, text or json.")
	flags.IntVar(&op.MaxConcurrency, "max-concurrency", 0, "Number of problems parsed at once. Zero uses the number of CPUs.")
	flags.BoolVarP(&op.Verbose, "verbose", "v", false, "Log debug events to STDERR.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	cfg := &config.File{}
	if op.Config != "" {
		loaded, err := config.LoadFile(op.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	mergeFlags(flags, op, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		log.SetLevel(level)
	}
	if op.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	f, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		panic(err)
	}
	mf, err := compiler.NewRootsFS(cfg.Roots...)
	if err != nil {
		panic(err)
	}
	mf = append(mf, f)

	options := config.NewOptions(cfg.Options)
	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
		compiler.OptionWithMaxConcurrency(cfg.MaxConcurrency),
		compiler.OptionWithLexerOptions(tptp.WithOptionFilterReserved(cfg.FilterReserved)),
		compiler.OptionWithParserOptions(
			tptp.WithOptionForbiddenIncludes(cfg.ForbiddenIncludes...),
			tptp.WithOptionCollectSources(cfg.CollectSources),
			tptp.WithOptionDirectives(options),
		),
	)
	if err != nil {
		panic(err)
	}

	out, err := c.Compile(ctx, &compiler.CompileRequest{
		Files:      targets,
		DumpTokens: op.DumpTokens,
		TimeLimit:  cfg.TimeLimit,
	})
	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			h := reporter.NewHandler(reporter.NewReporter(func(err reporter.ErrorWithPos) error {
				fmt.Fprintln(os.Stderr, err.Error())
				return nil
			}, nil))
			_ = exc.Handle(h, me)
			os.Exit(1)
		}
		panic(err)
	}

	for _, name := range options.Names() {
		v, _ := options.Get(name)
		log.Debugf("option %s = %s", name, v)
	}

	if cfg.Format == config.FormatJSON {
		b, err := compiler.MarshalProblemsJSON(out.Problems)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	for _, p := range out.Problems {
		fmt.Printf("%% %s\n", p.URI)
		if p.TimedOut {
			fmt.Println("% time limit reached")
		}
		for _, u := range p.Units {
			fmt.Println(u.String())
		}
	}
}

// mergeFlags copies flag values over the configuration file. Flags that
// were not given only fill fields the file left empty.
func mergeFlags(flags *pflag.FlagSet, op *opts, cfg *config.File) {
	if flags.Changed("root") || len(cfg.Roots) == 0 {
		cfg.Roots = op.Roots
	}
	if flags.Changed("time-limit") {
		cfg.TimeLimit = op.TimeLimit
	}
	if flags.Changed("forbid-include") {
		cfg.ForbiddenIncludes = op.ForbiddenIncludes
	}
	if flags.Changed("filter-reserved") {
		cfg.FilterReserved = op.FilterReserved
	}
	if flags.Changed("collect-sources") {
		cfg.CollectSources = op.CollectSources
	}
	if flags.Changed("format") || cfg.Format == "" {
		cfg.Format = op.Format
	}
	if flags.Changed("max-concurrency") {
		cfg.MaxConcurrency = op.MaxConcurrency
	}
}
