package speedup

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
)

const (
	DefaultResultsDir = "./experiment_results"
	DefaultOutputFile = "absolute_iaa_speedup.png"
)

var (
	ErrValueCannotBeNil  = errors.New("value cannot be nil")
	ErrPathCannotBeEmpty = errors.New("path cannot be empty")

	// DefaultFileNamePattern matches experiment output files named
	// exp_<cache size in bytes>_<sw|hw>.txt.
	DefaultFileNamePattern = regexp.MustCompile(`^exp_(\d+)_(sw|hw)\.txt$`)
	// DefaultRunTimePattern matches the mixgraph result line and captures
	// the trailing wall-clock seconds field.
	DefaultRunTimePattern = regexp.MustCompile(`mixgraph\s*:\s*[\d.]+\s*micros/op\s*[\d.]+\s*ops/sec\s*([\d.]+)\s*seconds`)
)

type Analyzer struct {
	resultsDir      string
	outputFile      string
	scale           Scale
	fileNamePattern *regexp.Regexp
	runTimePattern  *regexp.Regexp
	show            bool
	viewer          func(path string) error
	stdout, stderr  io.Writer
}

type Option func(*Analyzer) error

func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	analyzer := &Analyzer{
		resultsDir:      DefaultResultsDir,
		outputFile:      DefaultOutputFile,
		scale:           ScaleLog2,
		fileNamePattern: DefaultFileNamePattern,
		runTimePattern:  DefaultRunTimePattern,
		show:            true,
		viewer:          openImage,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
	}
	for _, o := range opts {
		err := o(analyzer)
		if err != nil {
			return nil, err
		}
	}
	return analyzer, nil
}

func WithResultsDir(dir string) Option {
	return func(a *Analyzer) error {
		if dir == "" {
			return ErrPathCannotBeEmpty
		}
		a.resultsDir = dir
		return nil
	}
}

func WithOutputFile(path string) Option {
	return func(a *Analyzer) error {
		if path == "" {
			return ErrPathCannotBeEmpty
		}
		a.outputFile = path
		return nil
	}
}

func WithScale(scale Scale) Option {
	return func(a *Analyzer) error {
		if scale != ScaleLog2 && scale != ScaleLinear {
			return fmt.Errorf("invalid scale %d", scale)
		}
		a.scale = scale
		return nil
	}
}

func WithFileNamePattern(pattern *regexp.Regexp) Option {
	return func(a *Analyzer) error {
		if pattern == nil {
			return ErrValueCannotBeNil
		}
		a.fileNamePattern = pattern
		return nil
	}
}

func WithRunTimePattern(pattern *regexp.Regexp) Option {
	return func(a *Analyzer) error {
		if pattern == nil {
			return ErrValueCannotBeNil
		}
		a.runTimePattern = pattern
		return nil
	}
}

func WithViewer(viewer func(path string) error) Option {
	return func(a *Analyzer) error {
		if viewer == nil {
			return ErrValueCannotBeNil
		}
		a.viewer = viewer
		return nil
	}
}

func WithShow(show bool) Option {
	return func(a *Analyzer) error {
		a.show = show
		return nil
	}
}

func WithStdout(w io.Writer) Option {
	return func(a *Analyzer) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		a.stdout = w
		return nil
	}
}

func WithStderr(w io.Writer) Option {
	return func(a *Analyzer) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		a.stderr = w
		return nil
	}
}

func WithInputsFromArgs(args []string) Option {
	return func(a *Analyzer) error {
		fset := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		fset.SetOutput(a.stderr)
		dir := fset.String("d", DefaultResultsDir, "directory containing experiment output files")
		out := fset.String("o", DefaultOutputFile, "file the chart is written to")
		linear := fset.Bool("linear", false, "plot against cache size in MB instead of log2(bytes)")
		noShow := fset.Bool("no-show", false, "do not open the chart after saving it")
		err := fset.Parse(args)
		if err != nil {
			return err
		}
		a.resultsDir = *dir
		a.outputFile = *out
		if *linear {
			a.scale = ScaleLinear
		}
		a.show = !*noShow
		return nil
	}
}

func (a Analyzer) ResultsDir() string {
	return a.resultsDir
}

func (a Analyzer) OutputFile() string {
	return a.outputFile
}

func (a Analyzer) Scale() Scale {
	return a.scale
}

// Run executes the whole pipeline: collect, aggregate, plot, show.
// Every failure mode documented for the pipeline degrades to a logged
// message and a nil return; only unexpected I/O errors propagate.
func (a *Analyzer) Run() error {
	info, err := os.Stat(a.resultsDir)
	if err != nil || !info.IsDir() {
		a.LogFStdOut("Results directory %q does not exist.\n", a.resultsDir)
		return nil
	}
	a.LogStdOut("Parsing experiment output files...\n")
	table, err := a.Collect()
	if err != nil {
		return err
	}
	if len(table) == 0 {
		a.LogStdOut("No valid experiment data found.\n")
		return nil
	}
	points, ticks := a.Series(table)
	if len(points) == 0 {
		a.LogStdOut("No complete data to plot.\n")
		return nil
	}
	err = a.Plot(points, ticks)
	if err != nil {
		return err
	}
	a.LogFStdOut("Plot saved as %s\n", a.outputFile)
	if a.show {
		err = a.viewer(a.outputFile)
		if err != nil {
			a.LogFStdOut("Could not open %s in a viewer: %v\n", a.outputFile, err)
		}
	}
	a.LogStdOut("Done.\n")
	return nil
}

func (a Analyzer) LogStdOut(msg string) {
	fmt.Fprint(a.stdout, msg)
}

func (a Analyzer) LogStdErr(msg string) {
	fmt.Fprint(a.stderr, msg)
}

func (a Analyzer) LogFStdOut(msg string, opts ...interface{}) {
	fmt.Fprintf(a.stdout, msg, opts...)
}

func (a Analyzer) LogFStdErr(msg string, opts ...interface{}) {
	fmt.Fprintf(a.stderr, msg, opts...)
}

func RunCLI(args []string) error {
	analyzer, err := NewAnalyzer(WithInputsFromArgs(args))
	if err != nil {
		return err
	}
	return analyzer.Run()
}
