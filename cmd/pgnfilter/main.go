// pgnfilter streams PGN files through a keep/discard filter, rewriting
// move text on the way out and replacing each destination atomically.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/profile"

	"github.com/ianrastall/pgnfilter/internal/pipeline"
	"github.com/ianrastall/pgnfilter/internal/worker"
)

const programVersion = "1.0.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("pgnfilter version %s\n", programVersion)
		os.Exit(0)
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "pgnfilter: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inputs []string) error {
	if len(inputs) == 0 {
		usage()
		return fmt.Errorf("no input files")
	}
	jobs, err := planJobs(inputs)
	if err != nil {
		return err
	}

	log, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := buildOptions()
	if err := opts.Validate(); err != nil {
		return err
	}

	if len(jobs) == 1 {
		return runSingle(ctx, jobs[0], log)
	}
	return runAll(ctx, jobs, log)
}

// planJobs resolves the destination path for every input.
func planJobs(inputs []string) ([]worker.Job, error) {
	if len(inputs) == 1 {
		dest := *outputFile
		if dest == "" && *outputDir != "" {
			dest = destinationFor(inputs[0], *outputDir)
		}
		if dest == "" {
			return nil, fmt.Errorf("no output path: use -o or -outdir")
		}
		return []worker.Job{{SourcePath: inputs[0], DestPath: dest}}, nil
	}
	if *outputDir == "" {
		return nil, fmt.Errorf("multiple inputs need -outdir")
	}
	if *outputFile != "" {
		return nil, fmt.Errorf("-o only applies to a single input; use -outdir")
	}
	jobs := make([]worker.Job, 0, len(inputs))
	for _, input := range inputs {
		jobs = append(jobs, worker.Job{
			SourcePath: input,
			DestPath:   destinationFor(input, *outputDir),
		})
	}
	return jobs, nil
}

// openLog opens the warnings log selected by -l or -L. Without either
// flag warnings are discarded.
func openLog() (io.Writer, func(), error) {
	noop := func() {}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			return nil, noop, err
		}
		return f, func() { f.Close() }, nil
	}
	if *appendLog != "" {
		f, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, noop, err
		}
		return f, func() { f.Close() }, nil
	}
	return nil, noop, nil
}

// runSingle filters one file with progress rendered to stderr.
func runSingle(ctx context.Context, job worker.Job, log io.Writer) error {
	cfg := pipeline.Config{
		SourcePath: job.SourcePath,
		DestPath:   job.DestPath,
		Options:    buildOptions(),
		Log:        log,
		RosterOnly: *sevenTag,
	}
	if !*silent {
		cfg.Observer = renderProgress
	}
	out, err := pipeline.Run(ctx, cfg)
	if !*silent {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	summarize(job, out)
	return nil
}

// runAll filters several files concurrently. Per-file progress bars
// would interleave, so multi-file runs report per-file summaries only.
func runAll(ctx context.Context, jobs []worker.Job, log io.Writer) error {
	opts := buildOptions()
	pool := worker.NewPool(func(job worker.Job) worker.Result {
		out, err := pipeline.Run(ctx, pipeline.Config{
			SourcePath: job.SourcePath,
			DestPath:   job.DestPath,
			Options:    opts,
			Log:        log,
			RosterOnly: *sevenTag,
		})
		return worker.Result{Job: job, Outcome: out, Err: err}
	}, worker.WithWorkers(*numWorkers))

	pool.Start()
	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
		pool.Close()
	}()

	var firstErr error
	for r := range pool.Results() {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "pgnfilter: %s: %v\n", r.Job.SourcePath, r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		summarize(r.Job, r.Outcome)
	}
	return firstErr
}

// renderProgress draws a carriage-return progress bar on stderr.
func renderProgress(p pipeline.Progress) {
	const width = 50
	filled := int(width * p.Percent() / 100)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
	fmt.Fprintf(os.Stderr, "\r%s %.1f%%, games: %d, read: %v of %v",
		bar, p.Percent(), p.Games, p.BytesRead, p.Total)
}

// summarize prints one per-file result line.
func summarize(job worker.Job, out pipeline.Outcome) {
	if *silent {
		return
	}
	fmt.Printf("%s: %d processed, %d kept, %d modified -> %s\n",
		job.SourcePath, out.Processed, out.Kept, out.Modified, job.DestPath)
}
