package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	workers = pflag.IntP("workers", "w", 4, "max query files processed concurrently")
	verbose = pflag.BoolP("verbose", "v", false, "enable debug logging")
)

func main() {
	pflag.Parse()

	logger := newLogger(*verbose)
	defer func() {
		_ = logger.Sync()
	}()

	files := pflag.Args()
	if len(files) == 0 {
		out, err := runQueries(os.Stdin)
		if err != nil {
			logger.Error("stdin query run failed", zap.Error(err))
			os.Exit(1)
		}
		printResults(out)
		return
	}

	results := make([][]int64, len(files))
	errs := make([]error, len(files))

	pool, err := ants.NewPool(*workers)
	if err != nil {
		logger.Error("worker pool setup failed", zap.Error(err))
		os.Exit(1)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, name := range files {
		i, name := i, name
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = runQueryFile(name)
			logger.Debug("query file done",
				zap.String("file", name),
				zap.Int("answers", len(results[i])),
				zap.Error(errs[i]))
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		logger.Error("query run failed", zap.Error(err))
		os.Exit(1)
	}

	for _, out := range results {
		printResults(out)
	}
}

func runQueryFile(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	out, err := runQueries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func printResults(out []int64) {
	if len(out) == 0 {
		return
	}
	fmt.Println(strings.Join(lo.Map(out, func(d int64, _ int) string {
		return strconv.FormatInt(d, 10)
	}), " "))
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		return zap.Must(zap.NewDevelopment())
	}
	return zap.Must(zap.NewProduction())
}
