package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/avwhitaker/scout/internal/cache"
	"github.com/avwhitaker/scout/internal/config"
	"github.com/avwhitaker/scout/internal/fetch"
	"github.com/avwhitaker/scout/internal/logging"
	"github.com/avwhitaker/scout/internal/mcpserver"
	"github.com/avwhitaker/scout/internal/report"
	"github.com/avwhitaker/scout/internal/research"
	"github.com/avwhitaker/scout/internal/search"
	"github.com/avwhitaker/scout/internal/ui"
)

// buildController assembles the production pipeline from configuration.
func buildController(cfg *config.Config) (*research.Controller, error) {
	var store *cache.Cache
	if cfg.CachePath != "" {
		var err error
		store, err = cache.Open(cfg.CachePath, time.Duration(cfg.CacheTTL))
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
	}

	sources := make([]search.FeedSource, len(cfg.FeedSources))
	for i, s := range cfg.FeedSources {
		sources[i] = search.FeedSource{Name: s.Name, URL: s.URL}
	}

	fetcher := fetch.New(fetch.Options{
		MaxAttempts:    cfg.Fetch.MaxAttempts,
		RetryBaseDelay: time.Duration(cfg.Fetch.RetryBaseDelay),
		Timeout:        time.Duration(cfg.Fetch.Timeout),
		RatePerSecond:  cfg.Fetch.RatePerSecond,
	})

	return research.NewController(research.Deps{
		Providers: []search.Provider{
			search.NewFeedProvider(sources, time.Duration(cfg.Fetch.Timeout)),
		},
		Fetcher:       fetcher,
		Cache:         store,
		MaxConcurrent: cfg.Fetch.MaxConcurrent,
	}), nil
}

func runServe() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: load config: %v\n", err)
		os.Exit(1)
	}

	controller, err := buildController(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
	if c := controller.Cache(); c != nil {
		defer c.Close()
	}

	if err := mcpserver.New(controller, version).ServeStdio(); err != nil {
		logging.Error("mcp server exited", "err", err)
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
}

func runResearch() {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	maxResults := fs.Int("max", 10, "maximum documents to collect")
	threshold := fs.Float64("threshold", 0.5, "low-relevance flag threshold")
	depth := fs.Int("depth", 3, "research depth")
	detail := fs.Int("detail", 5, "summary detail level")
	format := fs.String("format", "markdown", "output format: json, markdown, html, text")
	watch := fs.Bool("watch", false, "show a live progress monitor")
	fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "scout run: missing query")
		fs.Usage()
		os.Exit(1)
	}
	query := ""
	for i, arg := range fs.Args() {
		if i > 0 {
			query += " "
		}
		query += arg
	}

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: load config: %v\n", err)
		os.Exit(1)
	}

	controller, err := buildController(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
	if c := controller.Cache(); c != nil {
		defer c.Close()
	}

	params := research.DefaultParameters(query)
	params.MaxResults = *maxResults
	params.RelevanceThreshold = *threshold
	params.Depth = *depth
	params.DetailLevel = *detail
	params.OutputFormat = *format

	if err := controller.Start(context.Background(), params); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}

	if *watch {
		if err := ui.Run(controller); err != nil {
			fmt.Fprintf(os.Stderr, "scout: %v\n", err)
			os.Exit(1)
		}
	}
	controller.Wait()

	st := controller.Status()
	if st.State == research.Errored.String() {
		fmt.Fprintf(os.Stderr, "scout: research failed: %s\n", st.Error)
		os.Exit(1)
	}

	out, err := report.Format(query, controller.Results(), *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
