package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/khdl/khinsider-dl/internal/audio"
	"github.com/khdl/khinsider-dl/internal/cache"
	"github.com/khdl/khinsider-dl/internal/config"
	"github.com/khdl/khinsider-dl/internal/download"
	"github.com/khdl/khinsider-dl/internal/fetch"
	"github.com/khdl/khinsider-dl/internal/khinsider"
	"github.com/khdl/khinsider-dl/internal/model"
	"github.com/khdl/khinsider-dl/internal/resolver"
)

func main() {
	app := &cli.App{
		Name:      "khinsider-dl",
		Usage:     "Download game soundtracks from downloads.khinsider.com",
		ArgsUsage: "[URL ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "read URLs from a newline-separated `FILE`",
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "number of concurrent downloads",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output `DIR` (overrides config)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config `FILE`",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "search albums instead of downloading",
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "album type filter for --search (soundtrack, gamerip, ...)",
			},
			&cli.StringFlag{
				Name:  "year",
				Usage: "album year filter for --search",
			},
			&cli.StringFlag{
				Name:  "publisher",
				Usage: "list albums released by the publisher `SLUG`",
			},
			&cli.BoolFlag{
				Name:  "tag",
				Usage: "write ID3 tags to downloaded MP3s",
			},
			&cli.BoolFlag{
				Name:  "playlist",
				Usage: "write an M3U playlist per album",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if c.Bool("verbose") {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	client := fetch.NewClient(logger,
		fetch.WithMaxAttempts(settings.MaxAttempts),
		fetch.WithBackoff(settings.RetryBackoff()),
		fetch.WithUserAgent(settings.UserAgent),
	)

	objects := cache.New(settings.CacheLifespan(), settings.SweepInterval(), logger)
	objects.StartSweeper()
	defer objects.StopSweeper()

	res := resolver.New(client, objects, logger)

	if c.String("search") != "" {
		return runSearch(ctx, c, res)
	}
	if c.String("publisher") != "" {
		return runPublisher(ctx, c, res)
	}
	return runDownload(ctx, c, settings, res, client)
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path := c.String("config"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if out := c.String("output"); out != "" {
		settings.DownloadsPath = out
	}
	if threads := c.Int("threads"); threads > 0 {
		settings.Threads = threads
	}
	if c.Bool("tag") {
		settings.TagFiles = true
	}
	if c.Bool("playlist") {
		settings.CreatePlaylists = true
	}
	return settings, nil
}

func runSearch(ctx context.Context, c *cli.Context, res *resolver.Resolver) error {
	query := khinsider.NewQueryBuilder().Search(c.String("search"))
	if year := c.String("year"); year != "" {
		query.Year(year)
	}
	if t := c.String("type"); t != "" {
		albumType, err := khinsider.ParseAlbumType(t)
		if err != nil {
			return err
		}
		query.Type(albumType)
	}

	results, err := res.Search(ctx, query)
	if err != nil {
		return err
	}
	return printAlbumTable(results)
}

func runPublisher(ctx context.Context, c *cli.Context, res *resolver.Resolver) error {
	results, err := res.PublisherAlbums(ctx, c.String("publisher"))
	if err != nil {
		return err
	}
	return printAlbumTable(results)
}

func printAlbumTable(results []model.AlbumSummary) error {
	if len(results) == 0 {
		fmt.Println("No albums found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tTYPE\tYEAR\tURL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Title, r.Type, r.Year, r.Ref().URL())
	}
	return w.Flush()
}

func runDownload(ctx context.Context, c *cli.Context, settings *config.Settings, res *resolver.Resolver, client *fetch.Client) error {
	urls, err := collectURLs(c)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("no URLs given")
	}

	verbose := c.Bool("verbose")
	bar := progressbar.DefaultBytes(-1, "downloading")
	onProgress := func(event download.ProgressEvent) {
		if event.Bytes > 0 {
			bar.Add64(event.Bytes)
		}
		switch event.Level {
		case download.LevelError, download.LevelWarning:
			fmt.Fprintln(os.Stderr, event.Message)
		case download.LevelVerbose:
			if verbose {
				fmt.Fprintln(os.Stderr, event.Message)
			}
		}
	}

	var tagger *audio.Tagger
	if settings.TagFiles {
		tagger = audio.NewTagger()
	}
	engine := download.NewEngine(res, client, download.Options{
		Root:           settings.DownloadsPath,
		Concurrency:    settings.Threads,
		Tagger:         tagger,
		WritePlaylists: settings.CreatePlaylists,
		OnProgress:     onProgress,
	})

	outcomes, err := engine.DownloadURLs(ctx, urls)
	if err != nil {
		return err
	}
	bar.Finish()

	fmt.Println()
	fmt.Println(download.Summarize(outcomes))
	return nil
}

// collectURLs gathers input URLs from arguments or --file, which are
// mutually exclusive.
func collectURLs(c *cli.Context) ([]string, error) {
	urls := c.Args().Slice()
	path := c.String("file")
	if path == "" {
		return urls, nil
	}
	if len(urls) > 0 {
		return nil, fmt.Errorf("pass URLs as arguments or via --file, not both")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
