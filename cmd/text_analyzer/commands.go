package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/firefly/text-analyzer/internal/config"
	"github.com/firefly/text-analyzer/internal/fetcher"
	outputio "github.com/firefly/text-analyzer/internal/io"
	"github.com/firefly/text-analyzer/internal/menu"
	"github.com/firefly/text-analyzer/internal/parser"
	"github.com/firefly/text-analyzer/internal/processor"
	"github.com/firefly/text-analyzer/internal/search"
	"github.com/firefly/text-analyzer/internal/session"
	"github.com/firefly/text-analyzer/internal/source"
	"github.com/firefly/text-analyzer/internal/wordlist"
)

var errNoText = errors.New("no text given: pass --text or a location")

// env holds what every command builds from its flags
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	loader *source.Loader
}

func setup(c *cli.Context, ui UI) (*env, error) {
	cfg, err := config.FromContext(c)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := cfg.Logger(ui.Err)
	logger.Debug("starting", "version", Version, "args", c.Args().Slice())

	f := fetcher.New(cfg.FetcherOptions(), logger)
	p := parser.New(cfg.Selector, logger)

	return &env{
		cfg:    cfg,
		logger: logger,
		loader: source.New(f, p, logger).WithStdin(ui.In),
	}, nil
}

// loadText returns the inline --text or the text at the first argument
func (e *env) loadText(c *cli.Context) (string, error) {
	if c.IsSet("text") {
		return c.String("text"), nil
	}
	if c.Args().Len() == 0 {
		return "", errNoText
	}
	return e.loader.Load(c.Context, c.Args().First())
}

func menuCommand(c *cli.Context, ui UI) error {
	e, err := setup(c, ui)
	if err != nil {
		return err
	}

	s := session.New(processor.New(), e.logger)
	menu.New(s, menu.NewPromptReader(c.Context), ui.Out, e.logger).Run(c.Context)
	return nil
}

func searchCommand(c *cli.Context, ui UI) error {
	e, err := setup(c, ui)
	if err != nil {
		return err
	}

	words := &wordlist.WordList{}
	if path := c.String("words-file"); path != "" {
		words, err = wordlist.New(path)
		if err != nil {
			return err
		}
	}
	for _, w := range c.StringSlice("word") {
		words.Add(w)
	}
	if words.Size() == 0 {
		return errors.New("no words given: pass --word or --words-file")
	}

	text, err := e.loadText(c)
	if err != nil {
		return err
	}

	for _, word := range words.Words() {
		positions := search.FindWordPositions(text, word)
		if err := outputio.RenderPositions(ui.Out, word, positions); err != nil {
			return err
		}
	}
	return nil
}

func statsCommand(c *cli.Context, ui UI) error {
	e, err := setup(c, ui)
	if err != nil {
		return err
	}

	text, err := e.loadText(c)
	if err != nil {
		return err
	}

	s := session.New(processor.New(), e.logger)
	s.SetText(text)
	if _, err := s.Process(); err != nil {
		return err
	}

	stats, err := s.Stats()
	if err != nil {
		return err
	}
	return outputio.RenderStats(ui.Out, stats)
}

func reportCommand(c *cli.Context, ui UI) error {
	e, err := setup(c, ui)
	if err != nil {
		return err
	}

	locations := c.Args().Slice()
	if len(locations) == 0 {
		return errors.New("no sources given")
	}

	start := time.Now()
	p := processor.New()

	var (
		progress *uiprogress.Progress
		bar      *uiprogress.Bar
	)
	if len(locations) > 1 && !e.cfg.NoProgress {
		progress = uiprogress.New()
		progress.SetOut(ui.Err)
		progress.Start()

		bar = progress.AddBar(len(locations))
		bar.AppendCompleted()
		bar.PrependElapsed()
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			if b.Current() == 0 {
				return ""
			}
			return locations[b.Current()-1]
		})
	}

	var results []outputio.SourceResult
	failed := 0
	for _, location := range locations {
		text, err := e.loader.Load(c.Context, location)
		if bar != nil {
			bar.Incr()
		}
		if err != nil {
			failed++
			e.logger.Warn("skipping source", "source", location, "err", err)
			continue
		}

		results = append(results, outputio.SourceResult{
			Source: location,
			Result: p.ProcessText(text),
		})
	}

	if progress != nil {
		progress.Stop()
	}

	if len(results) == 0 {
		return fmt.Errorf("all %d sources failed", failed)
	}
	if failed > 0 {
		e.logger.Warn("some sources failed", "failed", failed, "total", len(locations))
	}

	report := outputio.BuildReport(results, e.cfg.TopWords, time.Since(start))
	if e.cfg.Output != "" {
		return outputio.OutputReportToFile(report, e.cfg.Output)
	}
	return outputio.OutputReport(ui.Out, report)
}
