package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/firefly/text-analyzer/internal/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

// UI contains the streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// a second signal falls back to the default action
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := newApp(ui).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(ui.Err, "text-analyzer: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "text-analyzer",
		Usage:     "search words and compute statistics over a text",
		Version:   Version,
		Reader:    ui.In,
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags:     config.Flags(),
		Action: func(c *cli.Context) error {
			return menuCommand(c, ui)
		},
		Commands: []*cli.Command{
			{
				Name:  "menu",
				Usage: "Start the interactive menu",
				Action: func(c *cli.Context) error {
					return menuCommand(c, ui)
				},
			},
			{
				Name:      "search",
				Usage:     "Find whole-word positions of one or more words",
				ArgsUsage: "[location]",
				Flags: append(textFlags(),
					&cli.StringSliceFlag{
						Name:    "word",
						Aliases: []string{"w"},
						Usage:   "Word to search for (repeatable)",
					},
					&cli.StringFlag{
						Name:  "words-file",
						Usage: "File with one query word per line",
					},
				),
				Action: func(c *cli.Context) error {
					return searchCommand(c, ui)
				},
			},
			{
				Name:      "stats",
				Usage:     "Print sentence, word and character statistics",
				ArgsUsage: "[location]",
				Flags:     textFlags(),
				Action: func(c *cli.Context) error {
					return statsCommand(c, ui)
				},
			},
			{
				Name:      "report",
				Usage:     "Write a JSON report over one or more sources",
				ArgsUsage: "location...",
				Flags:     config.ReportFlags(),
				Action: func(c *cli.Context) error {
					return reportCommand(c, ui)
				},
			},
		},
	}
}

// textFlags select the text of the search and stats commands
func textFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"t"},
			Usage:   "Text given inline instead of a location",
		},
	}
}
