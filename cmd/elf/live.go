package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/urfave/cli"

	"elf-lang/live/internal/auditlog"
	"elf-lang/live/internal/evaluator"
	"elf-lang/live/internal/live"
	"elf-lang/live/internal/loop"
	"elf-lang/live/internal/shell"
	"elf-lang/live/internal/watch"
)

func LiveCommandPattern(output, journal io.Writer) cli.Command {
	return cli.Command{
		Name:      "live",
		Usage:     "Track a script and re-run only what each edit affects",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:   "log, l",
				Value:  "log.elf",
				EnvVar: "ELF_LIVE_LOG",
				Usage:  "replay log every applied statement is appended to",
			},
			cli.BoolFlag{
				Name:  "watch, w",
				Usage: "wait for the file to change before each new iteration",
			},
			cli.DurationFlag{
				Name:  "poll",
				Value: 500 * time.Millisecond,
				Usage: "how often to check the file for changes with --watch",
			},
			cli.StringFlag{
				Name:  "history",
				Usage: "file to keep prompt history in",
			},
			cli.BoolFlag{
				Name:   "verbose, v",
				EnvVar: "ELF_LIVE_VERBOSE",
				Usage:  "log dirty sets and every applied statement",
			},
		},
		Action: func(ctx *cli.Context) error {
			path, err := onePath(ctx)
			if err != nil {
				return err
			}
			log := newLogger(journal, ctx.Bool("verbose")).New("script", path)

			audit, err := auditlog.Open(ctx.String("log"))
			if err != nil {
				return Failed.Wrap(err)
			}
			defer audit.Close()

			ev := evaluator.New(output)
			prompter := shell.NewLinePrompter(ctx.String("history"))
			defer func() {
				if err := prompter.Close(); err != nil {
					log.Warn("could not save history", "err", err)
				}
			}()

			sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			l := &loop.Loop{
				Source:   watch.NewSource(path, ctx.Duration("poll")),
				Session:  live.NewSession(ev, live.WithLogger(log), live.WithRecorder(audit)),
				Operator: shell.New(prompter, output, ev, log),
				Watch:    ctx.Bool("watch"),
				Log:      log,
			}
			log.Info("tracking script", "log", ctx.String("log"), "watch", l.Watch)
			if err := l.Run(sigCtx); err != nil {
				return Failed.Wrap(err)
			}
			return nil
		},
	}
}

func newLogger(journal io.Writer, verbose bool) log15.Logger {
	lvl := log15.LvlInfo
	if verbose {
		lvl = log15.LvlDebug
	}
	log := log15.New()
	log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(journal, log15.TerminalFormat())))
	return log
}
