package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/term"
)

var (
	log = logrus.New()

	size      int
	mineCount int
	seed      uint64
	logFile   string
	debug     bool
)

func init() {
	flag.IntVar(&size, "size", 0, "board size (asked for when unset)")
	flag.IntVar(&mineCount, "mines", -1, "number of mines (asked for when unset)")
	flag.Uint64Var(&seed, "seed", 0, "mine placement seed, random when 0")
	flag.StringVar(&logFile, "log-file", "", "write logs to this rotating file")
	flag.BoolVar(&debug, "debug", false, "log every move")
}

// setupLogging keeps the terminal free for the game: logs go to a rotating
// file when one is given and only warnings reach stderr otherwise.
func setupLogging() error {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      log.GetLevel(),
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		log.AddHook(hook)
		log.SetOutput(io.Discard)
	}

	mines.Log = log
	return nil
}

func newRand() *rand.Rand {
	if seed == 0 {
		return mines.NewRand()
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := term.NewConsole(os.Stdin, os.Stdout, log)
	fmt.Println("Welcome to Minesweeper!")

	n, m, err := console.Configure(size, mineCount)
	if err != nil {
		log.WithError(err).Error("unable to read game parameters")
		os.Exit(1)
	}

	board, err := mines.New(n, m, newRand())
	if err != nil {
		log.WithError(err).Error("unable to create board")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{"size": n, "mineCount": m}).Info("game started")

	status, err := console.Play(ctx, board)
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, context.Canceled) {
		fmt.Println()
		log.WithField("status", status.String()).Info("game abandoned")
		return
	}
	if err != nil {
		log.WithError(err).Error("game aborted")
		os.Exit(1)
	}
	log.WithField("status", status.String()).Info("game finished")
}
