package main

/*------------------------------------------------------------------
 *
 * Purpose:	Main program for selcalrx, a passive SELCAL tone-detection
 *		receiver: listen on a sound card input, decode ICAO SELCAL
 *		bursts, and print/log any valid four-letter code heard.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	selcal "github.com/kg0call/selcalrx/src"
)

func main() {
	var audioDevice = pflag.StringP("audio-device", "d", "", "Audio input device name. Empty selects the system default device.")
	var toneTableFile = pflag.StringP("tone-table", "t", "", "Tone table YAML file. Empty searches the standard locations, falling back to ICAO defaults.")
	var dictionaryFile = pflag.StringP("dictionary", "D", "", "Tab-separated SELCAL registry file. Empty leaves every log line's registration/operator parenthetical empty.")
	var configFile = pflag.StringP("config-file", "c", "", "YAML file overriding detector/tracker/emitter tuning constants.")
	var logFile = pflag.StringP("log-file", "l", "selcal.log", "File that each detected code is prepended to.")
	var logLevel = pflag.StringP("log-level", "L", "info", "Logging level: debug, info, warn, or error.")
	var audioStatsInterval = pflag.IntP("audio-stats-interval", "a", 0, "Audio underrun statistics interval in seconds. 0 to disable.")
	var printAlphabet = pflag.Bool("print-alphabet", false, "Print the resolved tone table and exit.")
	var version = pflag.Bool("version", false, "Print version information and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - a passive ICAO SELCAL tone-detection receiver.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: selcalrx [options]\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *version {
		fmt.Println(selcal.VersionString())
		os.Exit(0)
	}

	logger := selcal.NewLogger(os.Stderr, *logLevel)

	cfg, err := selcal.ApplyOverridesFile(
		selcal.DefaultConfig(*audioDevice, *toneTableFile, *dictionaryFile, *logFile),
		*configFile,
	)
	if err != nil {
		logger.Error("failed to load config file", "error", err)
		os.Exit(1)
	}
	cfg.LogLevel = *logLevel
	cfg.AudioStatsInterval = time.Duration(*audioStatsInterval) * time.Second

	table, err := selcal.LoadToneTableFile(cfg.ToneTablePath, selcal.SampleRate)
	if err != nil {
		logger.Error("failed to load tone table", "error", err)
		os.Exit(1)
	}

	if *printAlphabet {
		printToneTable(table)
		os.Exit(0)
	}

	var dictionary *selcal.Dictionary
	if cfg.DictionaryPath != "" {
		dictionary, err = selcal.LoadDictionaryFile(cfg.DictionaryPath, func(lineNo int, reason string) {
			logger.Warn("skipping malformed dictionary line", "line", lineNo, "reason", reason)
		})
		if err != nil {
			logger.Error("failed to load dictionary", "error", err)
			os.Exit(1)
		}
		logger.Info("loaded dictionary", "entries", dictionary.Len())
	}

	if err := portaudio.Initialize(); err != nil {
		logger.Error("failed to initialize audio subsystem", "error", err)
		os.Exit(1)
	}
	defer portaudio.Terminate()

	ring := selcal.NewRingBuffer(selcal.WindowSamples())

	capture, err := selcal.OpenCapture(cfg.AudioDevice, ring, logger)
	if err != nil {
		logger.Error("failed to open audio capture", "error", err)
		os.Exit(1)
	}

	bank := selcal.NewFilterBank(table, selcal.SampleRate)
	detector := selcal.NewPairDetector(table, bank, cfg.PairDetector)
	tracker := selcal.NewPairTracker(cfg.PairTracker)
	emitter := selcal.NewEmitter(cfg.Emitter, dictionary, logger)
	runner := selcal.NewRunner(ring, detector, tracker, emitter, logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := capture.Start(ctx); err != nil {
		logger.Error("failed to start audio capture", "error", err)
		os.Exit(1)
	}

	logger.Info("listening for SELCAL", "device", cfg.AudioDevice, "sample_rate", selcal.SampleRate, "letters", table.Len())
	entryNoun := selcal.IfThenElse(dictionaryCount(dictionary) == 1, "entry", "entries")
	fmt.Printf("selcalrx listening (%d-letter alphabet, %d dictionary %s)\n", table.Len(), dictionaryCount(dictionary), entryNoun)

	if cfg.AudioStatsInterval > 0 {
		go reportAudioStats(ctx, capture, logger, cfg.AudioStatsInterval)
	}

	runner.Run(ctx)

	logger.Info("shutting down")
}

func printToneTable(table *selcal.ToneTable) {
	for _, l := range table.Letters() {
		fmt.Printf("%c\t%.1f\n", l, table.FrequencyOf(l))
	}
}

func dictionaryCount(d *selcal.Dictionary) int {
	if d == nil {
		return 0
	}
	return d.Len()
}

func reportAudioStats(ctx context.Context, capture *selcal.Capture, logger selcal.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info("audio stats", "underruns", capture.Underruns())
		}
	}
}
