package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"fftranscode/internal/config"
	"fftranscode/internal/ffmpeg"
	"fftranscode/internal/history"
	"fftranscode/internal/logging"
	"fftranscode/internal/preflight"
	"fftranscode/internal/supervisor"
)

type transcodeFlags struct {
	inputFile     string
	outputFile    string
	verbose       bool
	notNice       bool
	interactive   bool
	codec         string
	profile       string
	level         string
	preset        string
	crf           string
	tune          string
	extra         string
	subprocessOut string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	cctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "fftranscode",
		Short:         "Supervise a single ffmpeg transcode run",
		Long:          "fftranscode builds an ffmpeg invocation from configuration and flags,\nruns it under supervision, and propagates the engine's exit code.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to the configuration file")
	flags := bindTranscodeFlags(rootCmd.Flags())
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTranscode(cmd, cctx, flags)
	}

	rootCmd.AddCommand(newConfigCommand(cctx))
	rootCmd.AddCommand(newCheckCommand(cctx))
	rootCmd.AddCommand(newHistoryCommand(cctx))
	return rootCmd
}

func bindTranscodeFlags(fl *pflag.FlagSet) *transcodeFlags {
	flags := &transcodeFlags{}
	fl.StringVarP(&flags.inputFile, "input-file", "i", "", "Input media file (required)")
	fl.StringVarP(&flags.outputFile, "output-file", "o", "", "Output file; derived from the input and codec options when unset")
	fl.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	fl.BoolVarP(&flags.notNice, "not-nice", "N", false, "Run the engine at normal scheduler priority")
	fl.BoolVarP(&flags.interactive, "interactive", "I", false, "Leave the engine's stdin connected")
	fl.StringVarP(&flags.codec, "codec", "c", "", "Video codec library")
	fl.StringVarP(&flags.profile, "profile", "p", "", "Encoder profile")
	fl.StringVarP(&flags.level, "level", "l", "", "Encoder level")
	fl.StringVarP(&flags.preset, "preset", "r", "", "Encoder preset")
	fl.StringVarP(&flags.crf, "crf", "f", "", "Constant rate factor")
	fl.StringVarP(&flags.tune, "tune", "t", "", "x264 tune setting")
	fl.StringVarP(&flags.extra, "extra", "e", "", "Extra engine arguments, whitespace separated")
	fl.StringVarP(&flags.subprocessOut, "subprocess-out-file", "s", "", "File for engine output (\"-\" for stdout)")
	return flags
}

// resolveRequest overlays flags the user actually set on the configured
// defaults. Unset flags never clobber configuration values.
func resolveRequest(cfg *config.Config, fl *pflag.FlagSet, flags *transcodeFlags) ffmpeg.Request {
	pick := func(name, flagValue, cfgValue string) string {
		if fl.Changed(name) {
			return flagValue
		}
		return cfgValue
	}

	niced := cfg.Run.Niced
	if flags.notNice {
		niced = false
	}
	interactive := cfg.Run.Interactive
	if fl.Changed("interactive") {
		interactive = flags.interactive
	}

	return ffmpeg.Request{
		InputFile:     flags.inputFile,
		OutputFile:    flags.outputFile,
		Codec:         pick("codec", flags.codec, cfg.Codec.Library),
		Profile:       pick("profile", flags.profile, cfg.Codec.Profile),
		Level:         pick("level", flags.level, cfg.Codec.Level),
		Preset:        pick("preset", flags.preset, cfg.Codec.Preset),
		CRF:           pick("crf", flags.crf, cfg.Codec.CRF),
		Tune:          pick("tune", flags.tune, cfg.Codec.Tune),
		Extra:         pick("extra", flags.extra, cfg.Codec.Extra),
		Niced:         niced,
		Interactive:   interactive,
		SubprocessOut: pick("subprocess-out-file", flags.subprocessOut, cfg.Run.SubprocessOut),
	}
}

func runTranscode(cmd *cobra.Command, cctx *commandContext, flags *transcodeFlags) error {
	if strings.TrimSpace(flags.inputFile) == "" {
		return errMissingInput
	}

	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", filepath.Join(cfg.Paths.LogDir, "fftranscode.log")},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	req := resolveRequest(cfg, cmd.Flags(), flags)
	logger.Debug("resolved transcode request", logging.Any("request", req))

	if result := preflight.CheckDiskSpace(filepath.Dir(req.InputFile), 0); !result.Passed {
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		// The journal is best effort; the transcode proceeds without it.
		logger.Warn("run history unavailable", logging.Error(err))
		store = nil
	}
	defer store.Close()

	sup := supervisor.New(req,
		supervisor.WithLogger(logger),
		supervisor.WithHistory(store))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := sup.Run(ctx)
	if err != nil {
		// The child must never outlive the supervisor, whatever the failure.
		sup.Cancel(false)
		return err
	}
	if code != 0 {
		return &engineExitError{code: code}
	}
	return nil
}
