package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ik5/wavepcm/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg          *config.Config
	cfgFile      string
	verboseLevel int
)

var rootCmd = &cobra.Command{
	Use:   "wavepcm",
	Short: "Encode floating-point audio to PCM WAVE",
	Long: `wavepcm quantizes floating-point audio to 8, 16, 24 or 32-bit PCM and
writes it as a canonical RIFF/WAVE file.

It can re-encode WAV, MP3, Ogg Vorbis and AIFF files, or serve the recording
protocol (init, getBuffer, done, close) over a websocket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config init must work without a valid config.
		if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			setupLogging(verboseLevel, slog.LevelInfo)
			return nil
		}

		path := cfgFile
		if path == "" {
			if def := defaultConfigPath(); fileExists(def) {
				path = def
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, _ := cfg.SlogLevel()
		setupLogging(verboseLevel, level)

		if path != "" {
			slog.Debug("config loaded", "path", path)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wavepcm.yaml)")
	rootCmd.PersistentFlags().IntVarP(&verboseLevel, "verbose", "v", 0, "verbose level: 0=config log.level, 1+=debug")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging configures slog: any verbose level forces debug, otherwise
// the configured level applies.
func setupLogging(verbose int, configured slog.Level) {
	level := configured
	if verbose > 0 {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	handler := slog.NewTextHandler(os.Stderr, opts)
	slog.SetDefault(slog.New(handler))
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "wavepcm.yaml")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
