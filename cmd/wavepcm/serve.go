package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/wavepcm/internal/server"
	"github.com/ik5/wavepcm/protocol"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recording protocol over a websocket",
	Long: `Start a websocket endpoint where each connection gets its own encoder.

Send JSON text frames ({"command":"init","wavSampleRate":48000,...},
getBuffer, done, close) and binary frames holding one quantum of
little-endian float32 samples, channel after channel. Replies are JSON text
frames; page and postBuffer replies are followed by a binary frame.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		mode, err := protocol.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Addr:   addr,
			Path:   cfg.Server.Path,
			Mode:   mode,
			Logger: slog.Default(),
		})
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
}
