package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the tower over SSH",
	Long: `Runs an SSH server. Every connection gets its own menu and runs,
and all connections share this server's scoreboard database.

Without --host-key an ed25519 key is created at ~/.skytower/host_key on
first start and reused afterwards.

  skytower serve
  skytower serve --ssh :2222 --host-key ./host_key

Players join with: ssh -p 23234 <host>`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addTowerFlags(serveCmd)
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", ":23234", "listen address")
	f.StringVar(&flagHostKey, "host-key", "", "host key file (generated when empty)")
	f.IntVar(&flagIdleTimeout, "idle-timeout", 30, "minutes of inactivity before a session is dropped")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	applyTowerOptions()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		FPS:         flagFPS,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "skytower listening on %s (ctrl+c stops)\n", server.Addr())
	return server.ListenAndServe()
}
