package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/irbridge"
	"github.com/bft-labs/irbridge/internal/cliconfig"
	"github.com/bft-labs/irbridge/pkg/log"
)

const helpDescription = `
Turn this machine into a Bluetooth LE infrared blaster.

Phones running an IR remote app connect to the "IR Bridge" peripheral and
write raw timing frames; each frame is decoded and sent through the LIRC
transmitter at 38 kHz.

  - One transmission at a time, in arrival order, without drops.
  - Press esc, backspace or q to leave; ctrl+c quits immediately.
  - Configure via file (~/.irbridge/config.toml), IRBRIDGE_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  irbridge
  irbridge --display headless --status-addr 127.0.0.1:8088
  irbridge --lirc-device /dev/lirc1 --device-name "Living Room" --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "irbridge",
		Short:         "Forward infrared frames received over Bluetooth LE to a LIRC transmitter",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides the file; explicit flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			out, closeLog, err := cliconfig.OpenLogOutput(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			zl, err := cliconfig.NewLogger(out, cfg.LogLevel)
			if err != nil {
				return err
			}
			zl.Info().Interface("config", cfg).Msg("configuration")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					zl.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
					cancel()
				case <-ctx.Done():
				}
			}()

			return irbridge.Run(ctx, cfg, irbridge.WithLogger(log.NewZerologAdapterWithLogger(zl)))
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.irbridge/config.toml)")
	root.Flags().StringVar(&cfg.DeviceName, "device-name", cfg.DeviceName, "Bluetooth LE local name to advertise")
	root.Flags().StringVar(&cfg.HCI, "hci", cfg.HCI, "Bluetooth adapter checked before start")
	root.Flags().BoolVar(&cfg.SkipProbe, "skip-probe", cfg.SkipProbe, "skip the BlueZ adapter check")

	root.Flags().IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "receive buffer size hint in bytes")
	root.Flags().IntVar(&cfg.QueueDepth, "queue-depth", cfg.QueueDepth, "decoded frames that may wait behind the one transmitting")
	if err := root.Flags().MarkHidden("queue-depth"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to hide queue-depth flag: %v\n", err)
	}
	root.Flags().StringVar(&cfg.LIRCDevice, "lirc-device", cfg.LIRCDevice, "LIRC transmitter device node")

	root.Flags().StringVar(&cfg.Display, "display", cfg.Display, "display mode: tui or headless")
	root.Flags().StringVar(&cfg.StatusAddr, "status-addr", cfg.StatusAddr, "serve JSON status on this address (disabled when empty)")
	root.Flags().DurationVar(&cfg.StatusInterval, "status-interval", cfg.StatusInterval, "headless status log interval")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (default: $TMPDIR/irbridge.log with the tui display)")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "bound on each shutdown wait")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "irbridge: %v\n", err)
		os.Exit(1)
	}
}
