package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind            string
	port            int
	baseURL         string
	databaseURL     string
	presenceTimeout time.Duration
	sweepInterval   time.Duration
	verbose         bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.presenceTimeout <= 0 {
		return fmt.Errorf("presence-timeout must be positive: %s", c.presenceTimeout)
	}
	return nil
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.bind, c.port)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SPECTRUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "spectrum-server",
		Short:         "Shared-state backend for the spectrum guessing party game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SPECTRUM_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SPECTRUM_PORT)")
	fs.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080/rooms", "public join URL prefix encoded into room QR codes (env: SPECTRUM_BASE_URL)")
	fs.StringVar(&cfg.databaseURL, "database-url", "", "postgres DSN for room persistence; empty runs memory-only (env: SPECTRUM_DATABASE_URL)")
	fs.DurationVar(&cfg.presenceTimeout, "presence-timeout", 2*time.Minute, "time before silent players are removed from their room (env: SPECTRUM_PRESENCE_TIMEOUT)")
	fs.DurationVar(&cfg.sweepInterval, "sweep-interval", 15*time.Second, "how often rooms sweep for stale players (env: SPECTRUM_SWEEP_INTERVAL)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "development logging (env: SPECTRUM_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}
