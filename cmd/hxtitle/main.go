package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pthm/hxtitle"
	"github.com/pthm/hxtitle/components"
	"github.com/pthm/hxtitle/internal/bootstrap"
	"github.com/pthm/hxtitle/internal/config"
	"github.com/pthm/hxtitle/internal/server"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = []struct {
	flag, key, usage string
}{
	{"addr", config.KeyAddr, "listen address"},
	{"key", config.KeyKey, "props signing key (random when empty)"},
	{"variant", config.KeyVariant, "mount variant: eager or lazy"},
	{"style", config.KeyStyle, "title style key, empty for unstyled"},
	{"target", config.KeyTarget, "id of the attachment point in the host page"},
	{"page", config.KeyPage, "path to a custom host page (built-in when empty)"},
	{"htmx-url", config.KeyHTMXURL, "script URL HTMX is loaded from"},
	{"log-level", config.KeyLogLevel, "log level"},
	{"text", config.KeyText, "title text"},
}

func newRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:           "hxtitle",
		Short:         "hxtitle - mount a server-rendered title into a host page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			logger.SetLogLevel(v.GetString(config.KeyLogLevel))
			return nil
		},
	}

	flags := root.PersistentFlags()
	for _, f := range flagKeys {
		flags.String(f.flag, config.Defaults[f.key], f.usage)
		if err := v.BindPFlag(f.key, flags.Lookup(f.flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		newServeCmd(v),
		newRenderCmd(v),
		newPreviewCmd(v),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Mount the title and serve the page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := server.New(ctx, cfg)
			if err != nil {
				logger.LogErr(err, "Bootstrap failed")
				return err
			}
			return s.Run(ctx)
		},
	}
}

func newRenderCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the mounted page to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			// Lazy output carries signed URLs; a random key would leave them
			// unverifiable by any server.
			if cfg.Lazy() && cfg.Key == "" {
				return serr.New("render --variant lazy needs --key (or " + config.EnvPrefix + "_KEY) matching the serving instance")
			}
			key, err := cfg.KeyBytes()
			if err != nil {
				return err
			}

			app, err := bootstrap.Boot(cmd.Context(), cfg, hxtitle.NewRegistry(key))
			if err != nil {
				logger.LogErr(err, "Bootstrap failed")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), app.Page)
			return err
		},
	}
}

func newPreviewCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Print the title to the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if cfg.Style != "" {
				if _, err := components.TitleStyles.Lookup(cfg.Style); err != nil {
					return serr.Wrap(err, "unknown style "+cfg.Style)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(),
				components.Terminal(components.TitleProps{Text: cfg.Text}, cfg.Style))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hxtitle version %s\n", version)
		},
	}
}
