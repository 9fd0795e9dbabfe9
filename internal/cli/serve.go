package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port       string
		host       string
		driver     string
		storePath  string
		catalogDir string
		dev        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the device and its HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("storage") {
				cfg.Storage.Driver = driver
			}
			if flags.Changed("storage-path") {
				cfg.Storage.Path = storePath
			}
			if flags.Changed("catalog-dir") {
				cfg.Catalog.Dir = catalogDir
			}
			if flags.Changed("dev") {
				cfg.Logging.Development = dev
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&port, "port", "p", "8000", "HTTP port")
	flags.StringVar(&host, "host", "0.0.0.0", "HTTP bind address")
	flags.StringVar(&driver, "storage", "sqlite", "settings store: memory or sqlite")
	flags.StringVar(&storePath, "storage-path", "", "sqlite database path")
	flags.StringVar(&catalogDir, "catalog-dir", "", "directory of extra app definitions")
	flags.BoolVar(&dev, "dev", false, "development logging")
	return cmd
}

// contextOrBackground keeps commands runnable outside ExecuteContext
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
