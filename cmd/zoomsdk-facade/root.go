package main

import (
	"github.com/spf13/cobra"

	"github.com/qieqieplus/zoomsdk-facade/pkg/config"
	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// options stores global CLI options shared between commands.
type options struct {
	EnvFile      string
	HTTPAddr     string
	LogLevel     string
	LogFormat    string
	SDKPath      string
	Platform     string
	EngineConfig string

	load zoomsdk.Loader
	cfg  *config.Config
}

// newRootCommand constructs the root command. load opens the native engine.
func newRootCommand(load zoomsdk.Loader) *cobra.Command {
	opts := &options{load: load}

	cmd := &cobra.Command{
		Use:          "zoomsdk-facade",
		Short:        "Process-wide facade over the native Zoom meeting SDK",
		Long:         "zoomsdk-facade loads the native Zoom meeting SDK once per process, resolves its init configuration and serves a control API gating capability access on initialization.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.EnvFile)
			if err != nil {
				return err
			}
			opts.applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			log.InitWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			log.Debugf("Configuration loaded (http: %s, sdk path: %q)", cfg.HTTPAddr, cfg.SDK.ModulePath)
			opts.cfg = cfg
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env-file", "", "Path to a .env file filling unset environment variables")
	flags.StringVar(&opts.HTTPAddr, "http", "", "HTTP listen address (overrides HTTP_ADDR)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log format: json or text (overrides LOG_FORMAT)")
	flags.StringVar(&opts.SDKPath, "sdk-path", "", "Directory holding the native module (overrides ZOOM_SDK_PATH)")
	flags.StringVar(&opts.Platform, "platform", "", "Platform as os/arch (overrides ZOOM_PLATFORM)")
	flags.StringVar(&opts.EngineConfig, "engine-config", "", "YAML file with engine init options (overrides ZOOM_ENGINE_CONFIG)")

	cmd.AddCommand(
		newServeCommand(opts),
		newProbeCommand(opts),
		newDefaultsCommand(opts),
	)

	return cmd
}

// applyFlags lets explicitly set flags win over the environment.
func (o *options) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		return cmd.Flags().Changed(name)
	}
	if changed("http") {
		cfg.HTTPAddr = o.HTTPAddr
	}
	if changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = o.LogFormat
	}
	if changed("sdk-path") {
		cfg.SDK.ModulePath = o.SDKPath
	}
	if changed("platform") {
		cfg.SDK.Platform = o.Platform
	}
	if changed("engine-config") {
		cfg.SDK.EngineConfigFile = o.EngineConfig
	}
}

// initOptions returns the configured engine init options, or the zero
// options when no file is configured.
func (o *options) initOptions() (zoomsdk.InitOptions, error) {
	if o.cfg.SDK.EngineConfigFile == "" {
		return zoomsdk.InitOptions{}, nil
	}
	return config.LoadInitOptions(o.cfg.SDK.EngineConfigFile)
}

// facade builds a provider over the configured loader and returns its facade.
func (o *options) facade(facadeOpts ...zoomsdk.FacadeOption) (*zoomsdk.Facade, error) {
	loadOpts, err := o.cfg.SDK.LoadOptions()
	if err != nil {
		return nil, err
	}
	return zoomsdk.NewProvider(o.load, facadeOpts...).Instance(loadOpts)
}
