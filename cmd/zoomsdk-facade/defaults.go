package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

type defaultsReport struct {
	Platform   zoomsdk.Platform     `yaml:"platform"`
	ModulePath string               `yaml:"module_path"`
	Config     zoomsdk.EngineConfig `yaml:"config"`
}

func newDefaultsCommand(opts *options) *cobra.Command {
	host := zoomsdk.HostPlatform()
	var platform zoomsdk.Platform

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the engine config an init would resolve to",
		Long:  "defaults resolves the engine init options (the engine config file, if any, over the built-in defaults) for a platform and prints the result as YAML. No native engine is loaded.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			initOpts, err := opts.initOptions()
			if err != nil {
				return err
			}

			// --os/--arch take precedence over --platform and ZOOM_PLATFORM
			if !cmd.Flags().Changed("os") && !cmd.Flags().Changed("arch") {
				if loadOpts, err := opts.cfg.SDK.LoadOptions(); err == nil && loadOpts.Platform != nil {
					platform = *loadOpts.Platform
				}
			}

			report := defaultsReport{
				Platform:   platform,
				ModulePath: zoomsdk.ResolveModulePath(opts.cfg.SDK.ModulePath, platform),
				Config:     zoomsdk.Resolve(initOpts, platform),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&platform.OS, "os", host.OS, "Target OS (GOOS spelling)")
	cmd.Flags().StringVar(&platform.Arch, "arch", host.Arch, "Target architecture (GOARCH spelling)")

	return cmd
}
