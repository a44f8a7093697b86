package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// probeReport is printed by the probe command.
type probeReport struct {
	Version      string                `yaml:"version"`
	ModulePath   string                `yaml:"module_path"`
	Platform     zoomsdk.Platform      `yaml:"platform"`
	InitStatus   string                `yaml:"init_status"`
	License      string                `yaml:"rawdata_license"`
	Capabilities map[string]bool       `yaml:"capabilities"`
	CleanUp      string                `yaml:"cleanup_status,omitempty"`
	Config       *zoomsdk.EngineConfig `yaml:"config,omitempty"`
}

func newProbeCommand(opts *options) *cobra.Command {
	var showConfig bool

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Initialize the engine once, report what it grants, then clean up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			initOpts, err := opts.initOptions()
			if err != nil {
				return err
			}

			facade, err := opts.facade()
			if err != nil {
				return err
			}

			report, status := probe(facade, initOpts)
			if !showConfig {
				report.Config = nil
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			if err := enc.Close(); err != nil {
				return err
			}

			if !status.IsSuccess() {
				return fmt.Errorf("engine init failed: %w", status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showConfig, "show-config", false, "Include the resolved engine config in the report")

	return cmd
}

// probe runs one init/cleanup cycle and records capability availability
// while the engine is up.
func probe(facade *zoomsdk.Facade, initOpts zoomsdk.InitOptions) (probeReport, zoomsdk.SDKError) {
	report := probeReport{
		Version:      facade.Version(),
		ModulePath:   facade.ModulePath(),
		Platform:     facade.Platform(),
		Capabilities: make(map[string]bool),
	}

	status := facade.Initialize(initOpts)
	report.InitStatus = status.String()
	if cfg, ok := facade.LastConfig(); ok {
		report.Config = &cfg
	}

	switch has, known := facade.HasRawDataLicense(); {
	case !known:
		report.License = "unknown"
	case has:
		report.License = "granted"
	default:
		report.License = "missing"
	}

	for _, name := range facade.Capabilities() {
		_, ok, err := facade.Acquire(name, zoomsdk.CapabilityOptions{})
		if err != nil {
			log.Warnf("Probe of %s failed: %v", name, err)
		}
		report.Capabilities[string(name)] = ok
	}

	if status.IsSuccess() {
		report.CleanUp = facade.Teardown().String()
	}
	return report, status
}
