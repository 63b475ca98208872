package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/conf"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

var appRoot string

var rootCmd = &cobra.Command{
	Use:          "qirmerge",
	Short:        "Merge quality inspection reports with their certificates",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appRoot, "root", ".", "application root holding config/")
}

// loadCore reads <root>/config/.core.json; the caller owns the returned cancel
func loadCore(ctx context.Context) (*conf.Core, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(ctx)
	core := &conf.Core{}
	if err := core.BaseInit(appRoot, ctx, cancel); err != nil {
		cancel()
		return nil, nil, err
	}
	if core.Version == "" {
		core.Version = version
	}
	return core, cancel, nil
}
