package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/api"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/conf"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/sec"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/servers"
	"github.com/veenu-wootz/qualityinspectionreport-vmerge/throttle"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merge API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		core, cancel, err := loadCore(cmd.Context())
		if err != nil {
			return err
		}
		defer cancel()
		defer core.ResourceCleanUp()

		core.PrepareThrottleBucketStore()
		if err = core.PrepareAuditStore(); err != nil {
			return err
		}
		core.ListenShutdownSignals()
		if err = core.StartServices(); err != nil {
			return err
		}

		server := &http.Server{
			Addr:              core.Listen,
			Handler:           api.NewRouter(newHandler(core), guardsFor(core)),
			ReadHeaderTimeout: 10 * time.Second,
		}
		listener, err := net.Listen("tcp", server.Addr)
		if err != nil {
			core.StopServices()
			return fmt.Errorf("listen %s: %w", server.Addr, err)
		}
		if err = servers.Serve(core.RootCtx, server, listener, core.AppName, core.StopServices, shutdownTimeout); err != nil {
			return err
		}
		return core.WaitServicesDone()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newHandler(core *conf.Core) *api.Handler {
	return &api.Handler{
		AppName: core.AppName,
		Version: core.Version,
		Merger:  core.NewMerger(),
		Audit:   core.AuditStore,
	}
}

func guardsFor(core *conf.Core) api.Guards {
	var guards api.Guards
	if core.Auth.JWTSecret != "" {
		guards.Auth = &sec.BearerAuthWrapper{Secret: []byte(core.Auth.JWTSecret), Issuer: core.Auth.Issuer}
	} else {
		log.Println("[WARN] auth.jwt_secret not set. /merge is open to anyone")
	}
	if core.ThrottleBucketStore != nil {
		guards.Throttle = &throttle.ClientIPWrapper{Store: core.ThrottleBucketStore, GroupID: conf.ThrottleGroupMerge}
	}
	return guards
}
