package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/IvanMcCauley/Project-Path-Planner-Simulation/server"
)

func newServeCmd(root *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over HTTP",
		Example: `  pathsim serve
  pathsim serve --addr 127.0.0.1:9090 --config pathsim.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			srv, err := server.New(cfg, server.WithLogger(log), server.WithRegistry(reg))
			if err != nil {
				return err
			}

			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address, overrides the config")

	return cmd
}
