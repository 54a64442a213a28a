package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tutor-router/internal/client"
	"tutor-router/internal/config"
	"tutor-router/internal/device"
	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	"tutor-router/internal/scenario"
	"tutor-router/internal/survey"
	appErrors "tutor-router/pkg/errors"
)

// app is the state shared by subcommands once the root has loaded config.
type app struct {
	cfg   *config.Config
	fleet *scenario.Scenario
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "tutor-router",
		Short:         "Simulated router fleet mid firmware rollout",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("scenario", scenario.NameAllV1, "fleet builder: "+strings.Join(scenario.Names(), ", "))
	flags.Int("size", scenario.DefaultFleetSize, "number of routers in the fleet")
	flags.Uint64("seed", 0, "random seed, 0 for a fresh one")
	flags.Float64("healthy-ratio", device.DefaultHealthyRatio, "share of routers that are healthy")

	for key, flag := range map[string]string{
		"SCENARIO":            "scenario",
		"FLEET_SIZE":          "size",
		"FLEET_SEED":          "seed",
		"FLEET_HEALTHY_RATIO": "healthy-ratio",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newHostsCommand(a),
		newRequestCommand(a),
		newSurveyCommand(a),
	)

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	opts := []device.FactoryOption{device.WithHealthyRatio(cfg.Fleet.HealthyRatio)}
	if cfg.Fleet.Seed != 0 {
		opts = append(opts, device.WithSeed(cfg.Fleet.Seed))
	}

	fleet, err := scenario.Build(cfg.Fleet.Scenario, device.NewFactory(opts...), cfg.Fleet.Size)
	if err != nil {
		return err
	}

	logger.Info("Fleet ready",
		zap.String("environment", cfg.Environment),
		zap.String("scenario", fleet.Name()),
		zap.Int("routers", fleet.Len()),
		zap.Uint64("seed", cfg.Fleet.Seed),
	)

	a.cfg = cfg
	a.fleet = fleet
	return nil
}

func newHostsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "List the routers in the fleet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HOST\tFIRMWARE")
			for _, h := range a.fleet.Hosts() {
				d, _ := a.fleet.Device(h)
				fmt.Fprintf(w, "%s\t%s\n", h, d.Version())
			}
			return w.Flush()
		},
	}
}

func newRequestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "request HOST METHOD PATH [HEADER=VALUE...]",
		Short: "Send one request to a router",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := parseHeaders(args[3:])
			if err != nil {
				return err
			}

			resp, err := a.fleet.Request(args[0], args[1], args[2], headers)
			if errors.Is(err, appErrors.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "unreachable: %v\n", err)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", resp.StatusCode, resp.Body)
			return nil
		},
	}
}

func newSurveyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "survey",
		Short: "Log in to every router and find the busiest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			progress := survey.NewProgressTracker()
			progress.OnChange(func(p survey.Progress) {
				fmt.Fprintf(cmd.ErrOrStderr(), "polled %d/%d %s: %s\n", p.Polled, p.Total, p.LastHost, p.LastOutcome)
			})

			opts := []survey.Option{survey.WithProgress(progress)}
			if rps := a.cfg.Survey.RequestsPerSecond; rps > 0 {
				limiter := rate.NewLimiter(rate.Limit(rps), a.cfg.Survey.Burst)
				opts = append(opts, survey.WithClientOptions(client.WithRateLimit(limiter)))
			}

			report, err := survey.Run(cmd.Context(), a.fleet, a.fleet.Hosts(), a.cfg.Router.Credentials, opts...)
			if err != nil {
				return err
			}

			return printReport(cmd, report)
		},
	}
}

func printReport(cmd *cobra.Command, report *survey.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HOST\tFIRMWARE\tINGRESS\tEGRESS\tTOTAL")
	for _, rt := range report.Ranked() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", rt.Host, rt.Version, rt.Ingress, rt.Egress, rt.Total())
	}
	for _, h := range report.Unreachable {
		fmt.Fprintf(w, "%s\t-\tunreachable\t\t\n", h)
	}
	for h, msg := range report.Failed {
		fmt.Fprintf(w, "%s\t-\tfailed: %s\t\t\n", h, msg)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := report.Busiest(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "\nbusiest: %s (%d)\n", best.Host, best.Total())
	}
	return nil
}

// parseHeaders turns KEY=VALUE arguments into request headers.
func parseHeaders(args []string) (model.Headers, error) {
	if len(args) == 0 {
		return nil, nil
	}
	headers := make(model.Headers, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("header %q: want KEY=VALUE", arg)
		}
		headers[key] = val
	}
	return headers, nil
}
