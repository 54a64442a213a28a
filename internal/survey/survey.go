// Package survey polls every router in a fleet and totals its traffic to
// find the busiest one.
package survey

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutor-router/internal/client"
	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
)

// RouterTraffic is the total traffic of one router across its interfaces.
type RouterTraffic struct {
	Host    string
	Version model.Version
	Ingress int
	Egress  int
}

func (r RouterTraffic) Total() int {
	return r.Ingress + r.Egress
}

type Report struct {
	Routers     []RouterTraffic
	Unreachable []string
	Failed      map[string]string
}

// Busiest returns the router with the most total traffic; ties go to the
// one polled first.
func (r *Report) Busiest() (RouterTraffic, bool) {
	if len(r.Routers) == 0 {
		return RouterTraffic{}, false
	}
	best := r.Routers[0]
	for _, rt := range r.Routers[1:] {
		if rt.Total() > best.Total() {
			best = rt
		}
	}
	return best, true
}

// Ranked returns the routers sorted by total traffic, busiest first.
func (r *Report) Ranked() []RouterTraffic {
	out := make([]RouterTraffic, len(r.Routers))
	copy(out, r.Routers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total() > out[j].Total()
	})
	return out
}

type config struct {
	clientOpts []client.Option
	tracker    *ProgressTracker
}

type Option func(*config)

func WithClientOptions(opts ...client.Option) Option {
	return func(c *config) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

func WithProgress(t *ProgressTracker) Option {
	return func(c *config) {
		c.tracker = t
	}
}

// Run polls hosts one at a time. Unreachable and failing routers are
// recorded in the report; only context cancellation aborts the run.
func Run(ctx context.Context, req client.Requester, hosts []string, creds model.Credentials, opts ...Option) (*Report, error) {
	cfg := config{tracker: NewProgressTracker()}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.tracker.begin(len(hosts))

	report := &Report{Failed: make(map[string]string)}
	log := logger.WithRunID(uuid.NewString())

	for _, host := range hosts {
		rt, err := poll(ctx, req, host, creds, cfg.clientOpts)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}

		outcome := classify(err)
		switch outcome {
		case OutcomeOK:
			report.Routers = append(report.Routers, rt)
		case OutcomeUnreachable:
			log.Warn("Router unreachable", zap.String("host", host))
			report.Unreachable = append(report.Unreachable, host)
		default:
			log.Warn("Router survey failed", zap.String("host", host), zap.Error(err))
			report.Failed[host] = err.Error()
		}
		cfg.tracker.record(host, outcome)
	}

	if best, ok := report.Busiest(); ok {
		log.Info("Survey complete",
			zap.Int("routers", len(report.Routers)),
			zap.Int("unreachable", len(report.Unreachable)),
			zap.Int("failed", len(report.Failed)),
			zap.String("busiest", best.Host),
			zap.Int("busiest_total", best.Total()),
		)
	} else {
		log.Info("Survey complete with no reachable routers",
			zap.Int("unreachable", len(report.Unreachable)),
			zap.Int("failed", len(report.Failed)),
		)
	}

	return report, nil
}

func poll(ctx context.Context, req client.Requester, host string, creds model.Credentials, opts []client.Option) (RouterTraffic, error) {
	c, err := client.Detect(ctx, req, host, creds, opts...)
	if err != nil {
		return RouterTraffic{}, err
	}
	if err := c.Login(ctx); err != nil {
		return RouterTraffic{}, err
	}
	ifaces, err := c.Interfaces(ctx)
	if err != nil {
		return RouterTraffic{}, err
	}

	sum := model.Totals(ifaces)
	return RouterTraffic{
		Host:    host,
		Version: c.Version(),
		Ingress: sum.Down,
		Egress:  sum.Up,
	}, nil
}
