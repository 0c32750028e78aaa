// Package service assembles follow graphs from the Farcaster upstream.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/followscope/followscope/internal/epoch"
	"github.com/followscope/followscope/internal/farcaster"
	"github.com/followscope/followscope/internal/graph"
	"github.com/followscope/followscope/internal/metrics"
	"github.com/followscope/followscope/internal/models"
)

// Assembly defaults.
const (
	DefaultConcurrency     = 4
	DefaultAssembleTimeout = 2 * time.Minute
	DefaultMaxNodes        = 2000
)

// Upstream is the Farcaster data source GraphService depends on.
type Upstream interface {
	LookupFID(ctx context.Context, username string) (uint64, error)
	ProfilePicture(ctx context.Context, fid uint64) (string, error)
	Follows(ctx context.Context, fid uint64) ([]farcaster.Follow, error)
}

// GraphService turns seed usernames into a timestamped follow graph.
type GraphService struct {
	upstream    Upstream
	log         *logrus.Logger
	concurrency int
	timeout     time.Duration
	maxNodes    int
	now         func() time.Time
	flights     singleflight.Group
}

// Option configures a GraphService.
type Option func(*GraphService)

// WithAssembleTimeout bounds one shared assembly, independent of the callers
// waiting on it.
func WithAssembleTimeout(d time.Duration) Option {
	return func(s *GraphService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxNodes caps the number of nodes an assembled graph may hold.
func WithMaxNodes(n int) Option {
	return func(s *GraphService) {
		if n > 0 {
			s.maxNodes = n
		}
	}
}

// NewGraphService creates a GraphService. concurrency <= 0 uses DefaultConcurrency.
func NewGraphService(upstream Upstream, log *logrus.Logger, concurrency int, opts ...Option) *GraphService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	s := &GraphService{
		upstream:    upstream,
		log:         log,
		concurrency: concurrency,
		timeout:     DefaultAssembleTimeout,
		maxNodes:    DefaultMaxNodes,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	return s
}

// seedResult is what one seed contributes to the graph.
type seedResult struct {
	username string
	fid      uint64
	avatar   string
	follows  []farcaster.Follow
	resolved bool
}

// Assemble fetches every seed's profile and follow list and builds the full
// dataset. Identical concurrent requests share one upstream fetch; the
// returned dataset must be treated as read-only.
//
// The shared fetch runs detached from any single caller and is bounded by
// the assembly timeout. Each caller stops waiting when its own ctx ends.
func (s *GraphService) Assemble(ctx context.Context, seeds []string) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.Join(seeds, ",")

	ch := s.flights.DoChan(key, func() (any, error) {
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		return s.assemble(actx, seeds)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		if res.Shared {
			s.log.WithField("seeds", key).Debug("graph.assemble shared with concurrent request")
		}

		return res.Val.(*models.Dataset), nil
	}
}

func (s *GraphService) assemble(ctx context.Context, seeds []string) (*models.Dataset, error) {
	start := time.Now()

	s.log.WithFields(logrus.Fields{
		"seeds": seeds,
	}).Info("assembling follow graph")

	results := make([]seedResult, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, username := range seeds {
		g.Go(func() error {
			res, err := s.fetchSeed(gctx, username)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds, err := s.build(results)
	if err != nil {
		return nil, err
	}

	metrics.GraphNodes.Observe(float64(len(ds.Nodes)))
	metrics.GraphEdges.Observe(float64(len(ds.Links)))

	s.log.WithFields(logrus.Fields{
		"nodes":    len(ds.Nodes),
		"links":    len(ds.Links),
		"duration": time.Since(start).String(),
	}).Info("created follow graph")

	return ds, nil
}

// fetchSeed resolves one username. Lookup and fetch failures are logged and
// the seed is skipped; only cancellation and an open circuit abort the
// whole assembly.
func (s *GraphService) fetchSeed(ctx context.Context, username string) (seedResult, error) {
	res := seedResult{username: username}
	log := s.log.WithField("username", username)

	fid, err := s.upstream.LookupFID(ctx, username)
	if err != nil {
		if fatal(ctx, err) {
			return res, err
		}

		log.WithError(err).Error("failed to resolve fid")

		return res, nil
	}

	res.fid = fid
	res.resolved = true
	log = log.WithField("fid", fid)

	avatar, err := s.upstream.ProfilePicture(ctx, fid)
	if err != nil {
		if fatal(ctx, err) {
			return res, err
		}

		log.WithError(err).Warn("failed to retrieve avatar")
	}

	res.avatar = avatar

	follows, err := s.upstream.Follows(ctx, fid)
	if err != nil {
		if fatal(ctx, err) {
			return res, err
		}

		log.WithError(err).Error("failed to retrieve follow info")

		return res, nil
	}

	res.follows = follows
	log.WithField("follows", len(follows)).Info("fetched follow list")

	return res, nil
}

func fatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, farcaster.ErrUnavailable)
}

func countNodes(results []seedResult, links []models.Link) int {
	ids := make(map[models.NodeID]struct{}, len(results))

	for i := range results {
		if results[i].resolved {
			ids[models.FIDNodeID(results[i].fid)] = struct{}{}
		}
	}

	for i := range links {
		ids[links[i].Target.ID()] = struct{}{}
	}

	return len(ids)
}

// build lays out nodes and links. Links are ordered by time (stable within a
// seed). Seeds come first in request order and appear at the earliest
// timestamp of the dataset; every other account appears when it is first
// followed, so no link predates either endpoint.
func (s *GraphService) build(results []seedResult) (*models.Dataset, error) {
	var links []models.Link

	resolved := 0

	for i := range results {
		r := &results[i]
		if !r.resolved {
			continue
		}

		resolved++

		source := models.FIDNodeID(r.fid)
		for _, f := range r.follows {
			links = append(links, models.NewLink(source, models.FIDNodeID(f.TargetFID), epoch.Normalize(f.Timestamp)))
		}
	}

	if resolved == 0 {
		return nil, models.ErrNoSeedsResolved
	}

	// Targets are distinct link endpoints, so this bounds the node count
	// before any node is materialised.
	if n := countNodes(results, links); n > s.maxNodes {
		return nil, fmt.Errorf("%w: %d nodes, limit %d", models.ErrGraphTooLarge, n, s.maxNodes)
	}

	slices.SortStableFunc(links, func(a, b models.Link) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})

	origin := s.now().Unix()
	if len(links) > 0 {
		origin = links[0].Timestamp
	}

	nodes := make([]models.Node, 0, resolved+len(links))
	seen := make(map[models.NodeID]bool, cap(nodes))

	for i := range results {
		r := &results[i]
		id := models.FIDNodeID(r.fid)

		if !r.resolved || seen[id] {
			continue
		}

		seen[id] = true
		nodes = append(nodes, models.Node{ID: id, Username: r.username, AvatarURL: r.avatar, Timestamp: origin})
	}

	for i := range links {
		id := links[i].Target.ID()
		if seen[id] {
			continue
		}

		seen[id] = true
		nodes = append(nodes, models.Node{ID: id, Username: fmt.Sprintf("fid:%s", id), Timestamp: links[i].Timestamp})
	}

	if links == nil {
		links = []models.Link{}
	}

	return &models.Dataset{
		Nodes:      nodes,
		Links:      links,
		Timestamps: graph.TimestampIndex(nodes, links),
	}, nil
}
