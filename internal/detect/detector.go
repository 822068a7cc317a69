// Package detect wires rate-feed snapshots into the currency graph and the
// relaxation engines, and reports arbitrage findings.
package detect

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/Mx2468/bellman-ford-arbitrage/internal/config"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/graph"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/infra/log"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/infra/metrics"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/pathfind"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/ratefeed"
)

// Engine names accepted in config. Anything else falls back to the FIFO
// engine, which is the cheaper of the two on sparse graphs.
const (
	EngineClassic = "classic"
	EngineFIFO    = "fifo"
)

// ErrEmptyGraph indicates a scan over rates that produced no vertices.
var ErrEmptyGraph = errors.New("detect: no currencies to scan")

// Report is the outcome of a single scan.
type Report struct {
	Source        string
	Engine        string
	ArbitrageFree bool
	Dist          map[string]float64
	Parent        map[string]string
	Vertices      int
	Edges         int
	Elapsed       time.Duration
}

// Scanner runs detection passes over validated rate maps.
type Scanner struct {
	cfg    config.Config
	logger log.Logger
}

func New(cfg config.Config, logger log.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger}
}

// ScanRates runs one detection pass. Rates are transformed with -log before
// the graph is built, so a trade loop whose rate product exceeds 1 appears as
// a negative cycle. Every scan builds a fresh graph and a fresh engine; the
// engines' weight snapshots make reuse across mutations a contract violation,
// so nothing here is reused.
func (s *Scanner) ScanRates(rates map[graph.Pair]float64) (Report, error) {
	start := time.Now()
	g := graph.New()
	g.BuildFromRates(ratefeed.NegLogWeights(rates))
	if g.VertexCount() == 0 {
		metrics.ScanErrorsTotal.Inc()
		return Report{}, ErrEmptyGraph
	}

	source := strings.ToUpper(s.cfg.Detect.Source)
	if !g.HasVertex(source) {
		// Configured source not in this feed; fall back to the first vertex.
		source = g.Vertices()[0]
	}

	engine := s.cfg.Detect.Engine
	var (
		free   bool
		err    error
		dist   map[string]float64
		parent map[string]string
	)
	switch engine {
	case EngineClassic:
		e := pathfind.NewClassic(g, source)
		free, err = e.Run()
		dist, parent = e.Dist(), e.Parent()
	default:
		engine = EngineFIFO
		e := pathfind.NewFIFO(g, source)
		free, err = e.Run()
		dist, parent = e.Dist(), e.Parent()
	}
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return Report{}, err
	}

	elapsed := time.Since(start)
	metrics.ScansTotal.Inc()
	metrics.ScanLatencyMs.Observe(float64(elapsed.Microseconds()) / 1000.0)
	metrics.GraphVertices.Set(float64(g.VertexCount()))
	metrics.GraphEdges.Set(float64(g.EdgeCount()))
	if !free {
		metrics.NegativeCyclesFoundTotal.Inc()
	}

	s.logger.Info().
		Str("engine", engine).
		Str("source", source).
		Int("vertices", g.VertexCount()).
		Int("edges", g.EdgeCount()).
		Bool("arbitrage_free", free).
		Dur("elapsed", elapsed).
		Msg("scan complete")

	return Report{
		Source:        source,
		Engine:        engine,
		ArbitrageFree: free,
		Dist:          dist,
		Parent:        parent,
		Vertices:      g.VertexCount(),
		Edges:         g.EdgeCount(),
		Elapsed:       elapsed,
	}, nil
}

// ScanSnapshot decodes and validates raw feed JSON, then scans it.
func (s *Scanner) ScanSnapshot(data []byte) (Report, error) {
	snap, err := ratefeed.Decode(data)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return Report{}, err
	}
	rates, err := ratefeed.Parse(snap)
	if err != nil {
		metrics.ScanErrorsTotal.Inc()
		return Report{}, err
	}
	return s.ScanRates(rates)
}

// Run periodically scans the configured feed snapshot file until ctx is
// cancelled. With no feed path configured the worker stays idle; scans then
// only happen through the REST surface.
func (s *Scanner) Run(ctx context.Context) error {
	if s.cfg.Feed.Path == "" {
		s.logger.Info().Msg("no feed path configured; periodic scanning disabled")
		<-ctx.Done()
		return nil
	}
	interval := time.Duration(s.cfg.Feed.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			data, err := os.ReadFile(s.cfg.Feed.Path)
			if err != nil {
				s.logger.Debug().Err(err).Str("path", s.cfg.Feed.Path).Msg("feed snapshot unreadable")
				continue
			}
			if _, err := s.ScanSnapshot(data); err != nil {
				s.logger.Error().Err(err).Msg("scan failed")
			}
		}
	}
}
