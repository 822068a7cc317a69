package rest

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/Mx2468/bellman-ford-arbitrage/internal/detect"
	"github.com/Mx2468/bellman-ford-arbitrage/internal/pathfind"
)

const maxBodyBytes = 1 << 20

type Server struct {
	mux     *http.ServeMux
	scanner *detect.Scanner
}

func New(scanner *detect.Scanner) *Server {
	s := &Server{mux: http.NewServeMux(), scanner: scanner}
	s.mux.HandleFunc("/scan", s.handleScan)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

type scanResponse struct {
	Source        string            `json:"source"`
	Engine        string            `json:"engine"`
	ArbitrageFree bool              `json:"arbitrage_free"`
	Vertices      int               `json:"vertices"`
	Edges         int               `json:"edges"`
	ElapsedMs     float64           `json:"elapsed_ms"`
	Dist          map[string]string `json:"dist"`
	Parent        map[string]string `json:"parent"`
}

// handleScan accepts a rate-feed snapshot body, runs a detection pass and
// returns the verdict. Validation failures map to 400, engine contract
// violations to 500.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	rep, err := s.scanner.ScanSnapshot(body)
	if err != nil {
		if errors.Is(err, pathfind.ErrSnapshotStale) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp := scanResponse{
		Source:        rep.Source,
		Engine:        rep.Engine,
		ArbitrageFree: rep.ArbitrageFree,
		Vertices:      rep.Vertices,
		Edges:         rep.Edges,
		ElapsedMs:     float64(rep.Elapsed.Microseconds()) / 1000.0,
		Dist:          formatDist(rep.Dist),
		Parent:        rep.Parent,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// formatDist renders distances as strings so +Inf (unreachable) survives JSON
// encoding, which has no representation for infinities.
func formatDist(dist map[string]float64) map[string]string {
	out := make(map[string]string, len(dist))
	for v, d := range dist {
		if math.IsInf(d, 1) {
			out[v] = "inf"
			continue
		}
		out[v] = strconv.FormatFloat(d, 'f', -1, 64)
	}
	return out
}
