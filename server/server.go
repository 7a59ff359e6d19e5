// Package server exposes the solver over a websocket, so board editors and
// game frontends can ask for moves without linking the engine. One request
// message in, one response out; positions are expressed in the same text
// shorthand the shell uses.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/config"
	"github.com/joerivera/rummage/game"
	"github.com/joerivera/rummage/meld"
	"github.com/joerivera/rummage/solver"
	"github.com/joerivera/rummage/tiles"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SolveRequest is one position to solve. Board holds one shorthand line
// per meld; Rack is a single shorthand line.
type SolveRequest struct {
	Board    []string `json:"board"`
	Rack     string   `json:"rack"`
	Strategy string   `json:"strategy,omitempty"`
	Scorer   string   `json:"scorer,omitempty"`
}

// SolveResponse carries the proposed board, or found=false for no move.
type SolveResponse struct {
	Found  bool     `json:"found"`
	Melds  []string `json:"melds,omitempty"`
	Played []string `json:"played,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type Server struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// ListenAndServe blocks serving /ws and /health on the configured address.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ws", s.wsHandler)
	addr := s.cfg.GetString("ws-address")
	log.Info().Str("addr", addr).Msg("solve service listening")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	for {
		var req SolveRequest
		if err := ws.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("client gone")
			}
			return
		}
		resp := s.Solve(r.Context(), &req)
		if err := ws.WriteJSON(resp); err != nil {
			log.Debug().Err(err).Msg("write failed")
			return
		}
	}
}

// Solve parses and solves one request. Parse failures and engine errors
// come back inside the response rather than closing the socket.
func (s *Server) Solve(ctx context.Context, req *SolveRequest) *SolveResponse {
	board := game.NewBoard()
	for _, line := range req.Board {
		ts, err := tiles.ParseLine(line)
		if err != nil {
			return &SolveResponse{Error: err.Error()}
		}
		m := meld.New(ts...)
		if !m.Valid() {
			return &SolveResponse{Error: "not a legal meld: " + m.String()}
		}
		board.AddMeld(m)
	}
	rackTiles, err := tiles.ParseLine(req.Rack)
	if err != nil {
		return &SolveResponse{Error: err.Error()}
	}
	rack := game.NewRack(rackTiles)

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.cfg.GetString("solver-strategy")
	}
	scorer := req.Scorer
	if scorer == "" {
		scorer = s.cfg.GetString("solver-scorer")
	}
	sv, err := solver.FromOptions(strategy, scorer, s.cfg.GetDuration("exhaustive-budget"))
	if err != nil {
		return &SolveResponse{Error: err.Error()}
	}

	melds, err := sv.FindBestMove(ctx, rack, board)
	if err != nil {
		return &SolveResponse{Error: err.Error()}
	}
	if melds == nil {
		return &SolveResponse{Found: false}
	}

	resp := &SolveResponse{Found: true}
	for _, m := range melds {
		resp.Melds = append(resp.Melds, m.String())
	}
	for _, t := range solver.PlayedFromRack(board, melds) {
		resp.Played = append(resp.Played, t.String())
	}
	return resp
}
