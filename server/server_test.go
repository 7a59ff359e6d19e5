package server

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/joerivera/rummage/config"
)

func testServer() *Server {
	return New(config.New())
}

func TestSolveExtension(t *testing.T) {
	is := is.New(t)
	resp := testServer().Solve(context.Background(), &SolveRequest{
		Board: []string{"R 5 7"},
		Rack:  "R4 K9",
	})
	is.Equal(resp.Error, "")
	is.True(resp.Found)
	is.Equal(len(resp.Melds), 1)
	is.Equal(resp.Played, []string{"R4"})
}

func TestSolveNoMove(t *testing.T) {
	is := is.New(t)
	resp := testServer().Solve(context.Background(), &SolveRequest{
		Board: []string{"R 5 7"},
		Rack:  "K9 K11",
	})
	is.Equal(resp.Error, "")
	is.True(!resp.Found)
	is.Equal(len(resp.Melds), 0)
}

func TestSolveStrategyOverride(t *testing.T) {
	is := is.New(t)
	resp := testServer().Solve(context.Background(), &SolveRequest{
		Rack:     "B1 B2 B3",
		Strategy: "exhaustive",
		Scorer:   "hightile",
	})
	is.True(resp.Found)
	is.Equal(len(resp.Melds), 1)
}

func TestSolveBadInput(t *testing.T) {
	srv := testServer()

	resp := srv.Solve(context.Background(), &SolveRequest{Rack: "Q5"})
	assert.NotEmpty(t, resp.Error)
	assert.False(t, resp.Found)

	// board lines must already be legal melds
	resp = srv.Solve(context.Background(), &SolveRequest{
		Board: []string{"R1 R2"},
		Rack:  "R4",
	})
	assert.Contains(t, resp.Error, "not a legal meld")

	resp = srv.Solve(context.Background(), &SolveRequest{
		Rack:     "R1 R2 R3",
		Strategy: "psychic",
	})
	assert.NotEmpty(t, resp.Error)
}
