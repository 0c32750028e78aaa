package api_test

import (
	"context"
	"sync"

	"github.com/followscope/followscope/internal/graph"
	"github.com/followscope/followscope/internal/models"
)

// mockAssembler implements api.GraphAssembler for testing.
type mockAssembler struct {
	mu    sync.Mutex
	seeds [][]string

	assembleFn func(ctx context.Context, seeds []string) (*models.Dataset, error)
}

func (m *mockAssembler) Assemble(ctx context.Context, seeds []string) (*models.Dataset, error) {
	m.mu.Lock()
	m.seeds = append(m.seeds, seeds)
	m.mu.Unlock()

	return m.assembleFn(ctx, seeds)
}

func (m *mockAssembler) calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([][]string(nil), m.seeds...)
}

// staticLogs implements api.LogSource.
type staticLogs []string

func (s staticLogs) Lines() []string { return s }

// scenarioDataset is alice(10) -> bob(20) -> carol(30).
func scenarioDataset() *models.Dataset {
	nodes := []models.Node{
		{ID: "1", Username: "alice", Timestamp: 10},
		{ID: "2", Username: "bob", Timestamp: 20},
		{ID: "3", Username: "carol", Timestamp: 30},
	}
	links := []models.Link{
		models.NewLink("1", "2", 20),
		models.NewLink("2", "3", 30),
	}

	return &models.Dataset{Nodes: nodes, Links: links, Timestamps: graph.TimestampIndex(nodes, links)}
}

func returning(ds *models.Dataset, err error) *mockAssembler {
	return &mockAssembler{
		assembleFn: func(context.Context, []string) (*models.Dataset, error) {
			return ds, err
		},
	}
}
