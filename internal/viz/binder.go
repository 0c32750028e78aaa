// Package viz binds a follow-graph dataset to a time cursor and produces the
// view model the viewer renders.
package viz

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/followscope/followscope/internal/epoch"
	"github.com/followscope/followscope/internal/graph"
	"github.com/followscope/followscope/internal/metrics"
	"github.com/followscope/followscope/internal/models"
)

// Node radius bounds in viewer pixels.
const (
	MinRadius = 5.0
	MaxRadius = 30.0
)

// Position is a pinned viewer position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewNode is a node as drawn at the current cursor.
type ViewNode struct {
	ID        models.NodeID `json:"id"`
	Label     string        `json:"label"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Timestamp int64         `json:"timestamp"`
	Degree    int           `json:"degree"`
	Radius    float64       `json:"radius"`
	Pin       *Position     `json:"pin,omitempty"`
}

// ViewLink is an edge as drawn at the current cursor.
type ViewLink struct {
	Source    models.NodeID `json:"source"`
	Target    models.NodeID `json:"target"`
	Timestamp int64         `json:"timestamp"`
}

// Heatmap is the adjacency matrix with its axis labels.
type Heatmap struct {
	Labels []string `json:"labels"`
	Cells  [][]int  `json:"cells"`
}

// View is everything the viewer needs to draw one cursor position.
type View struct {
	Cutoff      int64           `json:"cutoff"`
	CutoffLabel string          `json:"cutoff_label"`
	Nodes       []ViewNode      `json:"nodes"`
	Links       []ViewLink      `json:"links"`
	Metrics     *models.Metrics `json:"metrics"`
	Heatmap     *Heatmap        `json:"heatmap"`
}

// Binder holds a read-only dataset, the current cursor and pinned positions.
// It never mutates the dataset.
type Binder struct {
	mu      sync.Mutex
	dataset *models.Dataset
	known   map[models.NodeID]bool
	pins    map[models.NodeID]Position
	cursor  int64
	current *View
}

// NewBinder binds ds. The cursor starts at the latest timestamp.
func NewBinder(ds *models.Dataset) *Binder {
	if ds == nil {
		ds = &models.Dataset{}
	}

	known := make(map[models.NodeID]bool, len(ds.Nodes))
	for i := range ds.Nodes {
		known[ds.Nodes[i].ID] = true
	}

	return &Binder{
		dataset: ds,
		known:   known,
		pins:    make(map[models.NodeID]Position),
		cursor:  graph.Latest(ds.Timestamps),
	}
}

// Dataset returns the bound dataset.
func (b *Binder) Dataset() *models.Dataset {
	return b.dataset
}

// Steps returns the selectable cursor positions.
func (b *Binder) Steps() []int64 {
	return b.dataset.Timestamps
}

// Cursor reports the current cutoff.
func (b *Binder) Cursor() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cursor
}

// Current returns the last successfully rendered view, or nil.
func (b *Binder) Current() *View {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current
}

// Nearest snaps t to the greatest step <= t. Before the first step it
// returns the first step; with no steps it returns t.
func (b *Binder) Nearest(t int64) int64 {
	steps := b.dataset.Timestamps
	if len(steps) == 0 {
		return t
	}

	i := sort.Search(len(steps), func(i int) bool { return steps[i] > t })
	if i == 0 {
		return steps[0]
	}

	return steps[i-1]
}

// SetCursor renders the dataset at cutoff. On failure the previous view and
// cursor are kept.
func (b *Binder) SetCursor(cutoff int64) (*View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	view, err := b.render(cutoff)
	if err != nil {
		return nil, err
	}

	b.cursor = cutoff
	b.current = view

	return view, nil
}

// Pin records a viewer position for id.
func (b *Binder) Pin(id models.NodeID, x, y float64) error {
	if !b.known[id] {
		return fmt.Errorf("pin %s: %w", id, models.ErrNodeNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pins[id] = Position{X: x, Y: y}
	b.repin()

	return nil
}

// Unpin releases a pinned node.
func (b *Binder) Unpin(id models.NodeID) error {
	if !b.known[id] {
		return fmt.Errorf("unpin %s: %w", id, models.ErrNodeNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.pins, id)
	b.repin()

	return nil
}

// repin refreshes pin fields on the current view without recomputing metrics.
func (b *Binder) repin() {
	if b.current == nil {
		return
	}

	view := *b.current
	view.Nodes = make([]ViewNode, len(b.current.Nodes))
	copy(view.Nodes, b.current.Nodes)

	for i := range view.Nodes {
		view.Nodes[i].Pin = b.pinFor(view.Nodes[i].ID)
	}

	b.current = &view
}

func (b *Binder) pinFor(id models.NodeID) *Position {
	p, ok := b.pins[id]
	if !ok {
		return nil
	}

	return &p
}

func (b *Binder) render(cutoff int64) (*View, error) {
	snap := graph.SnapshotAt(b.dataset, cutoff)

	start := time.Now()
	m, err := graph.ComputeMetrics(snap)
	metrics.MetricsComputeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("computing metrics at %d: %w", cutoff, err)
	}

	view := &View{
		Cutoff:      cutoff,
		CutoffLabel: epoch.Format(&cutoff),
		Nodes:       make([]ViewNode, len(snap.Nodes)),
		Links:       make([]ViewLink, len(snap.Links)),
		Metrics:     m,
	}

	maxDegree := 0
	for _, nm := range m.NodeMetrics {
		maxDegree = max(maxDegree, nm.Degree)
	}

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		deg := m.NodeMetrics[n.ID].Degree

		view.Nodes[i] = ViewNode{
			ID:        n.ID,
			Label:     n.Username,
			AvatarURL: n.AvatarURL,
			Timestamp: n.Timestamp,
			Degree:    deg,
			Radius:    Radius(deg, maxDegree),
			Pin:       b.pinFor(n.ID),
		}
	}

	for i := range snap.Links {
		l := &snap.Links[i]
		view.Links[i] = ViewLink{Source: l.Source.ID(), Target: l.Target.ID(), Timestamp: l.Timestamp}
	}

	view.Heatmap = heatmap(snap, m)

	return view, nil
}

// Radius scales a node's radius by the square root of its degree relative to
// the busiest node, so area tracks degree.
func Radius(degree, maxDegree int) float64 {
	if maxDegree <= 0 || degree <= 0 {
		return MinRadius
	}

	frac := math.Sqrt(float64(degree) / float64(maxDegree))

	return MinRadius + frac*(MaxRadius-MinRadius)
}

func heatmap(snap *models.Snapshot, m *models.Metrics) *Heatmap {
	if m.AdjacencyMatrix == nil {
		return nil
	}

	labels := make([]string, len(m.NodeOrder))
	byID := make(map[models.NodeID]string, len(snap.Nodes))

	for i := range snap.Nodes {
		byID[snap.Nodes[i].ID] = snap.Nodes[i].Username
	}

	for i, id := range m.NodeOrder {
		label := byID[id]
		if label == "" {
			label = string(id)
		}

		labels[i] = label
	}

	return &Heatmap{Labels: labels, Cells: m.AdjacencyMatrix}
}
