package editor

import (
	"context"
	"logictree/graph"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SampleFetcher produces the text for a sample logic tree. It never fails:
// errors come back as a user-facing message.
type SampleFetcher interface {
	Fetch(ctx context.Context) string
}

// StartSample marks a sample load as in flight and returns its generation
// token. A second call before FinishSample returns ErrSampleInFlight.
func (c *Controller) StartSample() (string, error) {
	if c.loading {
		return "", ErrSampleInFlight
	}
	c.loading = true
	c.sampleToken = uuid.NewString()
	c.logger.Info("sample load started", zap.String("request_id", c.sampleToken))
	return c.sampleToken, nil
}

// FinishSample replaces the graph with a single root carrying text.
// Results for any token other than the latest are dropped; it reports
// whether the result was applied.
func (c *Controller) FinishSample(token, text string) bool {
	if !c.loading || token != c.sampleToken {
		c.logger.Warn("stale sample result dropped", zap.String("request_id", token))
		return false
	}
	c.loading = false
	c.sampleToken = ""

	root := graph.Node{
		ID:       "1",
		Type:     graph.NodeTypeCustom,
		Label:    text,
		Position: graph.Position{X: c.viewportWidth / 2, Y: c.viewportHeight / 2},
		Style:    graph.Style{BackgroundColor: graph.ColorSelected, FontWeight: "bold"},
	}
	c.store.SetNodes(func([]graph.Node) []graph.Node {
		return []graph.Node{root}
	})
	c.store.SetEdges(func([]graph.Edge) []graph.Edge {
		return []graph.Edge{}
	})
	c.selected = ""
	c.editing = nil
	c.dragging = make(map[string]bool)

	c.logger.Info("sample load finished", zap.String("request_id", token))
	return true
}

// LoadSample fetches and applies a sample synchronously.
func (c *Controller) LoadSample(ctx context.Context, fetcher SampleFetcher) error {
	token, err := c.StartSample()
	if err != nil {
		return err
	}
	c.FinishSample(token, fetcher.Fetch(ctx))
	return nil
}
