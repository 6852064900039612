package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/experiment"
	"github.com/san-kum/physim/internal/metrics"
)

// GridSearch tries every combination of the given parameter values and keeps
// the one that minimizes a metric. Runs that diverge are skipped.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	log        logr.Logger
}

func NewGridSearch(params []string, ranges [][]float64, log logr.Logger) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, log: log}
}

// Search returns the best parameters, the metric value they achieved and the
// number of runs evaluated.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metricName string) (map[string]float64, float64, int, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if _, err := metrics.New(metricName); err != nil {
		return nil, 0, 0, err
	}
	for _, name := range g.paramNames {
		if _, err := base.Param(name); err != nil {
			return nil, 0, 0, err
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	runs := 0

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, metricName, &best, &bestParams, &runs)
	return bestParams, best, runs, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
	runs *int,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}

		m, err := metrics.New(metricName)
		if err != nil {
			return err
		}
		exp := experiment.New(cfg, g.log)
		exp.RecordEvery = -1
		if err := exp.Setup(nil); err != nil {
			g.log.V(1).Info("skipping invalid point", "params", current, "error", err.Error())
			return nil
		}
		exp.GetSimulator().AddMetric(m)

		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		*runs++
		if len(result.Errors) > 0 {
			return nil
		}

		val := result.Metrics[metricName]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, metricName, best, bestParams, runs); err != nil {
			return err
		}
	}
	return nil
}
