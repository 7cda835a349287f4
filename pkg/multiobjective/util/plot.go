package util

import (
	"fmt"

	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
)

// PlotResults creates a scatter plot comparing the true Pareto front of the given Problem
// with the front found by the algorithm. Problems without a known true front
// get only the found-front series.
func PlotResults(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %s", problem.Name())
	}

	if len(results[0]) != 2 {
		return fmt.Errorf("can only plot 2D for %s", problem.Name())
	}

	// Create scatter chart
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if trueParetoFront := problem.TrueParetoFront(100); trueParetoFront != nil {
		trueX := make([]opts.ScatterData, len(trueParetoFront))
		for i, p := range trueParetoFront {
			trueX[i] = opts.ScatterData{
				Value:      p,
				Symbol:     "circle",
				SymbolSize: 10,
			}
		}
		scatter.AddSeries("True Pareto Front", trueX)
	}

	foundX := make([]opts.ScatterData, len(results))
	for i, res := range results {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	// Add data series
	scatter.AddSeries(fmt.Sprintf("%s Front", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	// Create HTML file
	f, err := os.Create(fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithmName))
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
