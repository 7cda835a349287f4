// Command benchmark runs MODE against one of the bundled benchmark
// problems and reports front quality, optionally rendering a scatter plot
// of the found front against the true one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/mode/pkg/multiobjective/algorithms"
	"github.com/mihai-snyk/mode/pkg/multiobjective/benchmarks"
	"github.com/mihai-snyk/mode/pkg/multiobjective/framework"
	"github.com/mihai-snyk/mode/pkg/multiobjective/util"
)

func main() {
	var (
		problemName string
		popSize     int
		generations int
		workers     int
		mode        string
		seed        uint64
		checkpoint  string
		plot        bool
	)

	pflag.StringVar(&problemName, "problem", "zdt1", "benchmark problem: zdt1 | schaffer")
	pflag.IntVar(&popSize, "pop-size", 100, "population size N")
	pflag.IntVar(&generations, "generations", 250, "generation limit")
	pflag.IntVar(&workers, "workers", 0, "evaluation workers, 0 for all CPUs")
	pflag.StringVar(&mode, "mode", string(algorithms.UpdateDE), "population update strategy: de | nsga2")
	pflag.Uint64Var(&seed, "seed", 42, "RNG seed")
	pflag.StringVar(&checkpoint, "checkpoint", "", "resume from this checkpoint, and write it back on completion")
	pflag.BoolVar(&plot, "plot", false, "write an HTML scatter plot of the final front")

	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	logger := klog.Background()
	ctx, stop := signal.NotifyContext(klog.NewContext(context.Background(), logger), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var problem framework.Problem
	switch problemName {
	case "zdt1":
		problem = benchmarks.NewZDT1(30)
	case "schaffer":
		problem = benchmarks.NewSchaffer(10)
	default:
		logger.Error(nil, "unknown problem", "problem", problemName)
		os.Exit(1)
	}

	cfg := algorithms.Config{
		Fitness:        framework.FitnessOf(problem.ObjectiveFuncs()...),
		Bounds:         problem.Bounds(),
		NumObjectives:  len(problem.ObjectiveFuncs()),
		PopSize:        popSize,
		Mode:           algorithms.UpdateMode(mode),
		Workers:        workers,
		MaxGenerations: generations,
		Seed:           seed,
	}

	var (
		m   *algorithms.MODE
		err error
	)
	if checkpoint != "" {
		if _, statErr := os.Stat(checkpoint); statErr == nil {
			m, err = algorithms.ResumeMODE(cfg, checkpoint)
		} else {
			m, err = algorithms.NewMODE(cfg)
		}
	} else {
		m, err = algorithms.NewMODE(cfg)
	}
	if err != nil {
		logger.Error(err, "configuration rejected")
		os.Exit(1)
	}

	res, err := m.Optimize(ctx)
	if err != nil {
		logger.Error(err, "run failed", "state", m.State())
		os.Exit(1)
	}

	if checkpoint != "" {
		if err := m.SaveCheckpoint(checkpoint); err != nil {
			logger.Error(err, "writing checkpoint")
		}
	}

	found := util.FrontPoints(res.Front)
	fmt.Printf("%s on %s: %d generations, %d evaluations, front size %d\n",
		algorithms.Name, problem.Name(), res.Generations, res.Evaluations, res.FrontSize)
	if reference := problem.TrueParetoFront(500); reference != nil {
		fmt.Printf("IGD %.6f, spread %.6f\n",
			util.InvertedGenerationalDistance(found, reference), util.Spread(found))
	}

	if plot {
		if err := util.PlotResults(found, problem, algorithms.Name); err != nil {
			logger.Error(err, "rendering plot")
			os.Exit(1)
		}
	}
}
