package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patternminer/sigitemsets/internal/arena"
	"github.com/patternminer/sigitemsets/internal/closure"
	"github.com/patternminer/sigitemsets/internal/config"
	"github.com/patternminer/sigitemsets/internal/fptree"
	sigio "github.com/patternminer/sigitemsets/internal/ioutil"
	"github.com/patternminer/sigitemsets/internal/mathx"
	"github.com/patternminer/sigitemsets/internal/mining"
	"github.com/patternminer/sigitemsets/internal/model"
	"github.com/patternminer/sigitemsets/internal/pvalue"
	"github.com/patternminer/sigitemsets/internal/report"
)

func newMineCmd(logger *zap.SugaredLogger) *cobra.Command {
	cfg := config.RunConfig{}
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "mine <transactions_file> <labels_file> <output_prefix>",
		Short: "Mine significant itemsets from a transactions/labels pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.TransactionsPath, cfg.LabelsPath, cfg.OutputPrefix = args[0], args[1], args[2]

			mode, err := config.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			cfg.Mode = mode

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runMine(cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.MinSupport, "min-support", "s", 0, "minimum support count (theta), required")
	flags.Float64VarP(&cfg.Delta, "delta", "d", 0, "corrected significance threshold, required")
	flags.Float64VarP(&cfg.Epsilon, "epsilon", "e", 0, "confidence-interval slack, required")
	flags.StringVar(&modeFlag, "mode", "frequent", "itemset family: frequent|closed|maximal")
	flags.BoolVar(&cfg.NoCache, "no-cache", false, "disable p-value memoization")
	flags.BoolVar(&cfg.NoCI, "no-ci", false, "disable confidence-interval rejection")
	flags.Float64Var(&cfg.AdjacencyThreshold, "adjacency-threshold", fptree.DefaultSwitchThreshold, "level-25 branching fraction above which a conditional tree builds its adjacency matrix")
	flags.BoolVar(&cfg.DebugThresholds, "debug-thresholds", false, "also write a *.thresholds file with the per-support floor")

	cmd.MarkFlagRequired("min-support")
	cmd.MarkFlagRequired("delta")
	cmd.MarkFlagRequired("epsilon")

	return cmd
}

func runMine(cfg config.RunConfig, logger *zap.SugaredLogger) error {
	transactions, effectiveN, err := sigio.Load(cfg.TransactionsPath, cfg.LabelsPath)
	if err != nil {
		return err
	}

	n1, flipped := model.NormalizeLabels(transactions)
	if flipped {
		logger.Infow("flipped labels so the minority class is the one indexed by a", "n1", n1)
	}

	ds := &model.Dataset{Transactions: transactions, N: len(transactions), N1: n1, Flipped: flipped, EffectiveN: effectiveN}

	tree := fptree.Build(ds, cfg.MinSupport, arena.Hint{ItemCount: len(transactions), Depth: 0})
	tree.MaybeBuildAdjacency(cfg.AdjacencyThreshold)

	tbl := mathx.NewLogGammaTable(ds.N)
	engine := pvalue.NewEngine(tbl, ds.N, ds.N1)
	gate := pvalue.NewGate(engine, cfg.Delta, cfg.Epsilon, pvalue.StrategyFastTailed)
	gate.NoCI = cfg.NoCI
	gate.NoCache = cfg.NoCache
	if gate.NoCache {
		logger.Warnw("p-value cache disabled by flag")
	} else if gate.Cache == nil || !gate.Cache.Enabled() {
		logger.Warnw("p-value cache disabled: key space exceeds capacity policy", "n1", ds.N1, "n", ds.N)
	}

	writer, err := sigio.NewWriter(cfg.OutputPrefix, cfg.DebugThresholds)
	if err != nil {
		return err
	}
	defer writer.Close()

	counters := &report.Counters{Gate: &gate.Counters}

	ctx := &mining.Context{
		N: ds.N, N1: ds.N1, Theta: cfg.MinSupport,
		Delta: cfg.Delta, Epsilon: cfg.Epsilon,
		Tbl: tbl, Gate: gate,
		Strategy: pvalue.StrategyFastTailed,
		Mode:     cfg.Mode,
		AdjacencyThreshold: cfg.AdjacencyThreshold,
		Counters: counters,
		Logger:   logger.Desugar(),
	}
	indexHint := arena.Hint{ItemCount: int(tree.NumItems), Depth: 0}
	switch cfg.Mode {
	case mining.ModeClosed:
		ctx.CFI = closure.NewCFITree(tree.NumItems, indexHint)
	case mining.ModeMaximal:
		ctx.MFI = closure.NewMFITree(tree.NumItems, indexHint)
	}

	var writeErr error
	ctx.Sink = func(p mining.Pattern) {
		if writeErr != nil {
			return
		}
		writeErr = writer.Emit(p)
	}

	// rankToMaster starts as the identity over the master tree's own
	// ranks: every recursion level composes it with a conditional
	// tree's local-to-parent mapping, so it always resolves a deeply
	// nested conditional rank back to this master rank -- the numbering
	// the CFI/MFI index (and the driver's own candidate-building) is
	// array-indexed by. OriginalID is the separate, output-only
	// translation from master rank to the input file's item numbering
	// (spec section 6, "*.significant ... item IDs in original
	// numbering"), applied once at final emission.
	rankToMaster := make([]int32, tree.NumItems)
	for i := range rankToMaster {
		rankToMaster[i] = int32(i)
	}
	originalID := make([]int32, tree.NumItems)
	for id, rank := range ds.Order {
		if rank >= 0 {
			originalID[rank] = int32(id)
		}
	}
	ctx.OriginalID = originalID

	driver := &mining.Driver{}
	driver.Mine(ctx, tree, rankToMaster, nil, 0)
	if writeErr != nil {
		return fmt.Errorf("write output: %w", writeErr)
	}

	if err := writer.WriteThresholds(gate.ProbThr); err != nil {
		return err
	}

	if err := sigio.WriteSummary(cfg.OutputPrefix, counters, cfg.MinSupport, cfg.Delta, cfg.Epsilon, cfg.Mode.String(), ds.EffectiveN, ds.N); err != nil {
		return err
	}

	logger.Infow("mining complete",
		"tested_patterns", counters.TestedPatterns,
		"significant_patterns", counters.SignificantPatterns,
	)
	return nil
}
