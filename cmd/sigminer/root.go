package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd(logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "sigminer",
		Short:         "Mine statistically significant itemsets from a labeled transaction database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMineCmd(logger))
	return root
}
