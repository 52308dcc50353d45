// Command sigminer mines statistically significant itemsets from a
// labeled transaction database (spec section 6).
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sigminer: cannot initialize logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	defer func() {
		if r := recover(); r != nil {
			logger.Sugar().Errorf("internal invariant violated: %v", r)
			logger.Sync()
			os.Exit(2)
		}
	}()

	root := newRootCmd(logger.Sugar())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
