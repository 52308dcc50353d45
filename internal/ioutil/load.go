// Package ioutil loads the transactions/labels input files and writes
// the *.significant / *.pvalues / *.summary / *.thresholds output
// files described in spec section 6.
package ioutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patternminer/sigitemsets/internal/model"
)

// LoadTransactions reads one transaction per line: whitespace-separated
// non-negative integer item IDs. Empty lines are retained as empty
// transactions (spec section 6, "Transactions file").
func LoadTransactions(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transactions file: %w", err)
	}
	defer f.Close()

	var out []model.Transaction
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		items := make([]int32, 0, len(fields))
		for _, field := range fields {
			id, err := strconv.ParseInt(field, 10, 32)
			if err != nil || id < 0 {
				return nil, fmt.Errorf("transactions file line %d: invalid item id %q", lineNo, field)
			}
			items = append(items, int32(id))
		}
		out = append(out, model.Transaction{Items: items})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transactions file: %w", err)
	}
	return out, nil
}

// LoadLabels reads one label character per observation from {'0','1'};
// any other character is ignored (spec section 6, "Labels file").
func LoadLabels(path string) ([]uint8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels file: %w", err)
	}
	defer f.Close()

	var labels []uint8
	r := bufio.NewReader(f)
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read labels file: %w", err)
		}
		switch b {
		case '0':
			labels = append(labels, 0)
		case '1':
			labels = append(labels, 1)
		}
	}
	return labels, nil
}

// ApplyLabels merges a label slice into transactions read by
// LoadTransactions, failing when the counts disagree (spec section 6,
// "The number of accepted characters must equal the number of
// transactions").
func ApplyLabels(transactions []model.Transaction, labels []uint8) error {
	if len(transactions) != len(labels) {
		return fmt.Errorf("input inconsistency: %d transactions but %d labels", len(transactions), len(labels))
	}
	for i := range transactions {
		transactions[i].Label = labels[i]
	}
	return nil
}

// Load reads both input files and returns a labeled transaction slice
// and the count of non-empty transactions (spec 4.H "Empty-transaction
// accounting").
func Load(transactionsPath, labelsPath string) (transactions []model.Transaction, effectiveN int, err error) {
	transactions, err = LoadTransactions(transactionsPath)
	if err != nil {
		return nil, 0, err
	}
	labels, err := LoadLabels(labelsPath)
	if err != nil {
		return nil, 0, err
	}
	if err := ApplyLabels(transactions, labels); err != nil {
		return nil, 0, err
	}
	for _, tx := range transactions {
		if len(tx.Items) > 0 {
			effectiveN++
		}
	}
	return transactions, effectiveN, nil
}
