// Package model holds the transaction/label data loaded from the
// input files before any mining begins.
package model

// Transaction is one observation: the set of item IDs present (in
// original numbering, as read from the input file) together with its
// class label.
type Transaction struct {
	Items []int32
	Label uint8 // 0 or 1
}

// Dataset is the normalized view of the input handed to the miner.
// Order and Table implement the item-ranking step of scan 1 (spec
// 4.E): Order[originalID] gives that item's rank in descending-count
// order (or -1 if pruned below theta), and Table[rank] gives the
// item's total count.
type Dataset struct {
	Transactions []Transaction

	N  int // total observation count (== len(Transactions))
	N1 int // minority-class count after the flip-if-needed normalization

	// Flipped records whether labels were inverted so that N1 <= N/2,
	// matching the donor enumerator's convention that the minority
	// class is always the one indexed by a. The a and x-a columns of
	// the output are reported in this normalized labeling; the flip is
	// not undone when results are written.
	Flipped bool

	// EffectiveN counts observations with at least one item, distinct
	// from N which also counts empty-but-labeled transactions (spec
	// 4.H "Empty-transaction accounting").
	EffectiveN int

	Order []int32 // Order[originalItemID] -> rank, or -1 if pruned
	Table []int32 // Table[rank] -> item's support count
}

// NormalizeLabels flips the label bit on every transaction when the
// count of label-1 observations exceeds N/2, so the minority class is
// always the one that ends up as n1 in the p-value engine's margins.
// Returns the minority count after normalization.
func NormalizeLabels(transactions []Transaction) (n1 int, flipped bool) {
	ones := 0
	for i := range transactions {
		if transactions[i].Label == 1 {
			ones++
		}
	}
	n := len(transactions)
	if ones*2 <= n {
		return ones, false
	}
	for i := range transactions {
		transactions[i].Label = 1 - transactions[i].Label
	}
	return n - ones, true
}
