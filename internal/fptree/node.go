// Package fptree implements the FP-tree of spec 4.E: a prefix tree
// over ranked items where each node carries the support split by
// class label, so the significance test's (x, a) pair falls out of
// the same traversal that recovers support.
package fptree

// Node is one FP-tree node, carved from an arena. ItemRank == -1
// marks the tree root. Count0/Count1 hold the support contributed by
// label-0 and label-1 transactions respectively; support x is
// Count0+Count1 and the minority-class count a is Count1 (after the
// dataset-level label normalization that keeps n1 <= N/2).
type Node struct {
	ItemRank int32
	Count0   int64
	Count1   int64

	Parent      *Node
	FirstChild  *Node
	NextSibling *Node
	Next        *Node // header-table link: next node sharing ItemRank
}

// Support returns the node's total transaction count.
func (n *Node) Support() int64 { return n.Count0 + n.Count1 }

// findChild returns n's child with the given rank, or nil.
func findChild(n *Node, rank int32) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.ItemRank == rank {
			return c
		}
	}
	return nil
}
