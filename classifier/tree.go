// Package classifier trains a binary decision tree that accepts or rejects a
// candidate token as one segmentation unit, from its frequency and
// association features. The tree is the intended acceptance filter for
// low-frequency dictionary matches; its contract is a fixed-shape numeric
// feature vector in, accept/reject out.
package classifier

import (
	"errors"
	"fmt"
	"sort"
)

// Sample is one training row.
type Sample struct {
	Features []float64
	Accept   bool
}

// Options control tree growth.
type Options struct {
	// MaxDepth bounds tree height. Zero means the default of 8.
	MaxDepth int
	// MinLeaf is the smallest sample count allowed in a leaf. Zero means 1.
	MinLeaf int
}

// Node is one decision node. Internal nodes route feature[Feature] <=
// Threshold to the left child; leaves carry the accept decision.
type Node struct {
	Feature   int     `yaml:"feature,omitempty"`
	Name      string  `yaml:"name,omitempty"`
	Threshold float64 `yaml:"threshold,omitempty"`
	Left      *Node   `yaml:"left,omitempty"`
	Right     *Node   `yaml:"right,omitempty"`
	Leaf      bool    `yaml:"leaf,omitempty"`
	Accept    bool    `yaml:"accept,omitempty"`
	Samples   int     `yaml:"samples"`
}

// Train grows a binary decision tree with the Gini impurity criterion.
//
// Splitting is deterministic: candidate features are visited in vector
// order, thresholds are midpoints between consecutive distinct sorted
// values, and only a strictly better impurity keeps a new split. Training
// twice on the same table therefore yields an identical structure.
func Train(samples []Sample, featureNames []string, opts Options) (*Model, error) {
	if len(samples) == 0 {
		return nil, errors.New("no training samples")
	}
	width := len(featureNames)
	for i, s := range samples {
		if len(s.Features) != width {
			return nil, fmt.Errorf("sample %d: expected %d features, got %d", i, width, len(s.Features))
		}
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 8
	}
	if opts.MinLeaf <= 0 {
		opts.MinLeaf = 1
	}

	root := grow(samples, featureNames, opts, 0)
	return &Model{FeatureNames: featureNames, Root: root}, nil
}

func grow(samples []Sample, names []string, opts Options, depth int) *Node {
	accepts := 0
	for _, s := range samples {
		if s.Accept {
			accepts++
		}
	}
	leaf := &Node{
		Leaf:    true,
		Accept:  2*accepts >= len(samples),
		Samples: len(samples),
	}
	if accepts == 0 || accepts == len(samples) || depth >= opts.MaxDepth {
		return leaf
	}

	feature, threshold, ok := bestSplit(samples, opts.MinLeaf)
	if !ok {
		return leaf
	}

	var left, right []Sample
	for _, s := range samples {
		if s.Features[feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return &Node{
		Feature:   feature,
		Name:      names[feature],
		Threshold: threshold,
		Samples:   len(samples),
		Left:      grow(left, names, opts, depth+1),
		Right:     grow(right, names, opts, depth+1),
	}
}

// bestSplit scans every feature in index order for the threshold with the
// lowest weighted Gini impurity. Ties keep the first candidate found.
func bestSplit(samples []Sample, minLeaf int) (feature int, threshold float64, ok bool) {
	n := len(samples)
	best := gini(samples)
	for f := 0; f < len(samples[0].Features); f++ {
		values := make([]float64, 0, n)
		seen := make(map[float64]bool, n)
		for _, s := range samples {
			if !seen[s.Features[f]] {
				seen[s.Features[f]] = true
				values = append(values, s.Features[f])
			}
		}
		sort.Float64s(values)

		for i := 0; i+1 < len(values); i++ {
			mid := (values[i] + values[i+1]) / 2
			var left, right []Sample
			for _, s := range samples {
				if s.Features[f] <= mid {
					left = append(left, s)
				} else {
					right = append(right, s)
				}
			}
			if len(left) < minLeaf || len(right) < minLeaf {
				continue
			}
			impurity := (float64(len(left))*gini(left) + float64(len(right))*gini(right)) / float64(n)
			if impurity < best {
				best = impurity
				feature = f
				threshold = mid
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func gini(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	accepts := 0
	for _, s := range samples {
		if s.Accept {
			accepts++
		}
	}
	p := float64(accepts) / float64(len(samples))
	return 2 * p * (1 - p)
}
