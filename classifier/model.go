package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Model is a trained boundary-acceptance tree. It is immutable once trained
// and versioned independently of the tables it was trained from.
type Model struct {
	FeatureNames []string `yaml:"features"`
	Root         *Node    `yaml:"tree"`
}

// Predict walks the tree and returns the accept decision for one feature
// vector. The vector must have the model's feature shape.
func (m *Model) Predict(features []float64) (bool, error) {
	if len(features) != len(m.FeatureNames) {
		return false, fmt.Errorf("expected %d features, got %d", len(m.FeatureNames), len(features))
	}
	node := m.Root
	for !node.Leaf {
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Accept, nil
}

// Save writes the model as YAML.
func (m *Model) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadModel reads a model saved by Save.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if m.Root == nil {
		return nil, fmt.Errorf("model %s has no tree", path)
	}
	return &m, nil
}

// DOT renders the tree in Graphviz dot format for inspection.
func (m *Model) DOT() string {
	var b strings.Builder
	b.WriteString("digraph boundary_model {\n")
	b.WriteString("  node [shape=box];\n")
	next := 0
	var walk func(n *Node) int
	walk = func(n *Node) int {
		id := next
		next++
		if n.Leaf {
			verdict := "reject"
			if n.Accept {
				verdict = "accept"
			}
			fmt.Fprintf(&b, "  n%d [label=\"%s\\nsamples=%d\"];\n", id, verdict, n.Samples)
			return id
		}
		fmt.Fprintf(&b, "  n%d [label=\"%s <= %g\\nsamples=%d\"];\n", id, n.Name, n.Threshold, n.Samples)
		left := walk(n.Left)
		right := walk(n.Right)
		fmt.Fprintf(&b, "  n%d -> n%d [label=\"yes\"];\n", id, left)
		fmt.Fprintf(&b, "  n%d -> n%d [label=\"no\"];\n", id, right)
		return id
	}
	walk(m.Root)
	b.WriteString("}\n")
	return b.String()
}
