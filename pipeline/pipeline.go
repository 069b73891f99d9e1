// Package pipeline runs the full corpus-statistics workflow: frequency
// aggregation, association analysis, gold-corpus evaluation and boundary
// classifier training. Each stage publishes a flat file; stages whose output
// already exists are skipped and their tables reused.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teatak/cntext/annotated"
	"github.com/teatak/cntext/assoc"
	"github.com/teatak/cntext/classifier"
	"github.com/teatak/cntext/config"
	"github.com/teatak/cntext/corpus"
	"github.com/teatak/cntext/dictionary"
	"github.com/teatak/cntext/freq"
	"github.com/teatak/cntext/segmenter"
)

// Artifact file names under the configured output directory.
const (
	CharTableFile   = "char_freq.tsv"
	BigramTableFile = "bigram_freq.tsv"
	TermTableFile   = "term_freq.tsv"
	FeatureFile     = "features.tsv"
	ModelFile       = "boundary_model.yaml"
	DiagramFile     = "boundary_model.dot"
)

// Pipeline wires the stages together.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a pipeline from configuration.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes all stages in order.
func (p *Pipeline) Run(ctx context.Context) error {
	cfg := p.cfg
	if err := os.MkdirAll(cfg.Corpus.OutputDir, 0755); err != nil {
		return err
	}

	p.log.Info("[1/5] loading dictionary", zap.String("file", cfg.Corpus.DictionaryFile))
	index, err := dictionary.Load(cfg.Corpus.DictionaryFile)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	seg := segmenter.New(index)
	p.log.Info("dictionary loaded", zap.Int("headwords", index.Size()))

	var patterns corpus.IgnorePatterns
	if cfg.Corpus.IgnoreFile != "" {
		patterns, err = corpus.LoadIgnorePatterns(cfg.Corpus.IgnoreFile)
		if err != nil {
			return fmt.Errorf("load ignore patterns: %w", err)
		}
	}

	p.log.Info("[2/5] resolving corpus index", zap.String("index", cfg.Corpus.IndexFile))
	paths, err := corpus.LoadIndex(cfg.Corpus.IndexFile, cfg.Corpus.IndexDir, cfg.Corpus.DocumentDir)
	if err != nil {
		return fmt.Errorf("resolve corpus index: %w", err)
	}
	docs := make([]corpus.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := corpus.ReadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	p.log.Info("[3/5] aggregating frequency tables", zap.Int("documents", len(docs)))
	chars, err := p.table(ctx, CharTableFile, freq.CharCounter{}, patterns, docs)
	if err != nil {
		return err
	}
	bigrams, err := p.table(ctx, BigramTableFile, freq.BigramCounter{}, patterns, docs)
	if err != nil {
		return err
	}
	terms, err := p.table(ctx, TermTableFile, freq.TermCounter{Seg: seg}, patterns, docs)
	if err != nil {
		return err
	}

	analyzer := assoc.NewAnalyzer(chars, bigrams, terms)
	analyzer.Floor = cfg.Assoc.Floor

	p.log.Info("[4/5] evaluating annotated corpus", zap.String("file", cfg.Corpus.AnnotatedFile))
	doc, err := annotated.ParseFile(cfg.Corpus.AnnotatedFile)
	if err != nil {
		return fmt.Errorf("parse annotated corpus: %w", err)
	}
	result, err := annotated.NewEvaluator(seg, analyzer).Evaluate(doc)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	p.log.Info("evaluation complete",
		zap.Int("tokens", result.Summary.Tokens),
		zap.Int("false_negatives", result.Summary.FalseNegatives),
		zap.Int("false_positives", result.Summary.FalsePositives),
		zap.Float64("precision", result.Summary.Precision),
		zap.Float64("recall", result.Summary.Recall))

	featurePath := filepath.Join(cfg.Corpus.OutputDir, FeatureFile)
	if err := writeFeatures(featurePath, result.Records); err != nil {
		return err
	}

	p.log.Info("[5/5] training boundary classifier", zap.Int("records", len(result.Records)))
	samples := make([]classifier.Sample, len(result.Records))
	for i, rec := range result.Records {
		samples[i] = classifier.Sample{Features: rec.Vector(), Accept: rec.Label}
	}
	model, err := classifier.Train(samples, annotated.FeatureNames(), classifier.Options{
		MaxDepth: cfg.Train.MaxDepth,
		MinLeaf:  cfg.Train.MinLeaf,
	})
	if err != nil {
		return fmt.Errorf("train classifier: %w", err)
	}

	modelPath := filepath.Join(cfg.Corpus.OutputDir, ModelFile)
	if err := model.Save(modelPath); err != nil {
		return err
	}
	diagramPath := filepath.Join(cfg.Corpus.OutputDir, DiagramFile)
	if err := os.WriteFile(diagramPath, []byte(model.DOT()), 0644); err != nil {
		return err
	}
	p.log.Info("pipeline complete",
		zap.String("model", modelPath),
		zap.String("diagram", diagramPath))
	return nil
}

// table loads a cached frequency table, or aggregates and publishes it.
func (p *Pipeline) table(ctx context.Context, name string, counter freq.Counter,
	patterns corpus.IgnorePatterns, docs []corpus.Document) (*freq.Table, error) {

	path := filepath.Join(p.cfg.Corpus.OutputDir, name)
	if _, err := os.Stat(path); err == nil {
		p.log.Info("reusing cached table", zap.String("file", path))
		return freq.Load(path)
	}

	agg := freq.NewAggregator(counter, patterns, p.log)
	if p.cfg.Aggregate.Workers > 0 {
		agg.Workers = p.cfg.Aggregate.Workers
	}
	agg.MaxRetries = p.cfg.Aggregate.MaxRetries
	return agg.RunToFile(ctx, docs, path)
}

func writeFeatures(path string, records []annotated.FeatureRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return annotated.WriteRecords(file, records)
}
