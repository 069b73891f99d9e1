package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root pipeline configuration, loaded from YAML with
// environment overrides.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Aggregate AggregateConfig `yaml:"aggregate"`
	Assoc     AssocConfig     `yaml:"assoc"`
	Train     TrainConfig     `yaml:"train"`
	Log       LogConfig       `yaml:"log"`
}

// CorpusConfig locates the inputs and the output directory.
type CorpusConfig struct {
	DictionaryFile string `yaml:"dictionary_file" env:"CNTEXT_DICTIONARY"    env-default:"data/words.txt"`
	IndexFile      string `yaml:"index_file"      env:"CNTEXT_CORPUS_INDEX"  env-default:"data/corpus/collections.csv"`
	IndexDir       string `yaml:"index_dir"       env:"CNTEXT_INDEX_DIR"     env-default:"data/corpus"`
	DocumentDir    string `yaml:"document_dir"    env:"CNTEXT_DOCUMENT_DIR"  env-default:"corpus"`
	IgnoreFile     string `yaml:"ignore_file"     env:"CNTEXT_IGNORE_FILE"   env-default:""`
	AnnotatedFile  string `yaml:"annotated_file"  env:"CNTEXT_ANNOTATED"     env-default:"data/annotated.txt"`
	OutputDir      string `yaml:"output_dir"      env:"CNTEXT_OUTPUT_DIR"    env-default:"out"`
}

// AggregateConfig controls the parallel frequency-counting job.
type AggregateConfig struct {
	Workers    int `yaml:"workers"     env:"CNTEXT_WORKERS"     env-default:"0"`
	MaxRetries int `yaml:"max_retries" env:"CNTEXT_MAX_RETRIES" env-default:"2"`
}

// AssocConfig controls the association statistics.
type AssocConfig struct {
	Floor float64 `yaml:"floor" env:"CNTEXT_FLOOR" env-default:"0.5"`
}

// TrainConfig controls classifier training.
type TrainConfig struct {
	MaxDepth int `yaml:"max_depth" env:"CNTEXT_MAX_DEPTH" env-default:"8"`
	MinLeaf  int `yaml:"min_leaf"  env:"CNTEXT_MIN_LEAF"  env-default:"2"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"CNTEXT_LOG_LEVEL" env-default:"info"`
}

// Load reads the config file, applying environment overrides. An empty path
// loads defaults and environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
