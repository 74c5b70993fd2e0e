// Package config loads the scoring configuration with viper. Values come
// from defaults, then vfclust.yaml, then VFCLUST_* environment variables,
// then command-line flags bound by the caller.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/speechinformaticslab/vfclust/errdefs"
	"github.com/speechinformaticslab/vfclust/lexicon"
	"github.com/speechinformaticslab/vfclust/similarity"
)

const (
	EnvPrefix = "VFCLUST"
	FileName  = "vfclust"
)

type Category struct {
	Lemmas      string `mapstructure:"lemmas" yaml:"lemmas"`
	Names       string `mapstructure:"names" yaml:"names"`
	Permissible string `mapstructure:"permissible" yaml:"permissible"`
	TermVectors string `mapstructure:"term_vectors" yaml:"term_vectors"`
}

type Resources struct {
	DataDir      string              `mapstructure:"data_dir" yaml:"data_dir"`
	EnglishWords string              `mapstructure:"english_words" yaml:"english_words"`
	PhoneticDict string              `mapstructure:"phonetic_dict" yaml:"phonetic_dict"`
	Categories   map[string]Category `mapstructure:"categories" yaml:"categories"`
}

type Transcriber struct {
	Mode    string `mapstructure:"mode" yaml:"mode"` // none | t2p | http
	Command string `mapstructure:"command" yaml:"command"`
	Tree    string `mapstructure:"tree" yaml:"tree"`
	URL     string `mapstructure:"url" yaml:"url"`
	Timeout int    `mapstructure:"timeout" yaml:"timeout"` // seconds
}

type Output struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Format string `mapstructure:"format" yaml:"format"` // csv | json | yaml
}

type Thresholds struct {
	Phone map[string]float64            `mapstructure:"phone" yaml:"phone,omitempty"`
	LSA   map[string]map[string]float64 `mapstructure:"lsa" yaml:"lsa,omitempty"`
}

type Root struct {
	LogLevel           string      `mapstructure:"log_level" yaml:"log_level"`
	Letter             string      `mapstructure:"letter" yaml:"letter,omitempty"`
	Category           string      `mapstructure:"category" yaml:"category,omitempty"`
	CollectionTypes    []string    `mapstructure:"collection_types" yaml:"collection_types"`
	SimilarityMeasures []string    `mapstructure:"similarity_measures" yaml:"similarity_measures"`
	Dimensionality     int         `mapstructure:"dimensionality" yaml:"dimensionality"`
	Stemmer            string      `mapstructure:"stemmer" yaml:"stemmer"`
	Workers            int         `mapstructure:"workers" yaml:"workers"`
	Output             Output      `mapstructure:"output" yaml:"output"`
	Resources          Resources   `mapstructure:"resources" yaml:"resources"`
	Transcriber        Transcriber `mapstructure:"transcriber" yaml:"transcriber"`
	Thresholds         Thresholds  `mapstructure:"thresholds" yaml:"thresholds"`
}

// New returns a viper instance with defaults, the env binding, and the
// search path set. Flags may be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("collection_types", []string{"cluster", "chain"})
	v.SetDefault("similarity_measures", []string{})
	v.SetDefault("dimensionality", 91)
	v.SetDefault("stemmer", "porter")
	v.SetDefault("workers", 4)
	v.SetDefault("output.format", "csv")
	v.SetDefault("resources.data_dir", "data")
	v.SetDefault("resources.english_words", "EOWL/english_words.txt")
	v.SetDefault("resources.phonetic_dict", "cmudict/cmudict.0.7a")
	v.SetDefault("resources.categories.animals", map[string]any{
		"lemmas":       "animals/animals_lemmas.dat",
		"names":        "animals/animals_names_raw.dat",
		"permissible":  "animals/animals_names.dat",
		"term_vectors": "animals/animals_term_vector_dictionaries/term_vectors_dict{dim}.dat",
	})
	v.SetDefault("transcriber.mode", "none")
	v.SetDefault("transcriber.command", "t2p")
	v.SetDefault("transcriber.tree", "data/cmudict/cmudict.0.7a.tree")
	v.SetDefault("transcriber.timeout", 10)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{".", filepath.Join("config", env)} {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile, or searches the default paths when it is empty.
// A missing file in the search paths is not an error.
func Load(v *viper.Viper, configFile string) (*Root, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errdefs.Wrap(errdefs.ErrConfiguration, "read config", err)
		}
	}
	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errdefs.Wrap(errdefs.ErrConfiguration, "decode config", err)
	}
	return &cfg, nil
}

// Dump renders the effective configuration as YAML.
func (c *Root) Dump() ([]byte, error) { return yaml.Marshal(c) }

// Paths converts the resources section for lexicon.Load.
func (c *Root) Paths() lexicon.Paths {
	p := lexicon.Paths{
		DataDir:      c.Resources.DataDir,
		EnglishWords: c.Resources.EnglishWords,
		PhoneticDict: c.Resources.PhoneticDict,
		Categories:   make(map[string]lexicon.CategoryPaths, len(c.Resources.Categories)),
	}
	for name, cat := range c.Resources.Categories {
		p.Categories[strings.ToLower(name)] = lexicon.CategoryPaths(cat)
	}
	return p
}

// SimilarityThresholds applies the configured overrides to the built-in table.
func (c *Root) SimilarityThresholds() (similarity.Thresholds, error) {
	return similarity.DefaultThresholds().Override(c.Thresholds.Phone, c.Thresholds.LSA)
}

func (t Transcriber) TimeoutDuration() time.Duration { return DurSeconds(t.Timeout) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
