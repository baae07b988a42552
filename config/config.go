// Package config loads the application configuration from a yaml file
// with environment overrides (BOOKMANAGER_ prefix).
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config selects the storage backend and its naming. An empty MongoURI
// selects the in-memory store.
type Config struct {
	MongoURI          string `mapstructure:"mongo_uri"`
	Database          string `mapstructure:"database"`
	AuthorsCollection string `mapstructure:"authors_collection"`
	BooksCollection   string `mapstructure:"books_collection"`
	IDScheme          string `mapstructure:"id_scheme"` // "uuid" or "ulid"
	LogLevel          string `mapstructure:"log_level"`
}

func defaults() map[string]any {
	return map[string]any{
		"mongo_uri":          "",
		"database":           "bookmanager",
		"authors_collection": "authors",
		"books_collection":   "books",
		"id_scheme":          "uuid",
		"log_level":          "info",
	}
}

// Load reads the named yaml config from path. A missing file is not an
// error: defaults plus environment variables apply.
func Load(path string, filename string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("bookmanager")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
