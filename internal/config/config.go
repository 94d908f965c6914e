package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Konsultn-Engineering/sqlqb/dialect"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	fileName  = ".sqlqb"
	envPrefix = "SQLQB"
)

// AppFs is the filesystem configuration and query documents are read from.
var AppFs = afero.NewOsFs()

// Config holds the CLI settings.
type Config struct {
	Dialect   string
	Debug     bool
	Inline    bool
	CacheSize int
}

type Options struct {
	Fs afero.Fs
	// Dir is searched first for .sqlqb.yaml and the .env files. Defaults to
	// the working directory.
	Dir string
	// File, when set, is the only configuration file read.
	File string
	// Home overrides the home directory lookup.
	Home string
}

var keys = []string{"dialect", "debug", "inline", "cache_size"}

// Load merges, lowest priority first: defaults, the config file, .env,
// .env.local and the process environment (SQLQB_DIALECT and so on).
func Load(opts Options) (*Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = AppFs
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigType("yaml")

	v.SetDefault("dialect", "mysql")
	v.SetDefault("debug", false)
	v.SetDefault("inline", false)
	v.SetDefault("cache_size", 512)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		home := opts.Home
		if home == "" {
			h, err := homedir.Dir()
			if err != nil {
				return nil, fmt.Errorf("config: home directory: %w", err)
			}
			home = h
		}
		v.SetConfigName(fileName)
		v.AddConfigPath(dir)
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "sqlqb"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	env, err := readDotenv(fs, dir)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		name := envPrefix + "_" + strings.ToUpper(key)
		if val, ok := os.LookupEnv(name); ok {
			env[name] = val
		}
		if val, ok := env[name]; ok {
			v.Set(key, val)
		}
	}

	cfg := &Config{
		Dialect:   v.GetString("dialect"),
		Debug:     v.GetBool("debug"),
		Inline:    v.GetBool("inline"),
		CacheSize: v.GetInt("cache_size"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: cache_size must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// readDotenv parses .env then .env.local; later files win. Missing files
// are skipped.
func readDotenv(fs afero.Fs, dir string) (map[string]string, error) {
	env := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := fs.Stat(path); err != nil {
			continue
		}

		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		parsed, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		for k, val := range parsed {
			env[k] = val
		}
	}
	return env, nil
}
