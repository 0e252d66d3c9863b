package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bnema/repobrief/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	pricingPathKey  = "pricing.path"
	configDirName   = ".config"
	appDirName      = "repobrief"
	pricingFileName = "pricing.toml"
)

const (
	envPriceIn       = "PRICE_IN_PER_1M"
	envPriceOut      = "PRICE_OUT_PER_1M"
	envPriceCachedIn = "PRICE_CACHED_IN_PER_1M"
)

// Overrides are explicit per-1M rates from CLI flags. Input and output rates
// must be provided together; the caller validates the pairing.
type Overrides struct {
	InPer1M       *float64
	OutPer1M      *float64
	CachedInPer1M *float64
}

type pricingSchema struct {
	Version int                     `toml:"version"`
	Models  map[string]modelPricing `toml:"models"`
}

type modelPricing struct {
	InPer1M       float64 `toml:"in_per_1m"`
	OutPer1M      float64 `toml:"out_per_1m"`
	CachedInPer1M float64 `toml:"cached_in_per_1m"`
}

// Source resolves model pricing in precedence order: CLI overrides, then
// environment, then the user's pricing file, then the built-in table. An
// unknown model with no override anywhere is a configuration error.
type Source struct {
	pricingPath string
}

func NewSource(cfg *viper.Viper) (*Source, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, configDirName, appDirName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(appDir)
	cfg.SetDefault(pricingPathKey, filepath.Join(appDir, pricingFileName))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	pricingPath := cfg.GetString(pricingPathKey)
	if pricingPath == "" {
		return nil, errors.New("pricing path is empty")
	}

	return &Source{pricingPath: pricingPath}, nil
}

func NewSourceWithPath(pricingPath string) *Source {
	return &Source{pricingPath: pricingPath}
}

func (s *Source) Resolve(model string, overrides Overrides) (domain.Pricing, error) {
	if overrides.InPer1M != nil && overrides.OutPer1M != nil {
		return pricingWithCached(*overrides.InPer1M, *overrides.OutPer1M, overrides.CachedInPer1M), nil
	}

	if pricing, ok, err := envPricing(); err != nil {
		return domain.Pricing{}, err
	} else if ok {
		return pricing, nil
	}

	if pricing, ok, err := s.filePricing(model); err != nil {
		return domain.Pricing{}, err
	} else if ok {
		return pricing, nil
	}

	return domain.PricingForModel(model)
}

func envPricing() (domain.Pricing, bool, error) {
	rawIn := os.Getenv(envPriceIn)
	rawOut := os.Getenv(envPriceOut)
	if rawIn == "" || rawOut == "" {
		return domain.Pricing{}, false, nil
	}

	in, err := strconv.ParseFloat(rawIn, 64)
	if err != nil {
		return domain.Pricing{}, false, fmt.Errorf("parse %s: %w", envPriceIn, err)
	}
	out, err := strconv.ParseFloat(rawOut, 64)
	if err != nil {
		return domain.Pricing{}, false, fmt.Errorf("parse %s: %w", envPriceOut, err)
	}

	var cachedIn *float64
	if rawCached := os.Getenv(envPriceCachedIn); rawCached != "" {
		parsed, err := strconv.ParseFloat(rawCached, 64)
		if err != nil {
			return domain.Pricing{}, false, fmt.Errorf("parse %s: %w", envPriceCachedIn, err)
		}
		cachedIn = &parsed
	}

	return pricingWithCached(in, out, cachedIn), true, nil
}

func (s *Source) filePricing(model string) (domain.Pricing, bool, error) {
	raw, err := os.ReadFile(s.pricingPath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Pricing{}, false, nil
		}
		return domain.Pricing{}, false, fmt.Errorf("read pricing file: %w", err)
	}

	var schema pricingSchema
	if err := toml.Unmarshal(raw, &schema); err != nil {
		return domain.Pricing{}, false, fmt.Errorf("decode pricing file %s: %w", s.pricingPath, err)
	}

	entry, ok := schema.Models[model]
	if !ok {
		return domain.Pricing{}, false, nil
	}

	cachedIn := entry.CachedInPer1M
	if cachedIn == 0 {
		cachedIn = domain.DefaultCachedInPer1M
	}

	return domain.Pricing{
		InPer1M:       entry.InPer1M,
		OutPer1M:      entry.OutPer1M,
		CachedInPer1M: cachedIn,
	}, true, nil
}

func pricingWithCached(in, out float64, cachedIn *float64) domain.Pricing {
	pricing := domain.Pricing{
		InPer1M:       in,
		OutPer1M:      out,
		CachedInPer1M: domain.DefaultCachedInPer1M,
	}
	if cachedIn != nil {
		pricing.CachedInPer1M = *cachedIn
	}

	return pricing
}
