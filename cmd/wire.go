package cmd

import (
	"fmt"
	"os"

	openaiadapter "github.com/bnema/repobrief/internal/adapters/model/openai"
	tomlpricing "github.com/bnema/repobrief/internal/adapters/pricing/toml"
	githubadapter "github.com/bnema/repobrief/internal/adapters/repo/github"
	"github.com/bnema/repobrief/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type app struct {
	model   ports.ModelClient
	fetcher ports.RepoFetcher
	pricing *tomlpricing.Source
	clock   ports.Clock
	logger  *log.Logger
}

func wireApp(apiKey string, verbose bool) (*app, error) {
	pricing, err := tomlpricing.NewSource(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire pricing source: %w", err)
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return &app{
		model:   openaiadapter.NewClient(apiKey),
		fetcher: githubadapter.NewClient(os.Getenv("GITHUB_TOKEN")),
		pricing: pricing,
		clock:   ports.SystemClock{},
		logger:  logger,
	}, nil
}
