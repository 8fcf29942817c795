package repository

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"staysync/config"
	"staysync/internal/domains/pricing/model"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Strategies interface {
	Get(id string) (model.Strategy, error)
	List() []model.Strategy
}

type strategyFile struct {
	Strategies []model.Strategy `yaml:"strategies"`
}

type strategies struct {
	byID map[string]model.Strategy
}

// LoadStrategies reads the pricing strategies from a yaml file.
func LoadStrategies(path string) (Strategies, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}

	loaded, err := ParseStrategies(data)
	if err != nil {
		return nil, err
	}

	log.Info().Str("path", path).Int("count", len(loaded.List())).Msg("pricing strategies loaded")

	return loaded, nil
}

// NewStrategies loads the strategy file named in the configuration.
func NewStrategies(cfg *config.Config) (Strategies, error) {
	return LoadStrategies(cfg.Pricing.StrategyFile)
}

func ParseStrategies(data []byte) (Strategies, error) {
	var file strategyFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode strategies: %w", err)
	}

	byID := make(map[string]model.Strategy, len(file.Strategies))

	for _, strategy := range file.Strategies {
		if err := strategy.Validate(); err != nil {
			return nil, fmt.Errorf("invalid strategy: %w", err)
		}

		if _, ok := byID[strategy.ID]; ok {
			return nil, fmt.Errorf("duplicate strategy %q", strategy.ID)
		}

		byID[strategy.ID] = strategy
	}

	return &strategies{byID: byID}, nil
}

func (s *strategies) Get(id string) (model.Strategy, error) {
	strategy, ok := s.byID[id]
	if !ok {
		return strategy, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, id)
	}

	return strategy, nil
}

func (s *strategies) List() []model.Strategy {
	list := make([]model.Strategy, 0, len(s.byID))
	for _, strategy := range s.byID {
		list = append(list, strategy)
	}

	slices.SortFunc(list, func(a, b model.Strategy) int {
		return strings.Compare(a.ID, b.ID)
	})

	return list
}
