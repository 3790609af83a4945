package config

import (
	"strings"

	"github.com/spf13/viper"
)

// CatalogSeed describes the default calculator catalog loaded from
// calculator.yml. It is applied only when the corresponding table is empty.
type CatalogSeed struct {
	Packages      []PackageSeed      `mapstructure:"packages"`
	Durations     []DurationSeed     `mapstructure:"durations"`
	Services      []ServiceSeed      `mapstructure:"services"`
	EpisodeCounts []EpisodeCountSeed `mapstructure:"episodeCounts"`
}

type PackageSeed struct {
	Type       string   `mapstructure:"type"`
	Name       string   `mapstructure:"name"`
	BasePrice  float64  `mapstructure:"basePrice"`
	Tag        string   `mapstructure:"tag"`
	TagClasses string   `mapstructure:"tagClasses"`
	SortOrder  int      `mapstructure:"sortOrder"`
	Features   []string `mapstructure:"features"`
}

type DurationSeed struct {
	Months          int     `mapstructure:"months"`
	DiscountPercent float64 `mapstructure:"discountPercent"`
	Label           string  `mapstructure:"label"`
	SortOrder       int     `mapstructure:"sortOrder"`
}

type ServiceSeed struct {
	Name        string  `mapstructure:"name"`
	Price       float64 `mapstructure:"price"`
	Description string  `mapstructure:"description"`
	SortOrder   int     `mapstructure:"sortOrder"`
}

type EpisodeCountSeed struct {
	Count           int     `mapstructure:"count"`
	DiscountPercent float64 `mapstructure:"discountPercent"`
	Label           string  `mapstructure:"label"`
	SortOrder       int     `mapstructure:"sortOrder"`
}

// LoadCatalogSeed reads calculator.yml from the usual config locations.
// A missing file is not an error: the seed is simply empty.
func LoadCatalogSeed() (CatalogSeed, error) {
	v := viper.New()

	v.SetConfigName("calculator")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/studio")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return CatalogSeed{}, err
		}
		return CatalogSeed{}, nil
	}

	var seed CatalogSeed
	if err := v.UnmarshalKey("catalog", &seed); err != nil {
		return CatalogSeed{}, err
	}
	return seed, nil
}
