package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Server describes how to reach the RIO: either an explicit address
// override, or a team number the driver station derives an address from.
type Server struct {
	Address  string
	Team     uint32
	Alliance string // e.g. "red1", "blue3"
}

type Configuration struct {
	Server   Server
	LogLevel string

	// Match carries the optional per-run sidecar, when present.
	Match *MatchSidecar
}

// MatchSidecar is the contents of the optional .ds-match.yaml file: match
// metadata a driver-station operator drops next to wherever they run the
// CLI from, so `ds match` doesn't need every flag spelled out by hand.
type MatchSidecar struct {
	Competition string `yaml:"competition"`
	MatchType   string `yaml:"matchType"`
	GameData    string `yaml:"gameData"`
}

const sidecarFileName = ".ds-match.yaml"

func NewConfig() (*Configuration, error) {
	config := Configuration{}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(".ds")
	v.AddConfigPath("$HOME/")
	v.AddConfigPath(".")
	_ = v.SafeWriteConfig()

	v.SetDefault("server.address", "")
	v.SetDefault("server.team", 0)
	v.SetDefault("server.alliance", "red1")
	v.SetDefault("loglevel", "info")

	if err := v.ReadInConfig(); err != nil {
		return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := v.Unmarshal(&config); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}

	sidecar, err := readMatchSidecar(".")
	if err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	config.Match = sidecar

	return &config, nil
}

// readMatchSidecar loads the optional match-info sidecar from dir, if present.
// Its absence is not an error; the sidecar is entirely optional.
func readMatchSidecar(dir string) (*MatchSidecar, error) {
	data, err := os.ReadFile(filepath.Join(dir, sidecarFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sidecar MatchSidecar
	if err := yaml.Unmarshal(data, &sidecar); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", sidecarFileName, err)
	}
	return &sidecar, nil
}
