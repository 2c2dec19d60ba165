// Package config loads the controller's configuration from a YAML file:
// a fresh *viper.Viper per load, not the package singleton, since this
// process may load more than one config over its lifetime (tests do
// exactly that).
package config

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the recognized options loaded from YAML. The mapstructure
// tags match viper's own unmarshal conventions; the yaml tags match the
// lowercase keys viper.AllSettings() hands back to the final yaml.Unmarshal
// pass in Load.
type Config struct {
	Debug  DebugConfig  `mapstructure:"DEBUG" yaml:"debug"`
	Socket SocketConfig `mapstructure:"SOCKET" yaml:"socket"`
	Info   InfoConfig   `mapstructure:"INFO" yaml:"info"`
}

// DebugConfig controls logger verbosity.
type DebugConfig struct {
	Enabled bool `mapstructure:"ENABLED" yaml:"enabled"`
}

// SocketConfig is the controller's listen endpoint.
type SocketConfig struct {
	Host string `mapstructure:"HOST" yaml:"host"`
	Port int    `mapstructure:"PORT" yaml:"port"`
}

// InfoConfig is purely informational, printed at startup.
type InfoConfig struct {
	Name   string `mapstructure:"NAME" yaml:"name"`
	Author string `mapstructure:"AUTHOR" yaml:"author"`
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	port := c.Socket.Port
	if port == 0 {
		port = 8080
	}
	return c.Socket.Host + ":" + strconv.Itoa(port)
}

// Defaults applied when a config file omits INFO.
const (
	defaultName   = "cc-miner"
	defaultAuthor = "unknown"
)

// Load reads the YAML config file at path. It routes through viper first
// (to read and parse the file) and then re-marshals the
// raw settings through yaml.v3 into Config, the way the teacher's own
// FromYaml re-shapes a loosely-typed viper section through yaml.Marshal/
// Unmarshal rather than trusting viper's own mapstructure-based Unmarshal
// for the final, strongly-typed result.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	raw, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Info: InfoConfig{Name: defaultName, Author: defaultAuthor},
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
