// Package config loads the bouncer's upstream server list from a YAML
// file, mirroring the shape and defaulting rules described for the
// bouncer's configuration file.
package config

import (
	"io/ioutil"
	"log"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the fully resolved configuration: the bouncer's own
// identity plus its list of upstream servers.
type Config struct {
	// BouncerName is the bouncer's server-side identity, used as the
	// source prefix on synthetic messages sent to clients (welcome,
	// PONG). Defaults to "carbon" when absent from the YAML.
	BouncerName string

	Servers []ServerConfig
}

// ServerConfig is one upstream network's configuration.
type ServerConfig struct {
	// Name is the short label used in the composite channel namespace,
	// e.g. "freenode" for composite channels like "#freenode#chat".
	Name string

	Nick string
	Host string
	Port int
	Pass string
	SSL  bool
	Chans []string
}

const defaultBouncerName = "carbon"

// rawConfig mirrors the on-disk YAML shape: an optional top-level
// bouncer_name key, with every other top-level key treated as an
// upstream server entry.
type rawConfig struct {
	BouncerName *string                    `yaml:"bouncer_name"`
	Servers     map[string]rawServerConfig `yaml:",inline"`
}

// rawServerConfig mirrors the on-disk YAML shape for a single upstream
// entry. Fields are pointers (except Chans) so we can tell "absent" from
// "zero value" when applying defaults.
type rawServerConfig struct {
	Nick  *string  `yaml:"nick"`
	Host  *string  `yaml:"host"`
	Port  *int     `yaml:"port"`
	Pass  *string  `yaml:"pass"`
	SSL   *bool    `yaml:"ssl"`
	Chans []string `yaml:"chans"`
}

const defaultPort = 6667

// LoadConfig reads and parses the YAML configuration file at path. It
// returns one ServerConfig per entry that has a usable host; entries
// missing a host are logged and skipped rather than failing the whole
// load (spec: "Missing or empty host -> server entry skipped").
func LoadConfig(path string) (Config, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to read config file %s", path)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse config file %s", path)
	}

	cfg := Config{BouncerName: defaultBouncerName}
	if raw.BouncerName != nil && *raw.BouncerName != "" {
		cfg.BouncerName = *raw.BouncerName
	}

	for name, entry := range raw.Servers {
		server, ok := entry.resolve(name)
		if !ok {
			continue
		}
		cfg.Servers = append(cfg.Servers, server)
	}

	return cfg, nil
}

// resolve applies the field defaults described for the configuration
// file, logging the generated nick and any non-positive port it replaces
// (an absent port, pass or ssl is defaulted silently). ok is false when
// the entry has no usable host and must be skipped entirely.
func (r rawServerConfig) resolve(name string) (cfg ServerConfig, ok bool) {
	cfg.Name = name

	if r.Host == nil || *r.Host == "" {
		log.Printf("config: server %q has no host, skipping", name)
		return ServerConfig{}, false
	}
	cfg.Host = *r.Host

	if r.Nick == nil || *r.Nick == "" {
		cfg.Nick = defaultNick()
		log.Printf("config: server %q has no nick, defaulting to %s", name, cfg.Nick)
	} else {
		cfg.Nick = *r.Nick
	}

	if r.Port == nil || *r.Port <= 0 {
		cfg.Port = defaultPort
		if r.Port != nil {
			log.Printf("config: server %q has an invalid port, defaulting to %d", name, defaultPort)
		}
	} else {
		cfg.Port = *r.Port
	}

	if r.Pass != nil {
		cfg.Pass = *r.Pass
	}

	if r.SSL != nil {
		cfg.SSL = *r.SSL
	}

	cfg.Chans = r.Chans

	return cfg, true
}

// defaultNick generates "carbon" suffixed with a uniformly random 16-bit
// integer, per spec.
func defaultNick() string {
	return "carbon" + strconv.Itoa(rand.Intn(1<<16))
}
