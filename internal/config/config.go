// Package config loads and validates the service's YAML configuration,
// resolving ABI paths relative to the config file the way the teacher's
// loader resolves contract ABI paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"

	"github.com/venom-blockchain/fusion-producer/internal/filter"
	"github.com/venom-blockchain/fusion-producer/internal/producer"
	"github.com/venom-blockchain/fusion-producer/internal/serializer"
)

// ScanConfig selects and configures the block source driver.
type ScanConfig struct {
	Kind        string `yaml:"kind"`
	FixturePath string `yaml:"fixture_path"`
	NodeAddress string `yaml:"node_address"`
	ArchivePath string `yaml:"archive_path"`
	Bucket      string `yaml:"bucket"`
	RetryOnError bool  `yaml:"retry_on_error"`
}

// RPCConfig configures the optional RPC-state status server.
type RPCConfig struct {
	ListenAddress string `yaml:"listen_address"`
}

// Config is the top-level, strictly-validated configuration document.
type Config struct {
	Filter     filter.FilterConfig `yaml:"filter_config"`
	Serializer serializer.Config   `yaml:"serializer"`
	Transport  producer.Config     `yaml:"transport"`
	Scan       ScanConfig          `yaml:"scan"`
	RPC        RPCConfig           `yaml:"rpc"`
}

var topLevelFields = []string{"filter_config", "serializer", "transport", "scan", "rpc"}

// Load reads, strictly validates, and unmarshals the configuration file at
// path, resolving relative ABI paths against the config file's directory.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolving path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", absPath, err)
	}

	if err := denyUnknownTopLevel(data); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", absPath, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfgDir := filepath.Dir(absPath)
	for i, record := range cfg.Filter.MessageFilters {
		if record.FilterType.Kind != filter.KindContract {
			continue
		}
		abiPath := record.FilterType.ABIPath
		if !filepath.IsAbs(abiPath) {
			abiPath = filepath.Join(cfgDir, abiPath)
		}
		if _, err := os.Stat(abiPath); err != nil {
			return nil, fmt.Errorf("config: abi file for filter %q not found: %w", record.FilterType.Name, err)
		}
		cfg.Filter.MessageFilters[i].FilterType.ABIPath = abiPath
	}

	return &cfg, nil
}

// denyUnknownTopLevel emulates yaml.v2's missing UnmarshalStrict by
// decoding into a keyed map and checking every top-level key is known.
func denyUnknownTopLevel(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing for strict field check: %w", err)
	}
	known := make(map[string]struct{}, len(topLevelFields))
	for _, k := range topLevelFields {
		known[k] = struct{}{}
	}
	for k := range raw {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("unknown top-level field %q", k)
		}
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Serializer.Kind {
	case serializer.KindJSON, serializer.KindProtobuf:
	default:
		return fmt.Errorf("serializer.kind: unsupported value %q", c.Serializer.Kind)
	}

	switch c.Transport.Kind {
	case producer.KindHTTP2, producer.KindStdio:
	default:
		return fmt.Errorf("transport.kind: unsupported value %q", c.Transport.Kind)
	}

	if len(c.Filter.MessageFilters) == 0 {
		return fmt.Errorf("filter_config.message_filters: at least one filter record is required")
	}

	switch c.Scan.Kind {
	case "fixture", "network", "archive", "s3":
	default:
		return fmt.Errorf("scan.kind: unsupported value %q", c.Scan.Kind)
	}

	return nil
}
