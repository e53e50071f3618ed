// Package config loads the scheduler's config.toml, mirroring the
// load-or-write-defaults behavior of the original Config::get_config.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mineplex-ops/fleet-scheduler/internal/region"
)

// SystemName is the host operating system the scheduler believes it runs on.
type SystemName string

const (
	Linux   SystemName = "Linux"
	Mac     SystemName = "Mac"
	Windows SystemName = "Windows"
)

// System wraps the configured SystemName.
type System struct {
	System SystemName `toml:"system"`
}

// RedisConfig is the address of the shared cache.
type RedisConfig struct {
	Address string `toml:"address"`
	Port    string `toml:"port"`
}

// DefaultRedisConfig matches the original Rust Default impl.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{Address: "127.0.0.1", Port: "6379"}
}

// MonitorInfo holds filesystem paths the host-side launcher reads from.
type MonitorInfo struct {
	ScriptsPath string `toml:"scripts_path"`
	WorldsPath  string `toml:"worlds_path"`
	ConfigPath  string `toml:"config_path"`
}

// DefaultMonitorInfo matches the original Rust Default impl.
func DefaultMonitorInfo() MonitorInfo {
	return MonitorInfo{
		ScriptsPath: "/home/mineplex",
		WorldsPath:  "/home/mineplex/worlds",
		ConfigPath:  "/home/mineplex/configs",
	}
}

// DedicatedServerConfig describes one node as read from config.toml. Its
// cpu/ram fields seed both the max and the available fields of the runtime
// dedicated.DedicatedServer at load time.
type DedicatedServerConfig struct {
	Name           string        `toml:"name"`
	PublicAddress  string        `toml:"public_address"`
	PrivateAddress string        `toml:"private_address"`
	Region         region.Region `toml:"region"`
	CPU            int16         `toml:"cpu"`
	RAM            int16         `toml:"ram"`
}

// DedicatedServersConfig is the configured node list.
type DedicatedServersConfig struct {
	Servers []DedicatedServerConfig `toml:"servers"`
}

// Config is the full, process-wide configuration.
type Config struct {
	RedisConn        RedisConfig            `toml:"redis_conn"`
	SysInfo          System                 `toml:"sys_info"`
	MonitorInfo      MonitorInfo            `toml:"monitor_info"`
	DedicatedServers DedicatedServersConfig `toml:"dedicated_servers"`
}

// Default returns the zero-state config, matching the original Default impl.
func Default() Config {
	return Config{
		RedisConn:   DefaultRedisConfig(),
		SysInfo:     System{System: Linux},
		MonitorInfo: DefaultMonitorInfo(),
		DedicatedServers: DedicatedServersConfig{
			Servers: []DedicatedServerConfig{},
		},
	}
}

// path is the on-disk location of the config file, fixed like the original.
const path = "config.toml"

// Load reads config.toml. On a missing file or parse failure it writes the
// default config back to disk and returns the default — it never fails
// startup on a bad config file.
func Load() Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return writeDefault()
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return writeDefault()
	}
	return cfg
}

func writeDefault() Config {
	def := Default()
	if f, err := os.Create(path); err == nil {
		_ = toml.NewEncoder(f).Encode(def)
		_ = f.Close()
	}
	return def
}
