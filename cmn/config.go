/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// CacheType enumerates the CacheBackend variants.
type CacheType string

const (
	CacheNone      CacheType = "none"
	CacheBuiltIn   CacheType = "builtin"
	CacheRedis     CacheType = "redis"
	CacheMemcached CacheType = "memcached"
)

type (
	// ServerConf groups the listener and worker-pool settings.
	ServerConf struct {
		ListenHost     string `json:"listen_host" mapstructure:"listen_host"`
		ListenPort     int    `json:"listen_port" mapstructure:"listen_port"`
		Threads        int    `json:"threads" mapstructure:"threads"`
		ServerURL      string `json:"server_url" mapstructure:"server_url"`
		LogDir         string `json:"log_dir" mapstructure:"log_dir"`
		StaticFilesDir string `json:"static_files_dir" mapstructure:"static_files_dir"`
	}

	// CacheConf configures the ResponseCache's backend.
	CacheConf struct {
		Type            CacheType     `json:"cache_type" mapstructure:"cache_type"`
		URL             string        `json:"cache_url" mapstructure:"cache_url"`
		TTL             time.Duration `json:"cache_ttl" mapstructure:"cache_ttl"`
		ClickValid      time.Duration `json:"click_valid_timeout" mapstructure:"click_valid_timeout"`
		JanitorInterval time.Duration `json:"-"`
	}

	// PromConf toggles the PromExporter.
	PromConf struct {
		Enabled bool   `json:"prometheus_exporter" mapstructure:"prometheus_exporter"`
		Prefix  string `json:"prometheus_exporter_prefix" mapstructure:"prometheus_exporter_prefix"`
	}

	// BrokenConf gives the station-health thresholds; the /config
	// endpoint reports Timeout as check_valid_timeout_seconds.
	BrokenConf struct {
		Timeout            time.Duration `json:"broken_stations_timeout" mapstructure:"broken_stations_timeout"`
		NeverWorkingTimeout time.Duration `json:"broken_stations_never_working_timeout" mapstructure:"broken_stations_never_working_timeout"`
	}

	// Config is the complete, immutable configuration snapshot a running
	// process holds; mutate it only through GCO's BeginUpdate/CommitUpdate
	// pair, never in place.
	Config struct {
		Server ServerConf `json:"server"`
		Cache  CacheConf  `json:"cache"`
		Prom   PromConf   `json:"prometheus"`
		Broken BrokenConf `json:"broken_stations"`
	}
)

// Validate checks the fields every config section contributes; a single
// top-level check suffices given the config's small surface.
func (c *Config) Validate() error {
	if c.Server.Threads <= 0 {
		return errors.New("server.threads must be positive")
	}
	if c.Server.ListenPort <= 0 {
		return errors.New("server.listen_port must be positive")
	}
	switch c.Cache.Type {
	case CacheNone, CacheBuiltIn, CacheRedis, CacheMemcached:
	default:
		return errors.Errorf("unknown cache.type %q", c.Cache.Type)
	}
	if c.Cache.Type == CacheRedis || c.Cache.Type == CacheMemcached {
		if c.Cache.URL == "" {
			return errors.Errorf("cache.url required for cache.type %q", c.Cache.Type)
		}
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConf{
			ListenHost:     "0.0.0.0",
			ListenPort:     8080,
			Threads:        8,
			ServerURL:      "http://localhost:8080",
			LogDir:         "./log",
			StaticFilesDir: "./static",
		},
		Cache: CacheConf{
			Type:            CacheBuiltIn,
			TTL:             time.Minute,
			ClickValid:      30 * time.Minute,
			JanitorInterval: 60 * time.Second,
		},
		Prom: PromConf{
			Enabled: false,
			Prefix:  "radiobrowser_",
		},
		Broken: BrokenConf{
			Timeout:             24 * time.Hour,
			NeverWorkingTimeout: 7 * 24 * time.Hour,
		},
	}
}

// globalConfigOwner is a process-wide atomic pointer holding an immutable
// *Config, swapped under a mutex so concurrent readers never see a
// half-built snapshot.
type globalConfigOwner struct {
	mtx sync.Mutex
	c   unsafe.Pointer // *Config
}

// GCO (Global Config Owner) is loaded once at startup and thereafter
// accessed/updated by other packages strictly through its API.
var GCO = &globalConfigOwner{}

func (gco *globalConfigOwner) Get() *Config {
	return (*Config)(atomic.LoadPointer(&gco.c))
}

func (gco *globalConfigOwner) Put(config *Config) {
	atomic.StorePointer(&gco.c, unsafe.Pointer(config))
}

func (gco *globalConfigOwner) clone() *Config {
	cur := gco.Get()
	cp := *cur
	return &cp
}

// BeginUpdate must be followed by CommitUpdate or DiscardUpdate.
func (gco *globalConfigOwner) BeginUpdate() *Config {
	gco.mtx.Lock()
	return gco.clone()
}

func (gco *globalConfigOwner) CommitUpdate(config *Config) {
	atomic.StorePointer(&gco.c, unsafe.Pointer(config))
	gco.mtx.Unlock()
}

func (gco *globalConfigOwner) DiscardUpdate() {
	gco.mtx.Unlock()
}

// LoadConfig reads the JSON config file at path (if any), overlays
// environment variables (RB_LISTEN_PORT, RB_CACHE_TYPE, ...) via
// viper, applies confCustom ("key1=val1,key2=val2" dotted-path overrides
// passed via -confcustom), validates, and installs the result into GCO.
func LoadConfig(path, confCustom string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			if err := jsoniter.Unmarshal(raw, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config file %s", path)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("RB")
	v.AutomaticEnv()
	overlayEnv(v, cfg)

	if confCustom != "" {
		if err := applyConfCustom(cfg, confCustom); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	GCO.Put(cfg)
	return cfg, nil
}

func overlayEnv(v *viper.Viper, cfg *Config) {
	if s := v.GetString("listen_host"); s != "" {
		cfg.Server.ListenHost = s
	}
	if p := v.GetInt("listen_port"); p != 0 {
		cfg.Server.ListenPort = p
	}
	if t := v.GetInt("threads"); t != 0 {
		cfg.Server.Threads = t
	}
	if s := v.GetString("server_url"); s != "" {
		cfg.Server.ServerURL = s
	}
	if s := v.GetString("cache_type"); s != "" {
		cfg.Cache.Type = CacheType(s)
	}
	if s := v.GetString("cache_url"); s != "" {
		cfg.Cache.URL = s
	}
	if v.IsSet("prometheus_exporter") {
		cfg.Prom.Enabled = v.GetBool("prometheus_exporter")
	}
}

// applyConfCustom applies "key1=value1,key2=value2" overrides against the
// small set of dotted keys this service exposes, via one flat map instead
// of a fully reflective field walk.
func applyConfCustom(cfg *Config, confCustom string) error {
	for _, kv := range strings.Split(confCustom, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return errors.Errorf("malformed -confcustom entry %q", kv)
		}
		key, val := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if err := setByKey(cfg, key, val); err != nil {
			return errors.Wrapf(err, "confcustom key %q", key)
		}
	}
	return nil
}

func setByKey(cfg *Config, key, val string) error {
	switch key {
	case "server.listen_host":
		cfg.Server.ListenHost = val
	case "server.listen_port":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.Server.ListenPort = n
	case "server.threads":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.Server.Threads = n
	case "cache.type":
		cfg.Cache.Type = CacheType(val)
	case "cache.url":
		cfg.Cache.URL = val
	case "cache.ttl":
		d, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		cfg.Cache.TTL = d
	case "prometheus.enabled":
		cfg.Prom.Enabled = val == "true"
	default:
		return fmt.Errorf("unknown config key")
	}
	return nil
}
