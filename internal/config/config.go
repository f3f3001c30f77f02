package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/davecgh/go-spew/spew"
	"github.com/redis/go-redis/v9"
)

// ConfigStruct is the glue for all configuration sections
type ConfigStruct struct {
	Common   CommonConf   `toml:"common"`
	Database DatabaseConf `toml:"database"`
	Cache    CacheConf    `toml:"cache"`
	Listing  ListingConf  `toml:"listing"`
	Judge    JudgeConf    `toml:"judge"`
}

// CommonConf is the data required for all services
type CommonConf struct {
	Port    int    `toml:"port"`
	LogDir  string `toml:"log_dir"`
	DataDir string `toml:"data_dir"`
	Debug   bool   `toml:"debug"`
}

// DatabaseConf is the data required to establish a PostgreSQL connection
type DatabaseConf struct {
	DBname  string `toml:"dbname"`
	Host    string `toml:"host"`
	SSLmode string `toml:"sslmode"`
	User    string `toml:"user"`
}

// String returns a DSN with all information from the struct
func (d DatabaseConf) String() string {
	return fmt.Sprintf("sslmode=%s host=%s user=%s dbname=%s", d.SSLmode, d.Host, d.User, d.DBname)
}

// CacheConf is the data required for the redis-backed judge queue
type CacheConf struct {
	Host     string `toml:"host"`
	Password string `toml:"password"`
	DB       int    `toml:"DB"`
	List     string `toml:"list"`
}

func (c CacheConf) GenOptions() *redis.Options {
	return &redis.Options{
		Addr:     c.Host,
		Password: c.Password,
		DB:       c.DB,
	}
}

// ListingConf bounds what a single listing request may ask for
type ListingConf struct {
	MaxPageSize int `toml:"max_page_size"`
}

// JudgeConf holds the shared secret the judging daemons report results with
type JudgeConf struct {
	Token string `toml:"token"`
}

var (
	Common   CommonConf
	Database DatabaseConf
	Cache    CacheConf
	Listing  ListingConf
	Judge    JudgeConf
)

// Load reads the config file and populates the package-level sections.
func Load(path string) error {
	var c ConfigStruct
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return fmt.Errorf("couldn't decode config: %w", err)
	}
	if c.Listing.MaxPageSize <= 0 {
		c.Listing.MaxPageSize = 100
	}
	if c.Common.Port == 0 {
		c.Common.Port = 8080
	}

	Common = c.Common
	Database = c.Database
	Cache = c.Cache
	Listing = c.Listing
	Judge = c.Judge

	if Common.Debug {
		spew.Dump(c)
	}
	return nil
}
