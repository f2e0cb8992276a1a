package parsecache

import (
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Built-in fallbacks, used when neither Options.Config nor the environment
// provides a value.
const (
	DefaultHost = "localhost"
	DefaultPort = 6379
	DefaultTTL  = 24 * time.Hour
)

// Config addresses the backing store and sets the default entry TTL.
// Immutable after construction; it determines the endpoint and default
// expiry for everything the client writes.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int // logical database index
	TTL      time.Duration
}

// Addr renders the endpoint as host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ConfigFromEnv resolves configuration once from the environment:
//
//	REDIS_HOST      (default "localhost")
//	REDIS_PORT      (default 6379)
//	REDIS_PASSWORD  (default none)
//	REDIS_DB        (default 0)
//	CACHE_TTL       seconds (default 86400)
//
// Explicit Options.Config fields take precedence over all of these.
func ConfigFromEnv() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("REDIS_HOST", DefaultHost)
	v.SetDefault("REDIS_PORT", DefaultPort)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", int(DefaultTTL/time.Second))

	return Config{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
	}
}

// withDefaults fills zero fields env-first. DB keeps its zero value as a
// real index unless the environment says otherwise.
func (c Config) withDefaults() Config {
	env := ConfigFromEnv()
	c.Host = coalesce(c.Host, env.Host)
	c.Port = coalesce(c.Port, env.Port)
	c.Password = coalesce(c.Password, env.Password)
	c.DB = coalesce(c.DB, env.DB)
	c.TTL = coalesce(c.TTL, env.TTL)
	return c
}
