package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName   string
	Env       string // DEV (default), TEST, QA, PROD
	Build     string
	Debug     bool
	TestMode  bool
	SecretKey string

	RollbarToken string

	Server struct {
		Host               string
		Addr               string
		DebugAddr          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	Cache struct {
		// TTL is the freshness window for cached query results.
		TTL time.Duration
		// IdleEviction drops entries not read for this long.
		IdleEviction time.Duration
	}

	// ImpersonationStatePath is where the "view as organization" state
	// survives restarts. See core/identity.
	ImpersonationStatePath string
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "ApexDrive Console")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "x1msp-wtf)8hb$+57=dz&uo2h2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.debugAddr", ":8001")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "console")
	v.SetDefault("database.user", "console")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("cache.idleEviction", 10*time.Minute)
	v.SetDefault("impersonationStatePath", filepath.Join(os.TempDir(), "console-view-as.json"))

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:                v.GetString("appName"),
		Env:                    env,
		Build:                  v.GetString("build"),
		Debug:                  v.GetBool("debug"),
		TestMode:               v.GetBool("testMode"),
		SecretKey:              v.GetString("secretKey"),
		RollbarToken:           v.GetString("rollbarToken"),
		ImpersonationStatePath: v.GetString("impersonationStatePath"),
	}
	conf.Server.Host = v.GetString("server.host")
	conf.Server.Addr = v.GetString("server.addr")
	conf.Server.DebugAddr = v.GetString("server.debugAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("server.jwtExpirationDelta")
	conf.Database.Engine = v.GetString("database.engine")
	conf.Database.Name = v.GetString("database.name")
	conf.Database.User = v.GetString("database.user")
	conf.Database.Password = v.GetString("database.password")
	conf.Database.AdminUser = v.GetString("database.adminUser")
	conf.Database.AdminPassword = v.GetString("database.adminPassword")
	conf.Database.Host = v.GetString("database.host")
	conf.Database.Port = v.GetString("database.port")
	conf.Database.DisableTLS = v.GetBool("database.disableTLS")
	conf.Cache.TTL = v.GetDuration("cache.ttl")
	conf.Cache.IdleEviction = v.GetDuration("cache.idleEviction")
	return conf
}

// DatabaseAddress returns the "host:port" of the configured database.
func (c *Config) DatabaseAddress() string {
	return c.Database.Host + ":" + c.Database.Port
}
