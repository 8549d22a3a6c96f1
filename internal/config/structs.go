package config

import (
	"time"

	"github.com/portal-prestadores/portal/internal/logger"
)

// Storage drivers of the portal session storage.
const (
	StorageMemory   = "memory"
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devmode" toml:"devmode" json:"devMode"` // enable dev mode for development
	Title     string     `mapstructure:"title" toml:"title" json:"title"`
	Log       logger.Log `mapstructure:"log" toml:"log" json:"log"`
	Webserver Webserver  `mapstructure:"webserver" toml:"webserver" json:"webserver"`
	Session   Session    `mapstructure:"session" toml:"session" json:"session"`
	API       API        `mapstructure:"api" toml:"api" json:"api"`
	DevAPI    DevAPI     `mapstructure:"devapi" toml:"devapi" json:"devAPI"`
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   `mapstructure:"browsestatic" toml:"browsestatic" json:"browseStatic"`       // static file browsing, development only
	CleanPath      bool   `mapstructure:"cleanpath" toml:"cleanpath" json:"cleanPath"`                // allow multi slash requests
	DisableRecover bool   `mapstructure:"disablerecover" toml:"disablerecover" json:"disableRecover"` // disable recover middleware
	Domain         string `mapstructure:"domain" toml:"domain" json:"domain"`                         // cookie domain
	Port           int    `mapstructure:"port" toml:"port" json:"port"`                               // listening port
	ShutDownTime   int    `mapstructure:"shutdowntime" toml:"shutdowntime" json:"shutDownTime"`       // wait time for shutdown in seconds
	URL            string `mapstructure:"url" toml:"url" json:"url"`                                  // public base url
	CookieName     string `mapstructure:"cookiename" toml:"cookiename" json:"cookieName"`             // browser session cookie
	CookieSecure   bool   `mapstructure:"cookiesecure" toml:"cookiesecure" json:"cookieSecure"`
}

// Session settings of the portal sessions.
type Session struct {
	ExpiryTime     time.Duration `mapstructure:"expirytime" toml:"expirytime" json:"expiryTime"` // lifetime of persisted keys
	CacheSize      int           `mapstructure:"cachesize" toml:"cachesize" json:"cacheSize"`    // mounted sessions kept in memory
	LoginRoute     string        `mapstructure:"loginroute" toml:"loginroute" json:"loginRoute"`
	RecoveryRoute  string        `mapstructure:"recoveryroute" toml:"recoveryroute" json:"recoveryRoute"`
	DefaultRoute   string        `mapstructure:"defaultroute" toml:"defaultroute" json:"defaultRoute"`
	ExpiredMessage string        `mapstructure:"expiredmessage" toml:"expiredmessage" json:"expiredMessage"`
	Storage        Storage       `mapstructure:"storage" toml:"storage" json:"storage"`
}

// Storage selects the durable storage of session keys.
type Storage struct {
	Driver        string `mapstructure:"driver" toml:"driver" json:"driver"` // memory, mysql or postgres
	ConnectionURI string `mapstructure:"connectionuri" toml:"connectionuri" json:"connectionURI"`
	Table         string `mapstructure:"table" toml:"table" json:"table"`
}

// API holds the settings of the backend REST API and its gateway interceptor.
type API struct {
	BaseURL         string        `mapstructure:"baseurl" toml:"baseurl" json:"baseURL"`
	Timeout         time.Duration `mapstructure:"timeout" toml:"timeout" json:"timeout"`
	DeniedMessage   string        `mapstructure:"deniedmessage" toml:"deniedmessage" json:"deniedMessage"`
	FallbackMessage string        `mapstructure:"fallbackmessage" toml:"fallbackmessage" json:"fallbackMessage"`
	NotifyCooldown  time.Duration `mapstructure:"notifycooldown" toml:"notifycooldown" json:"notifyCooldown"`
	RedirectDelay   time.Duration `mapstructure:"redirectdelay" toml:"redirectdelay" json:"redirectDelay"`
}

// DevAPI configures the development backend.
type DevAPI struct {
	Port      int           `mapstructure:"port" toml:"port" json:"port"`
	JWTSecret string        `mapstructure:"jwtsecret" toml:"jwtsecret" json:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenttl" toml:"tokenttl" json:"tokenTTL"`
	Seed      bool          `mapstructure:"seed" toml:"seed" json:"seed"` // create demo users on start
	DB        DB            `mapstructure:"db" toml:"db" json:"db"`
}

// DB holds the database configuration settings of the development backend.
type DB struct {
	Extras     string `mapstructure:"extras" toml:"extras" json:"extras"`
	Host       string `mapstructure:"host" toml:"host" json:"host"`
	Port       int    `mapstructure:"port" toml:"port" json:"port"`
	User       string `mapstructure:"user" toml:"user" json:"user"`
	Password   string `mapstructure:"password" toml:"password" json:"password"`
	Name       string `mapstructure:"name" toml:"name" json:"name"`
	GormEngine string `mapstructure:"gormengine" toml:"gormengine" json:"gormEngine"` // sqlite, mysql or postgres
}
