package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	UseConsoleWriter bool `mapstructure:"useconsolewriter" toml:"useconsolewriter" json:"useConsoleWriter"`
}

// Rolling configures one lumberjack rolled log file.
type Rolling struct {
	File       string `mapstructure:"file" toml:"file" json:"file"`
	MaxSize    int    `mapstructure:"maxsize" toml:"maxsize" json:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxbackups" toml:"maxbackups" json:"maxBackups"`
	MaxAge     int    `mapstructure:"maxage" toml:"maxage" json:"maxAge"` // days
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// LogFile implements a file based logger, one rolled file per level group.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path"`

	Access Rolling `mapstructure:"access" toml:"access" json:"access"`
	Error  Rolling `mapstructure:"error" toml:"error" json:"error"`
	Info   Rolling `mapstructure:"info" toml:"info" json:"info"`
	Trace  Rolling `mapstructure:"trace" toml:"trace" json:"trace"`
	Warn   Rolling `mapstructure:"warn" toml:"warn" json:"warn"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"loglevel" toml:"loglevel" json:"logLevel"` // trace, debug, info, warn, error.
	LogEnv   string `mapstructure:"logenv" toml:"logenv" json:"logEnv"`

	// EnableAccessLogToConsole writes the access log to the console as well.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool `mapstructure:"enableaccesslogtoconsole" toml:"enableaccesslogtoconsole" json:"enableAccessLogToConsole"`
	ReportCaller             bool `mapstructure:"reportcaller" toml:"reportcaller" json:"reportCaller"`
	DisableCheckAlive        bool `mapstructure:"disablecheckalive" toml:"disablecheckalive" json:"disableCheckAlive"` // do not log skipped paths

	AppName     string `mapstructure:"appname" toml:"appname" json:"appName"`
	ServiceName string `mapstructure:"servicename" toml:"servicename" json:"serviceName"`

	Console Console `mapstructure:"console" toml:"console" json:"console"`
	File    LogFile `mapstructure:"file" toml:"file" json:"file"`
}
