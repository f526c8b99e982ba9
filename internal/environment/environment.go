// Package environment reads process environment overrides for the daemon.
// Everything the schema validates lives in the config file; the knobs here
// are deployment details that vary per host.
package environment

import "github.com/spf13/viper"

// Environment holds LMOUNTD_* environment values.
type Environment struct {
	ConfigPath string
	LogLevel   string
	BindAddr   string
	BrokerURL  string
}

// New reads the process environment.
func New() Environment {
	v := viper.New()
	v.SetEnvPrefix("LMOUNTD")
	v.AutomaticEnv()

	e := Environment{
		ConfigPath: v.GetString("CONFIG"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		BindAddr:   v.GetString("BIND"),
		BrokerURL:  v.GetString("BROKER_URL"),
	}

	if e.LogLevel == "" {
		e.LogLevel = "info"
	}
	if e.BindAddr == "" {
		e.BindAddr = ":9003"
	}

	return e
}

// IsDebug reports whether debug logging is requested.
func (e Environment) IsDebug() bool {
	return e.LogLevel == "debug"
}
