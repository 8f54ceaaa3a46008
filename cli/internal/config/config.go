// Package config loads CLI connection settings from flags, environment,
// dotenv files and an optional .yabx-mysql.yaml.
package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/yabx-net/mysql/runtime/client"
)

// AppFs is the filesystem used for dotenv discovery and SaveConfig
var AppFs = afero.NewOsFs()

const (
	configName = ".yabx-mysql"
	envPrefix  = "YABX_MYSQL"
)

// Keys understood in the config file, as YABX_MYSQL_* variables and as flags
const (
	KeyHost             = "host"
	KeyPort             = "port"
	KeyUser             = "user"
	KeyPassword         = "password"
	KeyDatabase         = "database"
	KeyCharset          = "charset"
	KeyConnectTimeout   = "connect_timeout"
	KeyStatementTimeout = "statement_timeout"
	KeyDebug            = "debug"
)

// Setup registers defaults, search paths and env bindings on v.
// configFile, when set, replaces the search path.
func Setup(v *viper.Viper, configFile string) error {
	def := client.DefaultConfig()
	v.SetDefault(KeyHost, def.Host)
	v.SetDefault(KeyPort, def.Port)
	v.SetDefault(KeyUser, "root")
	v.SetDefault(KeyCharset, def.Charset)
	v.SetDefault(KeyConnectTimeout, def.ConnectTimeout)
	v.SetDefault(KeyStatementTimeout, time.Duration(0))

	v.SetFs(AppFs)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "yabx-mysql"))
	}

	loadDotenv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return err
		}
	}
	return nil
}

// .env.local overrides .env; both are optional
func loadDotenv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

// Connection builds a client.Config from the resolved settings
func Connection(v *viper.Viper) client.Config {
	return client.Config{
		Host:             v.GetString(KeyHost),
		Port:             v.GetInt(KeyPort),
		User:             v.GetString(KeyUser),
		Password:         v.GetString(KeyPassword),
		Database:         v.GetString(KeyDatabase),
		Charset:          v.GetString(KeyCharset),
		ConnectTimeout:   v.GetDuration(KeyConnectTimeout),
		StatementTimeout: v.GetDuration(KeyStatementTimeout),
	}
}

// Save writes the connection settings, minus the password, to
// $HOME/.config/yabx-mysql/.yabx-mysql.yaml.
func Save(v *viper.Viper) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "yabx-mysql")
	if err := AppFs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	out := viper.New()
	out.SetFs(AppFs)
	for _, key := range []string{KeyHost, KeyPort, KeyUser, KeyDatabase, KeyCharset, KeyConnectTimeout, KeyStatementTimeout} {
		if val := v.Get(key); val != nil {
			out.Set(key, val)
		}
	}

	path := filepath.Join(dir, configName+".yaml")
	return path, out.WriteConfigAs(path)
}
