package config

// Config holds the host process settings, decoded by viper.
type Config struct {
	Root            string `mapstructure:"root"`
	Port            int    `mapstructure:"port"`
	ConfigFile      string `mapstructure:"configFile"`
	LayersFile      string `mapstructure:"layersFile"`
	Source          string `mapstructure:"source"` // optional base URL; documents are read from Root when empty
	LogLevel        string `mapstructure:"logLevel"`
	AllowAllOrigins bool   `mapstructure:"allowAllOrigins"`
	Watch           bool   `mapstructure:"watch"`
}

// Defaults used when neither config.yaml nor the environment set a value.
const (
	DefaultRoot       = "."
	DefaultPort       = 8080
	DefaultConfigFile = "config/config.json"
	DefaultLayersFile = "config/layers.json"
	DefaultLogLevel   = "info"
)
