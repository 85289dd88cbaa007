package config

// LogLevel controls console logging verbosity.
type LogLevel string

const (
	LogNone   LogLevel = "none"
	LogNormal LogLevel = "normal"
	LogDebug  LogLevel = "debug"
)

// Config is the top-level doxynav configuration, corresponding to .doxynav.yml.
type Config struct {
	RootDir   string        `yaml:"root_dir" koanf:"root_dir"`
	Include   []string      `yaml:"include" koanf:"include"`
	Exclude   []string      `yaml:"exclude" koanf:"exclude"`
	OutputDir string        `yaml:"output_dir" koanf:"output_dir"`
	DBPath    string        `yaml:"db_path" koanf:"db_path"`
	LogLevel  LogLevel      `yaml:"log_level" koanf:"log_level"`
	Server    ServerConfig  `yaml:"server" koanf:"server"`
	Strings   StringsConfig `yaml:"strings" koanf:"strings"`
}

// ServerConfig holds settings for `doxynav serve`.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Watch    bool `yaml:"watch" koanf:"watch"`
}

// StringsConfig supplies the toggle messages for documents built from
// sources that do not carry them, such as markdown outlines.
type StringsConfig struct {
	SyncOn  string `yaml:"sync_on" koanf:"sync_on"`
	SyncOff string `yaml:"sync_off" koanf:"sync_off"`
}
