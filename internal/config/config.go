package config

const (
	// DefaultTaskFile is the task file path, relative to the project root.
	DefaultTaskFile = "data/tasks.txt"

	// DefaultPrompt is shown before each input line.
	DefaultPrompt = ">> "

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the resolved configuration.
type Config struct {
	// Task file location. Relative paths resolve against ProjectRoot.
	TaskFile string `toml:"task_file"`

	// Hold an advisory lock on <task_file>.lock during every load and save.
	Lock bool `toml:"lock"`

	// Interactive prompt.
	Prompt string `toml:"prompt"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Derived values, not read from files.
	ProjectRoot string   `toml:"-"`
	ConfigFiles []string `toml:"-"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.Lock = true
	cfg.Prompt = DefaultPrompt
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
