package config

import "os"

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Momo configuration file
# Values can be overridden by MOMO_* environment variables or CLI flags

# Task file (relative to the current directory; supports ~ and $VAR)
task_file = "data/tasks.txt"

# Hold an advisory lock on <task_file>.lock while reading and writing
lock = true

# Interactive prompt
prompt = ">> "

# Logging goes to stderr
# log_level: debug, info, warn, error, fatal
log_level = "info"
# log_format: text, json, logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}

// WriteExample writes the example config to path. It refuses to overwrite
// an existing file.
func WriteExample(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(ExampleConfig()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
