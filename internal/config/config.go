// Package config declares the top-level CLI grammar.
package config

import "github.com/g502-hero/g502d/internal/cmd"

// CLI is the kong root. Flag values can also come from config files in
// JSON/YAML/TOML form; flags and environment override file values.
type CLI struct {
	Config string `help:"Path to a config file" type:"path" env:"G502D_CONFIG"`

	Log struct {
		Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"G502D_LOG_LEVEL"`
		File    string `help:"Write logs to this file in addition to the console" env:"G502D_LOG_FILE"`
		RawFile string `help:"Write raw HID frame dumps to this file" env:"G502D_LOG_RAW_FILE"`
	} `embed:"" prefix:"log."`

	Daemon    cmd.Daemon         `cmd:"" help:"Run the G502 Hero driver daemon."`
	Profiles  cmd.Profiles       `cmd:"" help:"Print the resolved profile table and exit."`
	Ctl       cmd.Ctl            `cmd:"" help:"Talk to a running daemon."`
	ConfigCmd cmd.ConfigCommand  `cmd:"" name:"config" help:"Configuration file helpers."`
	Service   cmd.ServiceCommand `cmd:"" help:"Manage the systemd service."`
}
