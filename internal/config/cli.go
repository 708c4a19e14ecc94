// Package config defines the command line and configuration file schema.
package config

import "github.com/Alia5/vtouch/internal/cmd"

// Log controls process logging.
type Log struct {
	Level     string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"VTOUCH_LOG_LEVEL"`
	File      string `help:"Also write logs to this file" type:"path" env:"VTOUCH_LOG_FILE"`
	TraceFile string `help:"Write a per-event touch trace to this file (stdout at trace level)" type:"path" env:"VTOUCH_LOG_TRACE_FILE"`
}

// CLI is the root of the kong command tree.
type CLI struct {
	Config string `help:"Configuration file (json, yaml or toml)" type:"path" env:"VTOUCH_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Run       cmd.Run            `cmd:"" help:"Turn a touch screen into virtual pad buttons"`
	Replay    cmd.Replay         `cmd:"" help:"Play a recorded touch script through the overlay"`
	ConfigCmd cmd.ConfigCommand  `cmd:"" name:"config" help:"Manage configuration files"`
	Service   cmd.ServiceCommand `cmd:"" help:"Manage the vtouch system service"`
}
