package cmd

import "log/slog"

// ServiceCommand manages the system service running `vtouch run`.
type ServiceCommand struct {
	Install   ServiceInstall   `cmd:"" help:"Install and start the service (needs root)"`
	Uninstall ServiceUninstall `cmd:"" help:"Stop and remove the service (needs root)"`
}

type ServiceInstall struct {
	RunConfig string `arg:"" name:"file" help:"Config file holding the run options (see 'config init run')" type:"existingfile"`
}

func (s *ServiceInstall) Run(logger *slog.Logger) error {
	return install(logger, s.RunConfig)
}

type ServiceUninstall struct{}

func (s *ServiceUninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}
