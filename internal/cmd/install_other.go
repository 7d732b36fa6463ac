//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errNoServiceManager = errors.New("service management is only supported on linux")

func install(logger *slog.Logger) error { return errNoServiceManager }

func uninstall(logger *slog.Logger) error { return errNoServiceManager }
