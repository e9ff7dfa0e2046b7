package main

import (
	"os"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/cmd"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.UserError("%v", err)
		os.Exit(errors.GetExitCode(err))
	}
}
