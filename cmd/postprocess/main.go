package main

import (
	"os"

	"github.com/tsonic/express-postprocess/cmd/postprocess/commands"
	"github.com/tsonic/express-postprocess/display"
	"github.com/tsonic/express-postprocess/logger"
)

func main() {
	err := commands.RootCmd.Execute()
	if err != nil {
		display.Error(err)
	}
	logger.Cleanup()
	if err != nil {
		os.Exit(1)
	}
}
