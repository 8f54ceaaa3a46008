package main

import (
	"context"
	"os"

	"github.com/yabx-net/mysql/cli/commands"
	"github.com/yabx-net/mysql/cli/internal/ui"
)

func main() {
	if err := commands.ExecuteContext(context.Background()); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}
