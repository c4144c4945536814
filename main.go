package main

import (
	"os"

	"github.com/sadopc/dualtrack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
