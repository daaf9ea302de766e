// Command devfs runs file operations on local and remote devices.
package main

import (
	"os"

	"github.com/jmgilman/devaccess/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
