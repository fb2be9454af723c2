package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mwantia/lentil/cmd/lentil/cli"
	"github.com/mwantia/lentil/cmd/lentil/cli/catalog"
	"github.com/mwantia/lentil/cmd/lentil/cli/server"
	"github.com/spf13/cobra"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(server.NewAgentCommand())
	root.AddCommand(server.NewConfigCommand())
	root.AddCommand(server.NewMigrateCommand())

	root.AddCommand(catalog.NewTagCommand())
	root.AddCommand(catalog.NewTagsetCommand())
	root.AddCommand(catalog.NewImageCommand())

	os.Exit(execute(root, os.Stderr))
}

// execute runs the command tree and prints a failure to stderr
func execute(root *cobra.Command, stderr io.Writer) int {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
