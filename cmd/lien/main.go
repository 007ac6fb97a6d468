// Command lien is the CLI entrypoint: it wires the cobra command tree in
// internal/cli against the current process's arguments and environment.
package main

import "github.com/lien-dev/lien/internal/cli"

func main() {
	cli.Execute()
}
