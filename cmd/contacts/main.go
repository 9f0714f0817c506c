// Command contacts is an interactive contact manager.
package main

import "github.com/mesh-intelligence/contacts/internal/cli"

func main() {
	cli.Execute()
}
