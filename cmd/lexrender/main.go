// Command lexrender renders a lexicon into a configured dictionary document.
package main

import (
	"os"

	"git.home.luguber.info/inful/lexrender/cmd/lexrender/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
