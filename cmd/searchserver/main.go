// Command searchserver loads a YAML corpus into an in-process search server
// and runs queries against it.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/search-server/cmd/searchserver/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
