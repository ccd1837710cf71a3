// Command platedrift fits Pacific plate drift distance against volcano age and reports
// the drift velocity with its uncertainty.
package main

import (
	"os"

	"go.dedis.ch/onet/v3/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
