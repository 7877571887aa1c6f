package main

import (
	"os"

	"github.com/serplens/kgprofile/cmd/kgprofile"
)

func main() {
	if err := kgprofile.Execute(); err != nil {
		os.Exit(1)
	}
}
