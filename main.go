package main

import (
	"os"

	"github.com/resumetools/ats-scanner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
