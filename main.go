package main

import (
	"os"

	"github.com/skillboost/skillboost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
