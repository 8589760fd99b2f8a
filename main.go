package main

import (
	"os"

	"github.com/asaidimu/go-portal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
