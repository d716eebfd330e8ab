// Package main is the ur3kin CLI command itself.
package main

import (
	"log"
	"os"

	"github.com/Tiennd11/ur3-robot-ik/cli"
)

func main() {
	if err := cli.NewApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
