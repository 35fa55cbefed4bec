package main

import (
	"github.com/sysnap-io/sysnap/pkg/cli"
)

func main() {
	cli.Execute()
}
