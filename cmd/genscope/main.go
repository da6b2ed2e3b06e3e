// Package main is the entry point for the genscope CLI tool.
package main

import (
	"github.com/genscope/genscope/internal/cmd"
)

func main() {
	cmd.Execute()
}
