// Package main provides the notekeeper CLI.
package main

import "github.com/mesh-intelligence/notekeeper/internal/cli"

func main() {
	cli.Execute()
}
