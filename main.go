// Package main provides the entry point for the marcframeview CLI tool.
package main

import (
	"marcframeview/cmd"
)

func main() {
	cmd.Execute()
}
