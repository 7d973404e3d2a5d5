package main

import (
	"fmt"
	"os"

	"github.com/decker502/herofield/internal/cli"
	"github.com/decker502/herofield/pkg/embedded"
)

func main() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
