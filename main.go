package main

import (
	"context"
	"fmt"
	"os"

	"github.com/JungleeAadmi/component-storage/cmd"
	"github.com/JungleeAadmi/component-storage/internal/core/config"
)

func main() {
	// .env never overrides variables already set in the environment.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd.Execute(context.Background())
}
