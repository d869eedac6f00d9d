package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/nopeusbotti/nopeusbotti/utils"
	"github.com/spf13/cobra"
)

func main() {
	utils.InitLogging()

	// Twitter credentials may live in a .env file next to the binary.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "nopeusbotti",
		Short: "A bot that tracks bus speeds and posts speeding buses on Twitter",
	}
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
