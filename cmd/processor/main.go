// Command processor runs the media jobs queued by the API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "processor",
		Short:         "Media processor for Trustimonials",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newThumbnailCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
