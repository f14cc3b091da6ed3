package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trustimonials/internal/ffmpeg"
)

func newThumbnailCmd() *cobra.Command {
	opts := ffmpeg.DefaultThumbnailOptions
	cmd := &cobra.Command{
		Use:   "thumbnail <video> <out.webp>",
		Short: "Generate a thumbnail for a local video file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ffmpeg.New().GenerateThumbnail(cmd.Context(), args[0], args[1], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (duration %s, frame at %s)\n", args[1], res.Duration, res.Seek)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "output width in pixels")
	cmd.Flags().IntVar(&opts.Quality, "quality", opts.Quality, "WebP quality (0-100)")
	cmd.Flags().IntVar(&opts.IconSize, "icon-size", opts.IconSize, "play icon size in pixels (0 derives it from width)")
	return cmd
}
