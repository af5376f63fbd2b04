package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sushihentaime/contentfilter/internal/content"
)

func newRenderCommand(opts *options) *cobra.Command {
	var excerptWidth int

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Sanitize content and print the resulting XHTML",
		Example: `  contentfilter render post.html -t xhtml --base-url https://example.org/blog/
  echo '# Hello' | contentfilter render -t md
  contentfilter render notes.txt --excerpt 80`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.filter(cmd)
			if err != nil {
				return err
			}
			ct, err := resolveType(opts.contentType, filter.MimeTypes())
			if err != nil {
				return err
			}
			base, err := opts.parseBaseURL()
			if err != nil {
				return err
			}
			input, err := readInput(cmd, args, opts.charset)
			if err != nil {
				return err
			}

			out, err := content.FormatText(input, base, ct, filter)
			if err != nil {
				return fmt.Errorf("could not render %s content: %w", ct, err)
			}

			if excerptWidth > 0 {
				out = content.Excerpt(out, excerptWidth)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&excerptWidth, "excerpt", 0, "print a plain-text excerpt of at most this display width instead")

	return cmd
}
