package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sushihentaime/contentfilter/internal/content"
)

// ErrInvalidContent is returned by the validate command when the input is
// rejected, so the process exits non-zero.
var ErrInvalidContent = errors.New("content is invalid")

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check content against the rules of its content type",
		Long: `validate checks XHTML fragments against the XHTML 1.0 Transitional
model and reports the first problem with its line and column. Plain text
and Markdown are always valid.`,
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
			input, err := readInput(cmd, args, opts.charset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = filter.Validate(ct.MimeType(), strings.NewReader(input))
			if err != nil {
				var invalid *content.InvalidContentError
				if !errors.As(err, &invalid) {
					return err
				}
				color.New(color.FgRed, color.Bold).Fprint(out, "invalid: ")
				fmt.Fprintln(out, invalid.Error())
				return ErrInvalidContent
			}

			color.New(color.FgGreen, color.Bold).Fprint(out, "valid")
			fmt.Fprintf(out, " %s\n", ct)
			return nil
		},
	}
}
