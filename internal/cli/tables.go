package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/sushihentaime/contentfilter/internal/content"
)

func newTypesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported content types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.filter(cmd)
			if err != nil {
				return err
			}

			aliases := make(map[content.ContentType][]string)
			for alias, ct := range typeAliases {
				aliases[ct] = append(aliases[ct], alias)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Mime type", "Aliases", "Validated"})
			for _, mt := range filter.MimeTypes() {
				ct := content.ContentType(mt)
				names := aliases[ct]
				sort.Strings(names)

				validated := "no"
				if ct == content.XHTML {
					validated = "yes"
				}
				tw.AppendRow(table.Row{mt, strings.Join(names, ", "), validated})
			}
			tw.SetStyle(table.StyleLight)
			tw.Render()
			return nil
		},
	}
}

func newAllowlistCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "allowlist",
		Short: "Show the elements and attributes the sanitizer keeps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			allowlist := content.DefaultAllowlist()
			global, perTag := groupAttributes(allowlist.Attributes)

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Element", "Attributes"})
			for _, tag := range allowlist.Tags {
				tw.AppendRow(table.Row{tag, strings.Join(perTag[tag], " ")})
			}

			replaced := make([]string, 0, len(allowlist.Replaced))
			for from := range allowlist.Replaced {
				replaced = append(replaced, from)
			}
			sort.Strings(replaced)

			tw.AppendSeparator()
			for _, from := range replaced {
				tw.AppendRow(table.Row{from, "becomes " + allowlist.Replaced[from]})
			}

			tw.AppendSeparator()
			tw.AppendRow(table.Row{"(any)", strings.Join(global, " ")})
			tw.SetStyle(table.StyleLight)
			tw.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "URL attributes: %s\n", strings.Join(allowlist.URLs, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "Protocols: %s\n", strings.Join(allowlist.Protocols, ", "))
			return nil
		},
	}
}

// groupAttributes splits elem.attr patterns into attributes allowed on every
// element and those allowed per element. elem.- entries are dropped.
func groupAttributes(patterns []string) ([]string, map[string][]string) {
	var global []string
	perTag := make(map[string][]string)

	for _, p := range patterns {
		elem, attr, ok := strings.Cut(p, ".")
		if !ok || attr == "-" {
			continue
		}
		if elem == "*" {
			global = append(global, attr)
			continue
		}
		perTag[elem] = append(perTag[elem], attr)
	}

	return global, perTag
}
