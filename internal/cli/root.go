package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/sushihentaime/contentfilter/internal/content"
	"golang.org/x/text/encoding/htmlindex"
)

// typeAliases maps short names accepted by --type onto mime types.
var typeAliases = map[string]content.ContentType{
	"text":     content.Text,
	"txt":      content.Text,
	"xhtml":    content.XHTML,
	"html":     content.XHTML,
	"markdown": content.Markdown,
	"md":       content.Markdown,
}

type options struct {
	contentType    string
	baseURL        string
	charset        string
	allowedClasses []string
	verbose        bool
	noColor        bool
}

// NewRootCommand builds the contentfilter command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "contentfilter",
		Short: "Sanitize and validate blog content",
		Long: `contentfilter renders untrusted blog content into safe XHTML.

Plain text, XHTML fragments and Markdown are supported. Content is read
from the named file, or from standard input when no file or "-" is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.contentType, "type", "t", string(content.Text), "content type, a mime type or one of text, xhtml, markdown")
	flags.StringVar(&opts.baseURL, "base-url", "", "absolute URL relative links are resolved against")
	flags.StringVar(&opts.charset, "charset", "utf-8", "character encoding of the input")
	flags.StringSliceVar(&opts.allowedClasses, "allow-class", nil, "class names kept by the sanitizer")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log sanitizer decisions to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newRenderCommand(opts),
		newValidateCommand(opts),
		newTypesCommand(opts),
		newAllowlistCommand(),
	)

	return rootCmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *options) filter(cmd *cobra.Command) (*content.MultiContentFilter, error) {
	return content.NewDefaultFilter(o.allowedClasses, content.WithLogger(o.logger(cmd)))
}

func (o *options) parseBaseURL() (*url.URL, error) {
	if o.baseURL == "" {
		return nil, nil
	}
	u, err := url.Parse(o.baseURL)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("--base-url %q must be an absolute URL", o.baseURL)
	}
	return u, nil
}

// resolveType accepts a registered mime type or one of its aliases.
func resolveType(name string, mimeTypes []string) (content.ContentType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if ct, ok := typeAliases[name]; ok {
		return ct, nil
	}
	for _, mt := range mimeTypes {
		if mt == name {
			return content.ContentType(mt), nil
		}
	}

	err := fmt.Errorf("unknown content type %q", name)
	if s := suggestType(name, mimeTypes); s != "" {
		err = fmt.Errorf("%w, did you mean %q?", err, s)
	}
	return "", err
}

func suggestType(name string, mimeTypes []string) string {
	candidates := append([]string(nil), mimeTypes...)
	for alias := range typeAliases {
		candidates = append(candidates, alias)
	}
	sort.Strings(candidates)

	if ranks := fuzzy.RankFindFold(name, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", 4
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(name, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}

// readInput reads the named file, or stdin for "" and "-", decoding it from
// charset into UTF-8.
func readInput(cmd *cobra.Command, args []string, charset string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q", charset)
	}

	data, err := io.ReadAll(enc.NewDecoder().Reader(r))
	if err != nil {
		return "", fmt.Errorf("could not read input: %w", err)
	}
	return string(data), nil
}
