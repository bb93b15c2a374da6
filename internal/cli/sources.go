package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/crosscheck/internal/catalog"
	"github.com/ppiankov/crosscheck/internal/model"
)

var sourcesCategory string

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source catalog",
	Long: `Sources prints the outlets crosscheck searches, with their political
category and credibility score.

Example:
  crosscheck sources
  crosscheck sources --category factcheck`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listSources(cmd.OutOrStdout(), catalog.Default(), sourcesCategory)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().StringVarP(&sourcesCategory, "category", "c", "", "only list one category")
}

func listSources(w io.Writer, cat *catalog.Catalog, category string) error {
	sources := cat.All()
	if category != "" {
		c, err := model.ParseCategory(category)
		if err != nil {
			return err
		}
		sources = cat.ByCategory(c)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDOMAIN\tCATEGORY\tCREDIBILITY\tNOTE")
	for _, s := range sources {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.Name, s.Domain, s.Category, s.CredibilityScore, s.WarningLabel)
	}
	fmt.Fprintf(tw, "\n%d sources\n", len(sources))
	return tw.Flush()
}
