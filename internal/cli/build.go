package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moorworks/peatshelf/internal/catalog"
)

var (
	buildCovers    string
	buildMapping   string
	buildOut       string
	buildCoverBase string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the catalog manifest from cover images",
	Long: `Build scans the cover directory, derives title, author and year from each
file name ("YYYY - Author - Title.jpg"), resolves the document URL through
the title mapping, and writes the manifest the daemon serves.

Covers whose title is absent from the mapping are left out: every published
entry must link to a readable document.

Example:
  shelfctl build --covers ./data/covers --mapping ./data/document-urls.json --out ./data/catalog.json`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildCovers, "covers", "./data/covers", "directory of cover images")
	buildCmd.Flags().StringVar(&buildMapping, "mapping", "./data/document-urls.json", "title-to-URL mapping file")
	buildCmd.Flags().StringVar(&buildOut, "out", "./data/catalog.json", "manifest output path")
	buildCmd.Flags().StringVar(&buildCoverBase, "cover-base", catalog.DefaultCoverBase, "public URL prefix for cover references")
}

func runBuild(cmd *cobra.Command, args []string) error {
	if verbose {
		fmt.Fprintf(os.Stderr, "Covers: %s\n", buildCovers)
		fmt.Fprintf(os.Stderr, "Mapping: %s\n", buildMapping)
	}

	entries, err := catalog.Build(catalog.BuildConfig{
		CoverDir:    buildCovers,
		MappingPath: buildMapping,
		CoverBase:   buildCoverBase,
	})
	if err != nil {
		return err
	}
	if err := catalog.Write(buildOut, entries); err != nil {
		return err
	}
	fmt.Printf("Wrote %d entries to %s\n", len(entries), buildOut)
	return nil
}
