package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/XS227/StreamerSite/internal/resolver"
)

var resolvePage string

// pagesCmd represents the pages command
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Lists the active project's pages as the editor resolves them",
	Long: `The pages command loads the editor configuration and project metadata the
same way the editor does, and prints the resulting page list as YAML. With
--resolve it also reports which page a deep link would open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := newEditor(appConfig, logger)
		if err != nil {
			return err
		}
		defer ed.Close()

		if err := ed.LoadConfig(cmd.Context()); err != nil {
			return err
		}
		if err := ed.LoadProject(cmd.Context()); err != nil {
			return err
		}
		p, _ := ed.Project()

		out := struct {
			Name     string      `yaml:"name"`
			Template string      `yaml:"templatePath"`
			Fallback bool        `yaml:"fallback,omitempty"`
			Pages    interface{} `yaml:"pages"`
			Resolved string      `yaml:"resolved,omitempty"`
		}{
			Name:     p.Name,
			Template: p.TemplatePath,
			Fallback: p.Fallback,
			Pages:    p.Pages,
		}
		if cmd.Flags().Changed("resolve") {
			if page, ok := resolver.ResolveInitialPage(p.Pages, resolvePage); ok {
				out.Resolved = page.ID
			}
		}

		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("encoding page list: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	pagesCmd.Flags().StringVar(&resolvePage, "resolve", "", "report which page this identifier opens")
	rootCmd.AddCommand(pagesCmd)
}
