package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/XS227/StreamerSite/internal/mode"
	"github.com/XS227/StreamerSite/internal/panel"
)

var (
	inspectPage  string
	inspectMode  string
	inspectClick string
	inspectRaw   bool
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Loads a page headless and prints its inspection output",
	Long: `The inspect command runs one editor session without a server: it opens the
requested page, switches to the given mode, optionally clicks an element, and
prints the inspection panel's html tab. With --raw it prints the document
markup as it stands after the mode has been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := mode.Parse(inspectMode)
		if err != nil {
			return err
		}

		ed, err := newEditor(appConfig, logger)
		if err != nil {
			return err
		}
		defer ed.Close()

		sess, err := ed.Init(cmd.Context(), inspectPage)
		if err != nil {
			return err
		}
		select {
		case <-sess.Done():
		case <-time.After(30 * time.Second):
			return fmt.Errorf("page %s did not finish loading", sess.Page().File)
		}

		if err := ed.SetMode(m); err != nil {
			return err
		}
		if inspectClick != "" {
			res, err := ed.Click(inspectClick)
			if err != nil {
				return err
			}
			if res.Selection != nil {
				logger.Info("selected element", "path", res.Selection.Path)
			}
		}

		out := ed.Panel().Content[panel.HTML]
		if inspectRaw {
			markup, ok := ed.Markup()
			if !ok {
				return fmt.Errorf("page %s is not accessible: %v", sess.Page().File, sess.Err())
			}
			out = markup
		}
		_, err = fmt.Fprintln(os.Stdout, out)
		return err
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPage, "page", "", "page to open (matched against page file paths)")
	inspectCmd.Flags().StringVar(&inspectMode, "mode", string(mode.Design), "mode to apply: edit, design or preview")
	inspectCmd.Flags().StringVar(&inspectClick, "click", "", "CSS selector of an element to click after loading")
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "print the document markup instead of the panel")
	rootCmd.AddCommand(inspectCmd)
}
