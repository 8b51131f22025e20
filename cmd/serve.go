package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/XS227/StreamerSite/internal/editor"
	"github.com/XS227/StreamerSite/internal/project"
	"github.com/XS227/StreamerSite/internal/server"
)

var initialPage string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Hosts the editor and watches the project for changes",
	Long: `The serve command loads the editor configuration and the active project,
opens the requested page (or the home page) on the canvas, and serves the
editor API, its websocket event stream and the application's static files.
Changes to the project metadata or template files reload the project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ed, err := newEditor(appConfig, logger)
		if err != nil {
			return err
		}
		defer ed.Close()

		if _, err := ed.Init(ctx, initialPage); err != nil {
			return err
		}

		switch {
		case appConfig.Watch && appConfig.Source != "":
			logger.Info("project watching disabled: documents are fetched from source", "source", appConfig.Source)
		case appConfig.Watch:
			watcher, err := watchProject(ctx, ed, logger.Named("watch"))
			if err != nil {
				logger.Warn("project watching disabled", "error", err)
			} else {
				defer watcher.Close()
			}
		}

		srv := server.New(server.Config{
			Port:     appConfig.Port,
			Root:     appConfig.Root,
			AllowAll: appConfig.AllowAllOrigins,
		}, ed, logger.Named("server"))

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// watchProject reloads the project, debounced, whenever its metadata
// document or template files change.
func watchProject(ctx context.Context, ed *editor.Editor, log hclog.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range watchedDirs(ed) {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				log.Debug("skipping unwatchable path", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					log.Warn("failed to watch", "path", path, "error", err)
				}
			}
			return nil
		})
		if err != nil {
			log.Warn("error walking watch root", "path", dir, "error", err)
		}
	}

	go func() {
		var reloadTimer *time.Timer
		debounce := 500 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				log.Debug("change detected", "path", event.Name, "op", event.Op.String())

				if event.Has(fsnotify.Create) && isDir(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
				}

				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(debounce, func() {
					if _, err := ed.Reload(ctx); err != nil {
						log.Error("project reload failed", "error", err)
						return
					}
					log.Info("project reloaded")
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "error", err)
			}
		}
	}()

	return watcher, nil
}

func watchedDirs(ed *editor.Editor) []string {
	var dirs []string
	if cfg := ed.Config(); cfg != nil {
		meta := cfg.ProjectMeta
		if meta == "" {
			meta = project.DefaultMetaPath
		}
		dirs = append(dirs, filepath.Dir(filepath.Join(appConfig.Root, filepath.FromSlash(project.FSPath(meta)))))
	}
	if p, ok := ed.Project(); ok && !p.Fallback {
		dirs = append(dirs, filepath.Join(appConfig.Root, filepath.FromSlash(project.FSPath(p.TemplatePath))))
	}
	return dirs
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "Port to serve the editor on")
	serveCmd.Flags().StringVar(&initialPage, "page", "", "page to open first (matched against page file paths)")
	serveCmd.Flags().Bool("watch", true, "reload the project when its files change")
	rootCmd.AddCommand(serveCmd)
}
