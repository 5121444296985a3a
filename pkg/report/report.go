// Package report renders the HTML setup guide covering the manual
// follow-up steps (workspaces and essential tabs) that cannot be
// applied mechanically.
package report

import (
	"bytes"
	_ "embed"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zen-tools/zenctl/pkg/config"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// FileName is the guide file written into the profile root.
const FileName = "setup-guide.html"

//go:embed templates/setup-guide.html.tmpl
var guideTemplate string

var titleCaser = cases.Title(language.English)

// workspaceView is a workspace prepared for rendering.
type workspaceView struct {
	Name             string
	Heading          string
	Icon             string
	DefaultContainer string
	Essentials       []string
}

type guideData struct {
	Workspaces []workspaceView
}

// Render produces the setup guide HTML for the given workspaces.
func Render(workspaces []config.Workspace) ([]byte, error) {
	tmpl, err := template.New(FileName).Parse(guideTemplate)
	if err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "setup guide template", err)
	}

	data := guideData{}
	for _, ws := range workspaces {
		name := ws.Name
		if name == "" {
			name = "Unnamed"
		}
		data.Workspaces = append(data.Workspaces, workspaceView{
			Name:             name,
			Heading:          titleCaser.String(name),
			Icon:             ws.Icon,
			DefaultContainer: ws.DefaultContainer,
			Essentials:       ws.Essentials,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, zenerrors.Wrap(zenerrors.ErrCodeInternal, "rendering setup guide", err)
	}
	return buf.Bytes(), nil
}

// Write renders the guide into dir and returns its path. With dryRun
// set, nothing is written.
func Write(dir string, workspaces []config.Workspace, dryRun bool) (string, error) {
	data, err := Render(workspaces)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if dryRun {
		slog.Info("dry-run: would write", "path", path, "bytes", len(data))
		return path, nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", zenerrors.Wrap(zenerrors.ErrCodeInternal, "writing setup guide", err)
	}
	return path, nil
}
