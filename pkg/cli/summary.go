package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/panelkit/panelship/pkg/domain/model"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// printSummary writes a short human readable result of the run
func printSummary(w io.Writer, report *model.ReleaseReport) {
	if report.Version != "" {
		infoColor.Fprintf(w, "tagged    ")
		fmt.Fprintf(w, "v%s\n", report.Version)
	}

	if r := report.Publish; r != nil {
		if !r.Success {
			failColor.Fprintf(w, "failed    ")
			fmt.Fprintf(w, "%v\n", r.Err)
		} else {
			action := "updated"
			if r.Installed {
				action = "installed"
			}
			okColor.Fprintf(w, "%-10s", action)
			fmt.Fprintf(w, "%s:%s (app %s) in %s\n", r.Package.Name, r.Package.Version, r.App.ID, r.Project.Name)
		}
	}

	if len(report.Stages) > 0 {
		fmt.Fprintf(w, "stages    %v\n", report.Stages)
	}
}
