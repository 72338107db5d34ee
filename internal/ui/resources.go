package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "md-wr.png"
)

// LoadIconResource loads the application icon from the working directory
func LoadIconResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
