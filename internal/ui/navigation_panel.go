package ui

import (
	"errors"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ErrInvalidURL is returned for home links that are not absolute http(s) URLs
var ErrInvalidURL = errors.New("URL must start with http:// or https://")

// ValidateHomeURL validates a navigation panel link
func ValidateHomeURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed, the default is used
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ErrInvalidURL
	}
	if parsedURL.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// NavigationPanel is the side panel next to the editor: a link to the
// configured home page above a live markdown preview of the notes.
type NavigationPanel struct {
	widget.BaseWidget

	title   *widget.Label
	link    *widget.Hyperlink
	preview *widget.RichText
}

// NewNavigationPanel creates a panel pointing at homeURL
func NewNavigationPanel(title, homeURL string) *NavigationPanel {
	p := &NavigationPanel{
		title:   widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		link:    widget.NewHyperlink(homeURL, nil),
		preview: widget.NewRichTextFromMarkdown(""),
	}
	p.preview.Wrapping = fyne.TextWrapWord
	_ = p.SetHomeURL(homeURL)

	p.ExtendBaseWidget(p)
	return p
}

// SetHomeURL points the link at raw. Invalid URLs leave the link unchanged.
func (p *NavigationPanel) SetHomeURL(raw string) error {
	if err := ValidateHomeURL(raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	if err := p.link.SetURLFromString(raw); err != nil {
		return err
	}
	p.link.SetText(raw)
	return nil
}

// HomeURL returns the link target
func (p *NavigationPanel) HomeURL() string {
	if p.link.URL == nil {
		return ""
	}
	return p.link.URL.String()
}

// SetTitle sets the heading above the preview
func (p *NavigationPanel) SetTitle(title string) {
	p.title.SetText(title)
}

// SetMarkdown re-renders the preview
func (p *NavigationPanel) SetMarkdown(md string) {
	p.preview.ParseMarkdown(md)
}

// MinSize keeps the panel readable when the split is dragged
func (p *NavigationPanel) MinSize() fyne.Size {
	size := p.BaseWidget.MinSize()
	if size.Width < NavigationMinWidth {
		size.Width = NavigationMinWidth
	}
	return size
}

// CreateRenderer implements fyne.Widget
func (p *NavigationPanel) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewVBox(p.title, p.link, widget.NewSeparator())
	return widget.NewSimpleRenderer(container.NewBorder(header, nil, nil, nil, container.NewVScroll(p.preview)))
}
