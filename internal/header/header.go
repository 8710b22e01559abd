// Package header renders the dashboard header: the language selector,
// the run trigger and the link to the effective driver's source code.
//
// The header holds no state. Every value it shows is derived from Props
// and every user action is delegated to a callback in Props.
package header

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/dusk-indust/uastdash/internal/languages"
)

//go:embed templates/header.html.tmpl
var templateFS embed.FS

var headerTemplate = template.Must(template.ParseFS(templateFS, "templates/header.html.tmpl"))

// Props is the immutable view model of the header.
type Props struct {
	SelectedLanguage  string
	Languages         *languages.Registry
	ActualLanguage    string
	Loading           bool
	UserHasTyped      bool
	OnLanguageChanged func(language string)
	OnRunParser       func()
}

// Option is one entry of the language selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Options builds one selector entry per registered language. The Auto
// entry is labelled with the detected language followed by its own name.
func (p Props) Options() []Option {
	keys := p.Languages.Keys()
	options := make([]Option, 0, len(keys))
	for _, k := range keys {
		d, _ := p.Languages.Lookup(k)
		label := d.Name
		if k == languages.Auto {
			actual, _ := p.Languages.Lookup(p.ActualLanguage)
			label = actual.Name + " " + d.Name
		}
		options = append(options, Option{
			Value:    k,
			Label:    label,
			Selected: k == p.SelectedLanguage,
		})
	}
	return options
}

// RunDisabled reports whether the run trigger is inactive: a request is
// in flight or nothing has been typed yet.
func (p Props) RunDisabled() bool {
	return p.Loading || !p.UserHasTyped
}

// EffectiveLanguage is the detected language when Auto is selected and
// the selected language otherwise.
func (p Props) EffectiveLanguage() string {
	if p.SelectedLanguage == languages.Auto {
		return p.ActualLanguage
	}
	return p.SelectedLanguage
}

// DriverURL returns the driver-code URL of the effective language. The
// caller guarantees that the language is registered.
func (p Props) DriverURL() string {
	d, _ := p.Languages.Lookup(p.EffectiveLanguage())
	return d.URL
}

// ChangeLanguage forwards a selector change to OnLanguageChanged.
func (p Props) ChangeLanguage(language string) {
	if p.OnLanguageChanged != nil {
		p.OnLanguageChanged(language)
	}
}

// Run invokes OnRunParser when the trigger is enabled and reports
// whether it did.
func (p Props) Run() bool {
	if p.RunDisabled() || p.OnRunParser == nil {
		return false
	}
	p.OnRunParser()
	return true
}

// view is the data handed to the template.
type view struct {
	Options     []Option
	RunDisabled bool
	DriverURL   string
}

// Render writes the header HTML to w.
func (p Props) Render(w io.Writer) error {
	return headerTemplate.Execute(w, view{
		Options:     p.Options(),
		RunDisabled: p.RunDisabled(),
		DriverURL:   p.DriverURL(),
	})
}

// HTML renders the header into a value that can be embedded in another
// html/template without escaping.
func (p Props) HTML() (template.HTML, error) {
	var buf strings.Builder
	if err := p.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
