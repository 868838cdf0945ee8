// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/feelslike/internal/config"
	"github.com/wneessen/feelslike/internal/i18n"
)

type Templates struct {
	Text    *template.Template
	Tooltip *template.Template

	t *i18n.Translator
}

var i18nVars = map[string]localize.MsgID{
	"temp":      "Temperature",
	"apparent":  "Feels like",
	"humidity":  "Humidity",
	"windspeed": "Wind speed",
	"windchill": "Wind chill",
	"forecast":  "Forecast",
	"sunrise":   "Sunrise",
	"sunset":    "Sunset",
	"updated":   "Updated",
}

func New(conf *config.Config, t *i18n.Translator) (*Templates, error) {
	if t == nil {
		return nil, fmt.Errorf("translator is required")
	}
	tpls := &Templates{t: t}

	tpl, err := template.New("text").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse text template: %w", err)
	}
	tpls.Text = tpl

	tpl, err = template.New("tooltip").Funcs(tpls.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return tpls, fmt.Errorf("failed to parse tooltip template: %w", err)
	}
	tpls.Tooltip = tpl

	return tpls, nil
}

func (t *Templates) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":  timeFormat,
		"floatFormat": floatFormat,
		"loc":         t.loc,
		"pad":         pad,
		"lc":          strings.ToLower,
		"uc":          strings.ToUpper,
	}
}

func (t *Templates) loc(val string) string {
	if raw, ok := i18nVars[strings.ToLower(val)]; ok {
		return t.t.Get(raw)
	}
	return val
}

func timeFormat(val time.Time, fmt string) string {
	return val.Format(fmt)
}

func floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}

// pad right-fills val with spaces to the given display width. Glyphs like "°" are measured by
// their terminal cell width.
func pad(val string, width int) string {
	return runewidth.FillRight(val, width)
}
