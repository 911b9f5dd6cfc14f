package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the key prefix before the first dot, e.g. "player" for player.resume.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Kinoteka + "_" + EnvKeyReplacer.Replace(f.Key))
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return fmt.Sprintf("%T", f.Value)
	}
}

// Pretty renders the field for config info.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Section     string `json:"section"`
		Env         string `json:"env"`
		Type        string `json:"type"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Env:         f.Env(),
		Type:        f.typeName(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
	})
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = template.Must(template.New("field").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"key":     style.Fg(color.Purple),
	"label":   style.Fg(color.Blue),
	"hl":      highlight,
	"current": func(k string) any { return viper.Get(k) },
}).Parse(`{{ key .Key }} {{ faint (print "(" .Section ")") }}
{{ faint .Description }}
  {{ label "value  " }} {{ hl (current .Key) }}
  {{ label "default" }} {{ hl .Value }} {{ faint .Env }}`))
