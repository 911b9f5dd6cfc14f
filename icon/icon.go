// Package icon renders status symbols in the variant picked by icons.variant.
package icon

import (
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) forVariant(variant string) string {
	switch variant {
	case "emoji":
		return d.emoji
	case "nerd":
		return d.nerd
	case "plain":
		return d.plain
	case "kaomoji":
		return d.kaomoji
	case "squares":
		return d.squares
	}
	return ""
}

// Get renders i in the configured variant.
// Unknown icons and unknown variants render as an empty string.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}

	return def.forVariant(viper.GetString(key.IconsVariant))
}
