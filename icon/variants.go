package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Mark
	Link
	Search
	Star
	Heart
	Play
	Lock
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・_・)",
		squares: "🟦",
	},
	Mark: {
		emoji:   "🦐",
		nerd:    "",
		plain:   "*",
		kaomoji: "(`ε´)",
		squares: "🟧",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(∩^o^)⊃",
		squares: "🟪",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   ">",
		kaomoji: "(￣ー￣)",
		squares: "🟨",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "*",
		kaomoji: "☆",
		squares: "🟨",
	},
	Heart: {
		emoji:   "❤️",
		nerd:    "",
		plain:   "<3",
		kaomoji: "(♡‿♡)",
		squares: "🟥",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "",
		plain:   "#",
		kaomoji: "(╥﹏╥)",
		squares: "⬛",
	},
}
