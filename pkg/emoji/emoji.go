// Package emoji drives the emoji suggestion row: default picks, keyword matches while typing, and long-press sharing.
package emoji

// Emoji is one pickable glyph.
type Emoji struct {
	Unicode     string `toml:"unicode" json:"unicode" yaml:"unicode"`
	Description string `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `toml:"category,omitempty" json:"category,omitempty" yaml:"category,omitempty"`
}

// Glyphs flattens emojis to their unicode strings for presenters.
func Glyphs(emojis []Emoji) []string {
	out := make([]string, len(emojis))
	for i, e := range emojis {
		out[i] = e.Unicode
	}
	return out
}

var topUsed = []Emoji{
	{"😀", "Grinning Face", "faces"},
	{"😂", "Face with Tears of Joy", "faces"},
	{"🤣", "Rolling on the Floor Laughing", "faces"},
	{"😊", "Smiling Face with Smiling Eyes", "faces"},
	{"😍", "Smiling Face with Heart-Eyes", "faces"},
	{"🥰", "Smiling Face with Hearts", "faces"},
	{"😘", "Face Blowing a Kiss", "faces"},
	{"😉", "Winking Face", "faces"},
	{"😎", "Smiling Face with Sunglasses", "faces"},
	{"😢", "Crying Face", "faces"},
	{"😭", "Loudly Crying Face", "faces"},
	{"😤", "Face with Steam From Nose", "faces"},
	{"😡", "Pouting Face", "faces"},
	{"🤔", "Thinking Face", "faces"},
	{"😴", "Sleeping Face", "faces"},

	{"👍", "Thumbs Up", "hands"},
	{"👎", "Thumbs Down", "hands"},
	{"👏", "Clapping Hands", "hands"},
	{"🙏", "Folded Hands", "hands"},
	{"✌️", "Victory Hand", "hands"},
	{"🤞", "Crossed Fingers", "hands"},
	{"👌", "OK Hand", "hands"},
	{"✋", "Raised Hand", "hands"},
	{"🤚", "Raised Back of Hand", "hands"},
	{"👋", "Waving Hand", "hands"},

	{"❤️", "Red Heart", "hearts"},
	{"💙", "Blue Heart", "hearts"},
	{"💚", "Green Heart", "hearts"},
	{"💛", "Yellow Heart", "hearts"},
	{"🧡", "Orange Heart", "hearts"},
	{"💜", "Purple Heart", "hearts"},
	{"🖤", "Black Heart", "hearts"},
	{"🤍", "White Heart", "hearts"},
	{"💕", "Two Hearts", "hearts"},
	{"💖", "Sparkling Heart", "hearts"},

	{"🔥", "Fire", "objects"},
	{"💯", "Hundred Points", "objects"},
	{"⭐", "Star", "objects"},
	{"🎉", "Party Popper", "objects"},
	{"🎊", "Confetti Ball", "objects"},
	{"🎈", "Balloon", "objects"},
	{"🎂", "Birthday Cake", "food"},
	{"🍕", "Pizza", "food"},
	{"🍔", "Hamburger", "food"},
	{"🍟", "French Fries", "food"},
	{"☕", "Hot Beverage", "food"},
	{"🍺", "Beer Mug", "food"},
}

// TopUsed returns the default candidates shown when nothing matched, most popular first.
// limit <= 0 returns the full list.
func TopUsed(limit int) []Emoji {
	n := len(topUsed)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Emoji, n)
	copy(out, topUsed[:n])
	return out
}
