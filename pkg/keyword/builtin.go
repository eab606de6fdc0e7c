package keyword

import (
	"sync"

	"github.com/bastiangx/kbserve/pkg/emoji"
)

var (
	builtinOnce  sync.Once
	builtinTable *Table
)

// Builtin returns the default keyword table. It is built once per process.
func Builtin() *Table {
	builtinOnce.Do(func() {
		builtinTable = New(builtinEntries())
	})
	return builtinTable
}

func e(unicode, description, category string) emoji.Emoji {
	return emoji.Emoji{Unicode: unicode, Description: description, Category: category}
}

func builtinEntries() map[string][]emoji.Emoji {
	return map[string][]emoji.Emoji{
		"love": {
			e("❤️", "Red Heart", "hearts"),
			e("💕", "Two Hearts", "hearts"),
			e("😍", "Smiling Face with Heart-Eyes", "faces"),
			e("🥰", "Smiling Face with Hearts", "faces"),
		},
		"heart": {
			e("❤️", "Red Heart", "hearts"),
			e("💙", "Blue Heart", "hearts"),
			e("💚", "Green Heart", "hearts"),
			e("💛", "Yellow Heart", "hearts"),
			e("💜", "Purple Heart", "hearts"),
		},

		"happy": {
			e("😀", "Grinning Face", "faces"),
			e("😊", "Smiling Face with Smiling Eyes", "faces"),
			e("😄", "Grinning Face with Smiling Eyes", "faces"),
			e("🎉", "Party Popper", "objects"),
		},
		"sad": {
			e("😢", "Crying Face", "faces"),
			e("😭", "Loudly Crying Face", "faces"),
			e("☹️", "Frowning Face", "faces"),
		},
		"angry": {
			e("😡", "Pouting Face", "faces"),
			e("😤", "Face with Steam From Nose", "faces"),
			e("🤬", "Face with Symbols on Mouth", "faces"),
		},
		"laugh": {
			e("😂", "Face with Tears of Joy", "faces"),
			e("🤣", "Rolling on the Floor Laughing", "faces"),
			e("😆", "Grinning Squinting Face", "faces"),
		},
		"crying": {
			e("😭", "Loudly Crying Face", "faces"),
			e("😢", "Crying Face", "faces"),
		},

		"thinking": {
			e("🤔", "Thinking Face", "faces"),
			e("💭", "Thought Balloon", "objects"),
		},
		"sleeping": {
			e("😴", "Sleeping Face", "faces"),
			e("💤", "Zzz", "objects"),
		},
		"eating": {
			e("🍽️", "Fork and Knife with Plate", "food"),
			e("🍕", "Pizza", "food"),
			e("🍔", "Hamburger", "food"),
		},

		"hello": {
			e("👋", "Waving Hand", "hands"),
			e("👋🏻", "Waving Hand: Light Skin Tone", "hands"),
			e("🙋", "Person Raising Hand", "people"),
		},
		"bye": {
			e("👋", "Waving Hand", "hands"),
			e("✋", "Raised Hand", "hands"),
		},

		"yes": {
			e("👍", "Thumbs Up", "hands"),
			e("✅", "Check Mark Button", "symbols"),
			e("👌", "OK Hand", "hands"),
		},
		"no": {
			e("👎", "Thumbs Down", "hands"),
			e("❌", "Cross Mark", "symbols"),
			e("🚫", "Prohibited", "symbols"),
		},
		"ok": {
			e("👌", "OK Hand", "hands"),
			e("👍", "Thumbs Up", "hands"),
			e("✅", "Check Mark Button", "symbols"),
		},

		"sun": {
			e("☀️", "Sun", "weather"),
			e("🌞", "Sun with Face", "weather"),
			e("🌅", "Sunrise", "weather"),
		},
		"rain": {
			e("🌧️", "Cloud with Rain", "weather"),
			e("☔", "Umbrella with Rain Drops", "weather"),
			e("💧", "Droplet", "weather"),
		},
		"fire": {
			e("🔥", "Fire", "objects"),
			e("🌶️", "Hot Pepper", "food"),
		},

		"pizza": {
			e("🍕", "Pizza", "food"),
		},
		"coffee": {
			e("☕", "Hot Beverage", "food"),
			e("🍵", "Teacup Without Handle", "food"),
		},
		"beer": {
			e("🍺", "Beer Mug", "food"),
			e("🍻", "Clinking Beer Mugs", "food"),
		},

		"time": {
			e("⏰", "Alarm Clock", "objects"),
			e("🕐", "One O'Clock", "objects"),
			e("⌚", "Watch", "objects"),
		},
		"night": {
			e("🌙", "Crescent Moon", "objects"),
			e("🌚", "New Moon Face", "objects"),
			e("⭐", "Star", "objects"),
		},

		"party": {
			e("🎉", "Party Popper", "objects"),
			e("🎊", "Confetti Ball", "objects"),
			e("🥳", "Partying Face", "faces"),
		},
		"birthday": {
			e("🎂", "Birthday Cake", "food"),
			e("🎉", "Party Popper", "objects"),
			e("🎈", "Balloon", "objects"),
		},
	}
}
