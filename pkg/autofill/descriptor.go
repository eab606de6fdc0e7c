package autofill

import (
	"fmt"
	"hash/fnv"
)

// Input type bits, laid out like the host platform's editor info so raw
// values can be passed through untouched.
const (
	TypeMaskClass     = 0x0000000f
	TypeMaskVariation = 0x00000ff0
	TypeMaskFlags     = 0x00fff000

	TypeClassText  = 0x00000001
	TypeClassPhone = 0x00000003

	TypeVariationEmailAddress  = 0x00000020
	TypeVariationShortMessage  = 0x00000040
	TypeVariationLongMessage   = 0x00000050
	TypeVariationPersonName    = 0x00000060
	TypeVariationPostalAddress = 0x00000070

	TypeFlagCapSentences = 0x00004000
	TypeFlagAutoCorrect  = 0x00008000
	TypeFlagMultiLine    = 0x00020000
)

// IME action values carried in Descriptor.IMEOptions.
const (
	IMEMaskAction   = 0x000000ff
	IMEActionSearch = 0x00000003
	IMEActionSend   = 0x00000004
)

// Descriptor describes the focused input field as reported by the host.
// Any field may be zero.
type Descriptor struct {
	App        string
	FieldID    int
	InputType  int
	IMEOptions int
	Hint       string
}

// Key is the composite identity of the field. Two focus events with the
// same key belong to the same focus session.
func (d *Descriptor) Key() string {
	if d == nil {
		return ""
	}
	app := d.App
	if app == "" {
		app = "unknown"
	}
	return fmt.Sprintf("%s_%d_%d_%d", app, d.FieldID, d.InputType, hintHash(d.Hint))
}

func hintHash(hint string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(hint))
	return h.Sum32()
}
