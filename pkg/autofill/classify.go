package autofill

import (
	"strings"

	"github.com/bastiangx/kbserve/internal/utils"
)

// hintRule maps hint substrings to a category. All substrings must be present.
type hintRule struct {
	parts    []string
	category Category
}

// hintRules are tried in order; "first name" must hit FirstName before anything
// looser gets a chance, so do not reorder.
var hintRules = []hintRule{
	{[]string{"first", "name"}, FirstName},
	{[]string{"last", "name"}, LastName},
	{[]string{"full", "name"}, FullName},
	{[]string{"email"}, Email},
	{[]string{"phone"}, Phone},
	{[]string{"address"}, Address},
	{[]string{"city"}, City},
	{[]string{"state"}, State},
	{[]string{"zip"}, Zip},
	{[]string{"company"}, Company},
	{[]string{"username"}, Username},
}

// Classify derives the field category from the hint text, falling back to input type flags.
func Classify(d *Descriptor) Category {
	if d == nil {
		return Unknown
	}

	hint := strings.ToLower(d.Hint)
	for _, rule := range hintRules {
		if utils.ContainsAll(hint, rule.parts...) {
			return rule.category
		}
	}

	variation := d.InputType & TypeMaskVariation
	switch {
	case variation == TypeVariationEmailAddress:
		return Email
	case variation == TypeVariationPersonName:
		return FullName
	case variation == TypeVariationPostalAddress:
		return Address
	case d.InputType&TypeMaskClass == TypeClassPhone:
		return Phone
	}
	return Unknown
}

// IsValid reports whether a stored value may be surfaced for category.
func IsValid(category Category, value string) bool {
	trimmed := strings.TrimSpace(value)
	n := utils.RuneLen(trimmed)
	if n < MinValueLength {
		return false
	}

	switch category {
	case Email:
		return utils.ContainsAll(trimmed, "@", ".")
	case Phone:
		return n >= 7 && utils.ContainsNumbers(trimmed)
	case Zip:
		return n >= 4 && utils.IsDigitsOrHyphen(trimmed)
	case Unknown:
		return false
	default:
		return true
	}
}

// IsChatTextBox guesses whether the field is a messaging compose box.
func IsChatTextBox(d *Descriptor) bool {
	if d == nil {
		return false
	}

	action := d.IMEOptions & IMEMaskAction
	if action == IMEActionSearch {
		return false
	}

	class := d.InputType & TypeMaskClass
	variation := d.InputType & TypeMaskVariation
	flags := d.InputType & TypeMaskFlags

	if class == TypeClassText {
		if variation == TypeVariationShortMessage || variation == TypeVariationLongMessage {
			return true
		}
		if flags&TypeFlagCapSentences != 0 && flags&(TypeFlagMultiLine|TypeFlagAutoCorrect) != 0 {
			return true
		}
	}

	hint := strings.ToLower(d.Hint)
	if !strings.Contains(hint, "search") {
		for _, word := range []string{"message", "chat", "say", "reply"} {
			if strings.Contains(hint, word) {
				return true
			}
		}
	}

	return action == IMEActionSend
}
