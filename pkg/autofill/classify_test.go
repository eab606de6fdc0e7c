package autofill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		desc     *Descriptor
		expected Category
		note     string
	}{
		{nil, Unknown, "missing descriptor"},
		{&Descriptor{Hint: "first name field"}, FirstName, "first before full/name"},
		{&Descriptor{Hint: "Last Name"}, LastName, "case-insensitive"},
		{&Descriptor{Hint: "Your full name"}, FullName, "full name"},
		{&Descriptor{Hint: "Email address"}, Email, "email wins over address"},
		{&Descriptor{Hint: "Phone"}, Phone, "phone"},
		{&Descriptor{Hint: "Street address"}, Address, "address"},
		{&Descriptor{Hint: "City"}, City, "city"},
		{&Descriptor{Hint: "State / Province"}, State, "state"},
		{&Descriptor{Hint: "ZIP code"}, Zip, "zip"},
		{&Descriptor{Hint: "Company"}, Company, "company"},
		{&Descriptor{Hint: "username"}, Username, "username"},
		{&Descriptor{Hint: "name"}, Unknown, "bare name matches nothing"},

		{&Descriptor{InputType: TypeClassText | TypeVariationEmailAddress}, Email, "email variation"},
		{&Descriptor{InputType: TypeClassText | TypeVariationPersonName}, FullName, "person name variation"},
		{&Descriptor{InputType: TypeClassText | TypeVariationPostalAddress}, Address, "postal variation"},
		{&Descriptor{InputType: TypeClassPhone}, Phone, "phone class"},
		{&Descriptor{InputType: TypeClassText}, Unknown, "plain text"},
		{&Descriptor{Hint: "city", InputType: TypeClassPhone}, City, "hint beats flags"},
	}

	for _, tc := range testCases {
		t.Run(tc.note, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.desc))
		})
	}
}

func TestIsValid(t *testing.T) {
	testCases := []struct {
		category Category
		value    string
		valid    bool
	}{
		{Email, "a@b.com", true},
		{Email, "abcdef", false},
		{Email, "a@bcom", false},
		{Phone, "555-1234", true},
		{Phone, "12345", false},
		{Phone, "abcdefgh", false},
		{Zip, "12345", true},
		{Zip, "12345-6789", true},
		{Zip, "123", false},
		{Zip, "12a45", false},
		{City, "NY", true},
		{City, " a ", false},
		{Unknown, "anything", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, IsValid(tc.category, tc.value), "%s %q", tc.category, tc.value)
	}
}

func TestDescriptorKey(t *testing.T) {
	a := &Descriptor{App: "com.example", FieldID: 7, InputType: 0x21, Hint: "Email"}
	same := &Descriptor{App: "com.example", FieldID: 7, InputType: 0x21, Hint: "Email"}
	otherHint := &Descriptor{App: "com.example", FieldID: 7, InputType: 0x21, Hint: "Phone"}
	noApp := &Descriptor{FieldID: 7}

	assert.Equal(t, a.Key(), same.Key())
	assert.NotEqual(t, a.Key(), otherHint.Key())
	assert.Contains(t, noApp.Key(), "unknown_7_0_")
	assert.Equal(t, "", (*Descriptor)(nil).Key())
}

func TestIsChatTextBox(t *testing.T) {
	testCases := []struct {
		desc *Descriptor
		chat bool
		note string
	}{
		{nil, false, "nil"},
		{&Descriptor{InputType: TypeClassText | TypeVariationShortMessage}, true, "short message"},
		{&Descriptor{InputType: TypeClassText | TypeVariationLongMessage}, true, "long message"},
		{&Descriptor{InputType: TypeClassText | TypeFlagMultiLine | TypeFlagCapSentences}, true, "multiline + caps"},
		{&Descriptor{InputType: TypeClassText | TypeFlagAutoCorrect | TypeFlagCapSentences}, true, "autocorrect + caps"},
		{&Descriptor{InputType: TypeClassText | TypeFlagMultiLine}, false, "multiline alone"},
		{&Descriptor{Hint: "Type a message"}, true, "message hint"},
		{&Descriptor{Hint: "Search messages"}, false, "search hint"},
		{&Descriptor{IMEOptions: IMEActionSend}, true, "send action"},
		{&Descriptor{InputType: TypeClassText | TypeVariationShortMessage, IMEOptions: IMEActionSearch}, false, "search action wins"},
		{&Descriptor{Hint: "Email", InputType: TypeClassText | TypeVariationEmailAddress}, false, "form field"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.chat, IsChatTextBox(tc.desc), tc.note)
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("first-name")
	assert.True(t, ok)
	assert.Equal(t, FirstName, c)

	c, ok = ParseCategory("EMAIL")
	assert.True(t, ok)
	assert.Equal(t, Email, c)

	_, ok = ParseCategory("unknown")
	assert.False(t, ok)

	assert.Equal(t, "USERNAME", Username.String())
	assert.Equal(t, "UNKNOWN", Category(99).String())
}
