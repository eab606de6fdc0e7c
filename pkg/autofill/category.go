// Package autofill learns form field values and offers them back when a field of the same kind is focused.
package autofill

import "strings"

// Category is the semantic type of a form field.
type Category int

const (
	Unknown Category = iota
	FirstName
	LastName
	FullName
	Email
	Phone
	Address
	City
	State
	Zip
	Company
	Username
)

// categoryNames doubles as the persisted key for each category's history.
var categoryNames = map[Category]string{
	Unknown:   "UNKNOWN",
	FirstName: "FIRST_NAME",
	LastName:  "LAST_NAME",
	FullName:  "FULL_NAME",
	Email:     "EMAIL",
	Phone:     "PHONE",
	Address:   "ADDRESS",
	City:      "CITY",
	State:     "STATE",
	Zip:       "ZIP",
	Company:   "COMPANY",
	Username:  "USERNAME",
}

// Categories lists every storable category (Unknown excluded) in declaration order.
func Categories() []Category {
	return []Category{FirstName, LastName, FullName, Email, Phone, Address, City, State, Zip, Company, Username}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[Unknown]
}

// ParseCategory accepts a persisted name case-insensitively, with '-' or ' ' for '_'.
func ParseCategory(name string) (Category, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	for c, s := range categoryNames {
		if s == n && c != Unknown {
			return c, true
		}
	}
	return Unknown, false
}
