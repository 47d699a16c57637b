package core

import (
	"fmt"
	"strings"
)

// Category is the closed set of expense categories. Validation happens once
// at the entry point; everything downstream can trust the value.
type Category string

const (
	CategoryBills        Category = "Bills"
	CategorySubscription Category = "Subscriptions"
	CategoryShopping     Category = "Shopping"
	CategoryFood         Category = "Food & Beverages"
	CategoryInvestments  Category = "Investments"
	CategoryRecreation   Category = "Recreation"
	CategoryTravel       Category = "Travel"
	CategoryMedical      Category = "Medical Expense"
	CategoryFuel         Category = "Fuel"
	CategoryEducation    Category = "Education"
	CategoryPersonalCare Category = "Personal Care"
	CategoryGifts        Category = "Gifts & Donations"
	CategoryEMI          Category = "EMI Payment"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryBills,
		CategorySubscription,
		CategoryShopping,
		CategoryFood,
		CategoryInvestments,
		CategoryRecreation,
		CategoryTravel,
		CategoryMedical,
		CategoryFuel,
		CategoryEducation,
		CategoryPersonalCare,
		CategoryGifts,
		CategoryEMI,
	}
}

// ParseCategory validates raw input against the closed set.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ErrEmptyCategory
	}
	for _, c := range Categories() {
		if string(c) == trimmed {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, trimmed)
}

func (c Category) Validate() error {
	_, err := ParseCategory(string(c))
	return err
}

func (c Category) String() string { return string(c) }
