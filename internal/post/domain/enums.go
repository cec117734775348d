package domain

import "strings"

type Tag string

const (
	TagGood    Tag = "good"
	TagAverage Tag = "average"
	TagBad     Tag = "bad"
)

// ParseTag returns ("", nil) for an empty value.
func ParseTag(raw string) (Tag, error) {
	switch Tag(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return "", nil
	case TagGood:
		return TagGood, nil
	case TagAverage:
		return TagAverage, nil
	case TagBad:
		return TagBad, nil
	default:
		return "", ErrInvalidTag
	}
}

type Currency string

const (
	CurrencyGBP Currency = "gbp"
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
	CurrencyJPY Currency = "jpy"
	CurrencyCNY Currency = "cny"
)

// ParseCurrency returns ("", nil) for an empty value.
func ParseCurrency(raw string) (Currency, error) {
	switch Currency(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return "", nil
	case CurrencyGBP:
		return CurrencyGBP, nil
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyEUR:
		return CurrencyEUR, nil
	case CurrencyJPY:
		return CurrencyJPY, nil
	case CurrencyCNY:
		return CurrencyCNY, nil
	default:
		return "", ErrInvalidCurrency
	}
}

type SortOrder string

const (
	SortRecent       SortOrder = "RECENT"
	SortTenure       SortOrder = "TENURE"
	SortCompensation SortOrder = "COMPENSATION"
	SortUpvotes      SortOrder = "UPVOTES"
	SortDownvotes    SortOrder = "DOWNVOTES"
)

// ParseSortOrder is case-insensitive; an empty value selects SortRecent.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", SortRecent:
		return SortRecent, nil
	case SortTenure:
		return SortTenure, nil
	case SortCompensation:
		return SortCompensation, nil
	case SortUpvotes:
		return SortUpvotes, nil
	case SortDownvotes:
		return SortDownvotes, nil
	default:
		return "", ErrInvalidSortOrder
	}
}
