package grocery

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for expiry dates.
const DateLayout = "2006-01-02"

// Item is a single grocery item owned by a user.
type Item struct {
	ID         string `dynamodbav:"itemID" json:"itemID"`
	OwnerEmail string `dynamodbav:"userEmail" json:"userEmail"`
	Name       string `dynamodbav:"itemName" json:"itemName"`
	ExpiryDate string `dynamodbav:"expiryDate" json:"expiryDate"`
	CreatedAt  string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ParseExpiry parses a YYYY-MM-DD date into UTC midnight of that day.
func ParseExpiry(value string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry date %q: %w", value, err)
	}
	return day, nil
}

// Today truncates now to its UTC calendar date.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tomorrow returns the UTC calendar date following now.
func Tomorrow(now time.Time) time.Time {
	return Today(now).AddDate(0, 0, 1)
}

// HasExpiry reports whether the item carries an expiry date at all.
func (i Item) HasExpiry() bool {
	return i.ExpiryDate != ""
}

// ExpiresOn reports whether the item expires on the given calendar day.
// Time of day is ignored on both sides.
func (i Item) ExpiresOn(day time.Time) (bool, error) {
	expiry, err := ParseExpiry(i.ExpiryDate)
	if err != nil {
		return false, err
	}
	return expiry.Equal(Today(day)), nil
}
