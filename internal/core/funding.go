package core

import "fmt"

// ExceedsRemainingError reports that a proposed donation is larger than the
// campaign's remaining funding capacity. It carries the exact remaining
// value so the caller can offer a corrected retry.
type ExceedsRemainingError struct {
	Remaining Money
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("amount exceeds remaining goal (%s)", e.Remaining)
}

// Remaining returns the campaign's remaining funding capacity,
// max(0, goal - collected). Missing fields default to zero, so a campaign
// with no goal has no capacity.
func Remaining(c Campaign) Money {
	rem := c.Goal.Paise - c.Collected.Paise
	if rem < 0 {
		rem = 0
	}
	return Money{Paise: rem}
}

// ValidateDonation checks a proposed donation against the campaign's
// remaining capacity. Checks run in a fixed order:
//
//  1. ErrNotAuthenticated when no donor is signed in,
//  2. ErrCampaignFullyFunded when nothing remains to fund,
//  3. ErrInvalidAmount when amountInput is not a positive decimal,
//  4. *ExceedsRemainingError when the amount is above the remaining value.
//
// On success it returns the parsed amount. The function is pure; the fully
// funded check belongs before any input surface is shown, not only at
// submit time.
func ValidateDonation(c Campaign, donor *Donor, amountInput string) (Money, error) {
	if donor == nil {
		return Money{}, ErrNotAuthenticated
	}
	rem := Remaining(c)
	if rem.Paise <= 0 {
		return Money{}, ErrCampaignFullyFunded
	}
	paise, err := ParseDecimalToPaise(amountInput)
	if err != nil {
		return Money{}, err
	}
	if paise > rem.Paise {
		return Money{}, &ExceedsRemainingError{Remaining: rem}
	}
	return Money{Paise: paise}, nil
}
