package service

import (
	"errors"
	"testing"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount int64
		rate   int64
		ok     bool
	}{
		{50, 10, true},
		{10, 10, true},
		{1000000, 10, true},
		{0, 10, false},
		{-50, 10, false},
		{55, 10, false},
		{9, 10, false},
		{50, 0, false},
	}

	for _, tc := range cases {
		err := ValidateAmount(tc.amount, tc.rate)
		if tc.ok && err != nil {
			t.Fatalf("ValidateAmount(%d, %d) = %v; want nil", tc.amount, tc.rate, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ValidateAmount(%d, %d) = %v; want ErrInvalidAmount", tc.amount, tc.rate, err)
		}
	}
}
