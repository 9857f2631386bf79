package pricing

import (
	"math"
	"testing"
)

func TestSellPriceFixedPoints(t *testing.T) {
	cases := []struct {
		price      int64
		age        int
		durability int
		want       int64
	}{
		// new machine, perfect durability: p * 0.6 * 1.1
		{1000, 0, 100, 660},
		{500, 0, 100, 330},
		// neutral durability, no age: plain 60%
		{1000, 0, 50, 600},
		// age decay cap: 15+ days all lose the same 30%
		{1000, 15, 50, 420},
		{1000, 400, 50, 420},
		// worst case: capped age decay and zero durability
		{1000, 1000, 0, 378},
		// worthless input
		{0, 0, 100, 0},
	}

	for _, tc := range cases {
		if got := SellPrice(tc.price, tc.age, tc.durability); got != tc.want {
			t.Fatalf("SellPrice(%d, %d, %d) = %d; want %d",
				tc.price, tc.age, tc.durability, got, tc.want)
		}
	}
}

func TestSellPriceMatchesFormula(t *testing.T) {
	// spot check against the written-out formula
	p, age, dur := int64(777), 5, 80
	expected := float64(p) * 0.6 * (1 - 0.02*float64(age)) * (1 + (float64(dur)-50)/100*0.2)
	if got := SellPrice(p, age, dur); got != int64(math.Round(expected)) {
		t.Fatalf("SellPrice = %d; want %d", got, int64(math.Round(expected)))
	}
}

func TestSellPriceMonotonicInAge(t *testing.T) {
	prev := int64(math.MaxInt64)
	for age := 0; age <= 30; age++ {
		got := SellPrice(1000, age, 70)
		if got > prev {
			t.Fatalf("price increased with age: age=%d price=%d prev=%d", age, got, prev)
		}
		prev = got
	}
}

func TestSellPriceMonotonicInDurability(t *testing.T) {
	prev := int64(-1)
	for dur := 0; dur <= 100; dur += 5 {
		got := SellPrice(1000, 10, dur)
		if got < prev {
			t.Fatalf("price decreased with durability: dur=%d price=%d prev=%d", dur, got, prev)
		}
		prev = got
	}
}

func TestSellPriceNeverBelowFloor(t *testing.T) {
	for _, price := range []int64{10, 100, 2500} {
		floor := int64(math.Round(float64(price) * 0.2))
		for age := 0; age <= 2000; age += 100 {
			for dur := 0; dur <= 100; dur += 25 {
				if got := SellPrice(price, age, dur); got < floor {
					t.Fatalf("price %d below floor %d (p=%d age=%d dur=%d)",
						got, floor, price, age, dur)
				}
			}
		}
	}
}

func TestSellPriceClampsInputs(t *testing.T) {
	if SellPrice(1000, 0, 150) != SellPrice(1000, 0, 100) {
		t.Fatal("durability above 100 should clamp")
	}
	if SellPrice(1000, 0, -5) != SellPrice(1000, 0, 0) {
		t.Fatal("negative durability should clamp")
	}
	if SellPrice(1000, -3, 50) != SellPrice(1000, 0, 50) {
		t.Fatal("negative age should clamp")
	}
}
