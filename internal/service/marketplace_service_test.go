package service

import "testing"

func TestSplitSalePrice(t *testing.T) {
	cases := []struct {
		name            string
		price           int64
		revenueShareBps int64
		fee             int64
		share           int64
		proceeds        int64
	}{
		{"no revenue share", 10000, 0, 250, 0, 9750},
		{"five percent share", 10000, 500, 250, 500, 9250},
		{"rounding remainder to seller", 999, 500, 24, 49, 926},
		{"tiny price rounds fee to zero", 10, 100, 0, 0, 10},
		{"full share capped after fee", 10000, 10000, 250, 9750, 0},
		{"one unit price", 1, 10000, 0, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fee, share, proceeds := splitSalePrice(c.price, c.revenueShareBps)
			if fee != c.fee || share != c.share || proceeds != c.proceeds {
				t.Errorf("splitSalePrice(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					c.price, c.revenueShareBps, fee, share, proceeds, c.fee, c.share, c.proceeds)
			}
			if fee+share+proceeds != c.price {
				t.Errorf("legs do not sum to price: %d + %d + %d != %d", fee, share, proceeds, c.price)
			}
		})
	}
}
