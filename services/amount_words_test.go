package services

import "testing"

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "Zero Only"},
		{"single digit", 7, "Seven Only"},
		{"teens", 17, "Seventeen Only"},
		{"tens", 80, "Eighty Only"},
		{"compound tens", 42, "Forty Two Only"},
		{"hundreds", 300, "Three Hundred Only"},
		{"hundreds with remainder", 345, "Three Hundred and Forty Five Only"},
		{"thousands", 1000, "One Thousand Only"},
		{"full spread", 913183, "Nine Hundred Thirteen Thousand One Hundred and Eighty Three Only"},
		{"millions", 2500000, "Two Million Five Hundred Thousand Only"},
		{"billions", 1000000000, "One Billion Only"},
		{"rounds fraction", 99.6, "One Hundred Only"},
		{"negative", -12, "Negative Twelve Only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountToWords(tt.amount)
			if got != tt.want {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
