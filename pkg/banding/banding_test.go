package banding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountBands(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{50_000, "<£100k"},
		{100_000, "£100k-£500k"},
		{750_000, "£500k-£1M"},
		{1_500_000, "£1M-£2M"},
		{3_000_000, "£2M-£5M"},
		{7_500_000, "£5M-£10M"},
		{20_000_000, "£10M-£25M"},
		{40_000_000, "£25M-£50M"},
		{99_999_999, "£50M-£100M"},
		{250_000_000, ">£100M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Amount(tc.amount), "amount %.0f", tc.amount)
	}
}

func TestTurnoverBands(t *testing.T) {
	assert.Equal(t, "<£1M", Turnover(999_999))
	assert.Equal(t, "£1M-£5M", Turnover(1_000_000))
	assert.Equal(t, "£10M-£25M", Turnover(12_000_000))
	assert.Equal(t, ">£100M", Turnover(150_000_000))
}

func TestRoundScoreAndPercentage(t *testing.T) {
	assert.Equal(t, 65.0, RoundScore(63.2))
	assert.Equal(t, 60.0, RoundScore(62.4))
	assert.Equal(t, 0.0, RoundScore(1.9))
	assert.Equal(t, 45.0, Percentage(47.4))
}

func TestRegionGroups(t *testing.T) {
	assert.Equal(t, "Northern England", Region("North East"))
	assert.Equal(t, "Northern England", Region("Yorkshire And The Humber"))
	assert.Equal(t, "Midlands", Region("East Midlands"))
	assert.Equal(t, "Greater London", Region("London"))
	assert.Equal(t, "Scotland", Region("Scotland"))
	assert.Equal(t, "Unknown", Region(""))
	// unmapped regions pass through
	assert.Equal(t, "Atlantis", Region("Atlantis"))
}

func TestAliaser_StableAndSequential(t *testing.T) {
	a := NewAliaser()
	assert.Equal(t, "Lender A", a.Alias("Alpha Bank"))
	assert.Equal(t, "Lender B", a.Alias("Growth Capital Partners"))
	// repeat lookups stay stable
	assert.Equal(t, "Lender A", a.Alias("Alpha Bank"))

	a.Reset()
	assert.Equal(t, "Lender A", a.Alias("Growth Capital Partners"))
}

func TestAliaser_ConcurrentUse(t *testing.T) {
	a := NewAliaser()
	done := make(chan string, 20)
	for i := 0; i < 20; i++ {
		go func() { done <- a.Alias("Alpha Bank") }()
	}
	for i := 0; i < 20; i++ {
		if got := <-done; got != "Lender A" {
			t.Fatalf("expected stable alias, got %q", got)
		}
	}
}
