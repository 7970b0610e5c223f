package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

func TestComputeConversionRates_FullFunnel(t *testing.T) {
	metrics := map[string]int{
		domain.StageQuizLoaded:        100,
		domain.StageQuizStarted:       40,
		domain.StageQuizCompleted:     10,
		domain.StageSalesPageLoaded:   8,
		domain.StageSalesPageScrolled: 4,
		domain.StageCheckoutClicked:   1,
	}

	rates := ComputeConversionRates(metrics)

	assert.Equal(t, map[string]string{
		"quizStartRate":         "40.00",
		"quizCompletionRate":    "25.00",
		"salesPageViewRate":     "80.00",
		"scrollRate":            "50.00",
		"checkoutClickRate":     "25.00",
		"overallConversionRate": "1.00",
	}, rates)
}

func TestComputeConversionRates_ZeroDenominatorsOmitted(t *testing.T) {
	rates := ComputeConversionRates(map[string]int{})
	assert.Empty(t, rates)

	// Only the rates whose denominator is populated appear.
	rates = ComputeConversionRates(map[string]int{
		domain.StageQuizLoaded:  3,
		domain.StageQuizStarted: 1,
	})
	assert.Equal(t, map[string]string{
		"quizStartRate":      "33.33",
		"quizCompletionRate": "0.00",
	}, rates)
}

func TestComputeConversionRates_NumeratorAboveDenominator(t *testing.T) {
	// Raw occurrence counting can push a rate past 100%.
	rates := ComputeConversionRates(map[string]int{
		domain.StageQuizLoaded:  2,
		domain.StageQuizStarted: 5,
	})
	assert.Equal(t, "250.00", rates["quizStartRate"])
}

func TestComputeConversionRates_PureFunction(t *testing.T) {
	metrics := map[string]int{domain.StageQuizLoaded: 10, domain.StageQuizStarted: 5}

	first := ComputeConversionRates(metrics)
	second := ComputeConversionRates(metrics)

	assert.Equal(t, first, second)
	assert.Equal(t, 10, metrics[domain.StageQuizLoaded], "input metrics are not mutated")
}
