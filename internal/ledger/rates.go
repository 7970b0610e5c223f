package ledger

import (
	"fmt"
	"math"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

// rateDef relates two funnel stages as a named percentage.
type rateDef struct {
	name        string
	numerator   string
	denominator string
}

// Conversion rates derived after every recorded event. Each rate is only
// present while its denominator count is nonzero.
var rateDefs = []rateDef{
	{"quizStartRate", domain.StageQuizStarted, domain.StageQuizLoaded},
	{"quizCompletionRate", domain.StageQuizCompleted, domain.StageQuizStarted},
	{"salesPageViewRate", domain.StageSalesPageLoaded, domain.StageQuizCompleted},
	{"scrollRate", domain.StageSalesPageScrolled, domain.StageSalesPageLoaded},
	{"checkoutClickRate", domain.StageCheckoutClicked, domain.StageSalesPageScrolled},
	{"overallConversionRate", domain.StageCheckoutClicked, domain.StageQuizLoaded},
}

// ComputeConversionRates derives all conversion rates from the given
// funnel metrics. It is a pure function: rates are always recomputed from
// scratch, never patched incrementally. Values are percentages rounded to
// two decimals and formatted as strings with exactly two decimal digits,
// since downstream consumers compare and display the string form.
func ComputeConversionRates(metrics map[string]int) map[string]string {
	rates := make(map[string]string)
	for _, def := range rateDefs {
		den := metrics[def.denominator]
		if den == 0 {
			continue
		}
		pct := 100 * float64(metrics[def.numerator]) / float64(den)
		pct = math.Round(pct*100) / 100
		rates[def.name] = fmt.Sprintf("%.2f", pct)
	}
	return rates
}
