package core

import (
	"math"

	"github.com/huangsam/cpitrend/schema"
	"github.com/shopspring/decimal"
)

// ratePlaces is the number of decimal places kept on percentage changes.
const ratePlaces = 2

var hundred = decimal.NewFromInt(100)

// InflationRates computes the period-over-period and year-over-year percentage
// change at every observation. yearLag is the number of observations in a year
// (schema.QuarterLag for quarterly data). A rate is nil when either side is
// missing, not finite, or the base value is zero.
func InflationRates(s schema.Series, yearLag int) []schema.Rate {
	obs := s.Observations
	rates := make([]schema.Rate, len(obs))
	for i, o := range obs {
		rates[i] = schema.Rate{Date: o.Date}
		if i >= 1 {
			rates[i].PeriodChange = percentChange(obs[i-1].Value, o.Value)
		}
		if yearLag > 0 && i >= yearLag {
			rates[i].YearChange = percentChange(obs[i-yearLag].Value, o.Value)
		}
	}
	return rates
}

// percentChange returns 100*(cur-base)/base rounded half away from zero.
func percentChange(base, cur *float64) *float64 {
	if base == nil || cur == nil || *base == 0 || !finite(*base) || !finite(*cur) {
		return nil
	}
	b := decimal.NewFromFloat(*base)
	c := decimal.NewFromFloat(*cur)
	v := c.Sub(b).Div(b).Mul(hundred).Round(ratePlaces).InexactFloat64()
	return &v
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
