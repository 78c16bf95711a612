package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "megaodds_settlements_total",
		Help: "Settled bets by game and result.",
	}, []string{"game", "result"})

	payoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "megaodds_payout_total",
		Help: "Sum of payouts credited, by game.",
	}, []string{"game"})
)

func RecordSettlement(game string, win bool, payout decimal.Decimal) {
	result := "loss"
	if win {
		result = "win"
	}
	settlementsTotal.WithLabelValues(game, result).Inc()
	if win {
		payoutTotal.WithLabelValues(game).Add(payout.InexactFloat64())
	}
}
