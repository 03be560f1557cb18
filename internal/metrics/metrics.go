package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classfund_submissions_total",
		Help: "Payment submissions accepted, by direction",
	}, []string{"direction"})

	DuplicateSlipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classfund_duplicate_slips_total",
		Help: "Submissions rejected because the slip was already claimed",
	})

	ReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classfund_reviews_total",
		Help: "Completed reviews, by decision",
	}, []string{"decision"})
)
