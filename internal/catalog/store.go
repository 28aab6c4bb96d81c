package catalog

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// Store is the read side of the product collection.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, bool, error)
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

const (
	resultOK    = "ok"
	resultMiss  = "miss"
	resultError = "error"
)

type instrumentedStore struct {
	next    Store
	queries *prometheus.CounterVec
}

// Instrument counts store calls by operation and outcome.
func Instrument(s Store, reg prometheus.Registerer) Store {
	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_queries_total",
			Help: "Catalog store calls by operation and result",
		},
		[]string{"op", "result"},
	)
	reg.MustRegister(queries)
	return &instrumentedStore{next: s, queries: queries}
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	s.observe("ping", err, true)
	return err
}

func (s *instrumentedStore) List(ctx context.Context) ([]Product, error) {
	out, err := s.next.List(ctx)
	s.observe("list", err, true)
	return out, err
}

func (s *instrumentedStore) Get(ctx context.Context, id string) (Product, bool, error) {
	p, ok, err := s.next.Get(ctx, id)
	s.observe("get", err, ok)
	return p, ok, err
}

func (s *instrumentedStore) observe(op string, err error, found bool) {
	result := resultOK
	switch {
	case err != nil:
		result = resultError
	case !found:
		result = resultMiss
	}
	s.queries.WithLabelValues(op, result).Inc()
}
