package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Stok mutasyonları, hareket tipine göre (received/outgoing/reserved/audit)
	StockMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depo_stock_mutations_total",
		Help: "Basarili stok mutasyonlari (hareket tipine gore)",
	}, []string{"action"})

	// Yetersiz stok nedeniyle reddedilen işlemler
	RejectedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "depo_rejected_operations_total",
		Help: "Reddedilen stok islemleri (sebebe gore)",
	}, []string{"reason"})
)

type Server struct {
	srv *http.Server
}

// NewServer: /metrics ve /health endpoint'lerini ayrı bir listener'da açar.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
