package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores de negocio del flujo de canastas, expuestos
// en /metrics con registro propio (sin colectores globales compartidos).
type Metrics struct {
	registry *prometheus.Registry

	BasketsCompleted prometheus.Counter
	TransfersCreated prometheus.Counter
	ItemFailures     prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
}

// New crea el registro y los contadores con el prefijo del servicio.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		BasketsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "baskets_completed_total",
			Help:      "Canastas de traslado confirmadas.",
		}),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_created_total",
			Help:      "Traslados individuales creados por el commit de canastas.",
		}),
		ItemFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "basket_item_failures_total",
			Help:      "Ítems fallidos de forma aislada dentro del commit.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "path", "status"}),
	}
}

// Handler expone el registro en formato prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
