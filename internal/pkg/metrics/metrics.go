package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gopantry/internal/domain"
)

const namespace = "gopantry"

// Snapshot devolve o estado atual da coleção; é chamado a cada scrape.
type Snapshot func() []domain.Item

// Metrics agrupa os coletores do serviço num registry próprio.
type Metrics struct {
	registry       *prometheus.Registry
	intents        *prometheus.CounterVec
	adapterFailure *prometheus.CounterVec
}

// New registra os contadores de intenções, de falhas do adaptador e o
// coletor de itens por status.
func New(snapshot Snapshot) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Intenções processadas por tipo e resultado.",
		}, []string{"intent", "outcome"}),
		adapterFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_failures_total",
			Help:      "Falhas de escrita/leitura no armazenamento remoto por operação.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.intents,
		m.adapterFailure,
		&stockCollector{snapshot: snapshot},
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// IntentHandled implementa itemservice.Recorder.
func (m *Metrics) IntentHandled(intent, outcome string) {
	m.intents.WithLabelValues(intent, outcome).Inc()
}

// AdapterFailed implementa itemservice.Recorder.
func (m *Metrics) AdapterFailed(operation string) {
	m.adapterFailure.WithLabelValues(operation).Inc()
}

// Handler expõe o registry no formato de exposição do Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry é exposto para testes.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var itemsDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "items"),
	"Itens no estoque por status derivado.",
	[]string{"status"}, nil,
)

// stockCollector classifica a coleção no momento do scrape; o status nunca é armazenado.
type stockCollector struct {
	snapshot Snapshot
}

func (c *stockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- itemsDesc
}

func (c *stockCollector) Collect(ch chan<- prometheus.Metric) {
	counts := map[domain.StockStatus]int{
		domain.StatusInStock:    0,
		domain.StatusLow:        0,
		domain.StatusOutOfStock: 0,
	}
	for _, it := range c.snapshot() {
		counts[it.Status()]++
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(itemsDesc, prometheus.GaugeValue, float64(n), string(status))
	}
}
