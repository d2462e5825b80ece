package megahash

import "github.com/prometheus/client_golang/prometheus"

// Collector adapts a Hash's Stats to the prometheus.Collector interface,
// following the custom-collector shape of metrics/disc-collector.go
// (Desc fields populated in a constructor, Describe/Collect implementing
// the interface). The caller registers it explicitly with
// prometheus.Register — megahash never registers metrics globally on its
// own, so importing this package has no side effects on the default
// registry.
type Collector struct {
	h *Hash

	numKeysDesc      *prometheus.Desc
	indexSizeDesc    *prometheus.Desc
	metaSizeDesc     *prometheus.Desc
	dataSizeDesc     *prometheus.Desc
	reindexCountDesc *prometheus.Desc
}

// NewCollector returns a Collector reporting h's Stats under the "megahash"
// metric namespace.
func NewCollector(h *Hash) *Collector {
	return &Collector{
		h: h,
		numKeysDesc: prometheus.NewDesc(
			"megahash_keys",
			"Number of distinct keys currently stored.",
			nil, nil,
		),
		indexSizeDesc: prometheus.NewDesc(
			"megahash_index_bytes",
			"Live byte footprint of index nodes.",
			nil, nil,
		),
		metaSizeDesc: prometheus.NewDesc(
			"megahash_meta_bytes",
			"Live byte footprint of bucket headers.",
			nil, nil,
		),
		dataSizeDesc: prometheus.NewDesc(
			"megahash_data_bytes",
			"Live byte footprint of packed key/value records.",
			nil, nil,
		),
		reindexCountDesc: prometheus.NewDesc(
			"megahash_reindex_total",
			"Number of reindex operations performed since construction or the last Clear.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.numKeysDesc
	ch <- c.indexSizeDesc
	ch <- c.metaSizeDesc
	ch <- c.dataSizeDesc
	ch <- c.reindexCountDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.h.Stats()
	ch <- prometheus.MustNewConstMetric(c.numKeysDesc, prometheus.GaugeValue, float64(s.NumKeys))
	ch <- prometheus.MustNewConstMetric(c.indexSizeDesc, prometheus.GaugeValue, float64(s.IndexSize))
	ch <- prometheus.MustNewConstMetric(c.metaSizeDesc, prometheus.GaugeValue, float64(s.MetaSize))
	ch <- prometheus.MustNewConstMetric(c.dataSizeDesc, prometheus.GaugeValue, float64(s.DataSize))
	ch <- prometheus.MustNewConstMetric(c.reindexCountDesc, prometheus.CounterValue, float64(s.ReindexCount))
}
