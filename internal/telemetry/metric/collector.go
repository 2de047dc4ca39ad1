package metric

import "github.com/prometheus/client_golang/prometheus"

// GeneratorInfo describes the settings of the active key generator.
type GeneratorInfo struct {
	Prefix           string
	Digest           string
	RandomSource     string
	ShortTokenLength int
	LongTokenLength  int
}

// Collector reports the active generator settings on every scrape.
type Collector struct {
	info func() GeneratorInfo

	infoDesc     *prometheus.Desc
	shortLenDesc *prometheus.Desc
	longLenDesc  *prometheus.Desc
}

// NewCollector creates a collector that calls info on each scrape.
func NewCollector(info func() GeneratorInfo) *Collector {
	return &Collector{
		info: info,
		infoDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "generator", "info"),
			"Active key generator settings; the value is always 1.",
			[]string{"prefix", "digest", "random_source"}, nil,
		),
		shortLenDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "generator", "short_token_length"),
			"Configured short token length in characters.",
			nil, nil,
		),
		longLenDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "generator", "long_token_length"),
			"Configured long token length in random bytes.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.infoDesc
	ch <- c.shortLenDesc
	ch <- c.longLenDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	info := c.info()
	ch <- prometheus.MustNewConstMetric(c.infoDesc, prometheus.GaugeValue, 1, info.Prefix, info.Digest, info.RandomSource)
	ch <- prometheus.MustNewConstMetric(c.shortLenDesc, prometheus.GaugeValue, float64(info.ShortTokenLength))
	ch <- prometheus.MustNewConstMetric(c.longLenDesc, prometheus.GaugeValue, float64(info.LongTokenLength))
}
