package common

// MetricsNamespace prefixes every Prometheus metric the service exports.
const MetricsNamespace = "pcmall"
