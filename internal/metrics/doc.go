/*
Package metrics provides Prometheus metrics for the loaders.

# Overview

Collector registers its vectors through promauto under a caller-chosen
namespace, so every metric name is isolated per collector.

# Metrics

  - loads_total{loader,status}: finished Load calls, status ok or error.
  - records_total{loader}: validated records returned by successful loads.
  - files_total{loader}: files read, one per file for directory loaders.
  - load_duration_seconds{loader}: Load latency histogram.

A nil *Collector is valid and records nothing.
*/
package metrics
