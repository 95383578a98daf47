package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	resumesUploadedTotal   atomic.Uint64
	resumesCreatedTotal    atomic.Uint64
	enhancementsTotal      atomic.Uint64
	documentsRenderedTotal atomic.Uint64

	fallbacksMu               sync.Mutex
	enhancementFallbacksTotal = map[string]uint64{}

	enhancementDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncResumesUploaded counts a stored upload.
func IncResumesUploaded() {
	resumesUploadedTotal.Add(1)
}

// IncResumesCreated counts a stored manual resume.
func IncResumesCreated() {
	resumesCreatedTotal.Add(1)
}

// IncEnhancements counts a stored enhanced resume.
func IncEnhancements() {
	enhancementsTotal.Add(1)
}

// IncEnhancementFallback counts a provider call whose output was replaced by its input.
func IncEnhancementFallback(provider string) {
	fallbacksMu.Lock()
	enhancementFallbacksTotal[provider]++
	fallbacksMu.Unlock()
}

// IncDocumentsRendered counts a generated PDF or DOCX.
func IncDocumentsRendered() {
	documentsRenderedTotal.Add(1)
}

// ObserveEnhancementDurationMs records an enhancement duration in milliseconds.
func ObserveEnhancementDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	enhancementDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resumes_uploaded_total", "Total resumes uploaded", resumesUploadedTotal.Load())
	writeCounter(&buf, "resumes_created_total", "Total manual resumes created", resumesCreatedTotal.Load())
	writeCounter(&buf, "enhancements_total", "Total enhanced resumes stored", enhancementsTotal.Load())
	writeLabeledCounter(&buf, "enhancement_fallbacks_total", "Provider calls that fell back to their input", "provider", fallbackSnapshot())
	writeCounter(&buf, "documents_rendered_total", "Total documents rendered", documentsRenderedTotal.Load())
	writeHistogram(&buf, "enhancement_duration_ms", "Enhancement duration in milliseconds", enhancementDuration.Snapshot())
	return buf.String()
}

func fallbackSnapshot() map[string]uint64 {
	fallbacksMu.Lock()
	defer fallbacksMu.Unlock()
	out := make(map[string]uint64, len(enhancementFallbacksTotal))
	for k, v := range enhancementFallbacksTotal {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
