package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/job/getall", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/api/job/getall", "GET", 200, 4*time.Millisecond)
	m.RecordRequest("/api/job/post", "POST", 403, time.Millisecond)
	m.RecordError("/api/job/post", "POST", "FORBIDDEN")

	snap := m.Snapshot()
	if len(snap.Requests) != 2 {
		t.Fatalf("requests = %+v", snap.Requests)
	}
	first := snap.Requests[0]
	if first.Key != "/api/job/getall|GET|200" || first.Count != 2 || first.AvgLatencyMsec != 3 {
		t.Fatalf("first = %+v", first)
	}
	if snap.Errors["/api/job/post|POST|FORBIDDEN"] != 1 {
		t.Fatalf("errors = %+v", snap.Errors)
	}
}

func TestNilMetricsIgnoresRecords(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "INTERNAL")
}
