package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Standard attribute keys recorded on computeFlow spans.
const (
	AttrSource     = "flow.source"
	AttrSink       = "flow.sink"
	AttrRequested  = "flow.requested"
	AttrPushed     = "flow.pushed"
	AttrEdgesIn    = "flow.edges_in"
	AttrNodesBuilt = "flow.nodes_built"
	AttrTransfers  = "flow.transfers_out"
	AttrCacheHit   = "flow.cache_hit"
)

// RequestAttributes returns the attributes describing a computeFlow
// request: the endpoints, the requested ceiling, and the size of the
// submitted edge set.
func RequestAttributes(source, sink, requested string, edgesIn int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSource, source),
		attribute.String(AttrSink, sink),
		attribute.String(AttrRequested, requested),
		attribute.Int(AttrEdgesIn, edgesIn),
	}
}

// ResultAttributes returns the attributes describing a computeFlow result:
// the graph size built from the edges, the amount actually pushed, and the
// number of concrete transfers extracted.
func ResultAttributes(nodesBuilt int, pushed string, transfersOut int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrNodesBuilt, nodesBuilt),
		attribute.String(AttrPushed, pushed),
		attribute.Int(AttrTransfers, transfersOut),
	}
}

// CacheAttribute reports whether a result was served from cache.
func CacheAttribute(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}
