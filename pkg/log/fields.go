package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Service
	FieldService = "service"
	FieldAddr    = "addr"

	// Generator
	FieldSource   = "source"
	FieldCount    = "count"
	FieldMaxBatch = "max_batch"
	FieldID       = "id"
)
