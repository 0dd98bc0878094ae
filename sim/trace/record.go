package trace

// LayerRecord captures the execution window of one layer of one request.
type LayerRecord struct {
	RequestID   int64
	LayerIndex  int
	VVPCount    int
	ReadyAt     int64 // tick the layer's job became eligible
	CompletedAt int64 // tick its last task finished
}

// Duration returns the ticks between eligibility and completion.
func (r LayerRecord) Duration() int64 {
	return r.CompletedAt - r.ReadyAt
}

// DispatchRecord captures one job being fanned out to the core pool.
type DispatchRecord struct {
	RequestID  int64
	LayerIndex int
	Clock      int64
	FirstCore  int // core receiving the first task; the rest follow round-robin
	Tasks      int
}
