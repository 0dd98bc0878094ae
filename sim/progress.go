package sim

// LayerProgress tracks the in-flight layer of one request.
// A fresh record replaces the old one on every layer transition.
type LayerProgress struct {
	LayerIndex      int
	ReadyAt         int64   // tick the current layer's Job became eligible
	VVPCount        int     // width of the current layer
	VVPsRemaining   int     // tasks of the current layer not yet completed
	DependentLayers []Layer // layers not yet started, owned by this record
}

func newLayerProgress(layerIndex int, readyAt int64, vvps int, dependent []Layer) *LayerProgress {
	return &LayerProgress{
		LayerIndex:      layerIndex,
		ReadyAt:         readyAt,
		VVPCount:        vvps,
		VVPsRemaining:   vvps,
		DependentLayers: cloneLayers(dependent),
	}
}

// HasDependents reports whether another layer follows the current one.
func (p *LayerProgress) HasDependents() bool {
	return len(p.DependentLayers) > 0
}
