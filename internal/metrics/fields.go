package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod     = "method"
	AttrPath       = "path"
	AttrStatus     = "status"
	AttrCommand    = "command"
	AttrCollection = "collection"
	AttrHit        = "hit"
)
