package metrics

// Metric attribute keys shared across instruments.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrView     = "view"
	AttrResult   = "result"
	AttrTab      = "tab"
)

// Cache lookup outcomes.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)
