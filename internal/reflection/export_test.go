package reflection

// CacheSize returns the number of analyses a holds.
func CacheSize(a *Analyzer) int {
	return a.cacheSize()
}
