package store

const (
	// KeyNotebook holds the JSON array of saved items.
	KeyNotebook = "confessio:notebook"
	// KeyTheme holds the preferred color theme.
	KeyTheme = "confessio:prefs:theme"
	// KeyDefaultBible holds the id of the preferred translation.
	KeyDefaultBible = "confessio:prefs:default-bible"
	// KeyPrefixCache is the prefix of generated content caches.
	KeyPrefixCache = "confessio:cache:"
)

// CacheKey returns the key of a cached entry for feature, ex: CacheKey("devotional", "2026-03-02").
func CacheKey(feature, key string) string {
	return KeyPrefixCache + feature + ":" + key
}

// CachePrefix returns the prefix matching every cached entry of feature.
func CachePrefix(feature string) string {
	return KeyPrefixCache + feature + ":"
}
