package storage

// Storage key scheme. Filters and sort are global; favorites and saved
// searches are partitioned per owner scope.
const (
	KeyFilters = "luxe_filters_v1"
	KeySort    = "luxe_sort_v1"

	prefixSavedSearches = "luxe_saved_searches_"
	prefixFavorites     = "luxe_favorites_"

	// GuestOwner is the owner scope used when nobody is logged in.
	GuestOwner = "guest"
)

// OwnerKey maps an authenticated email to its owner scope, falling
// back to the guest scope for the empty identity.
func OwnerKey(email string) string {
	if email == "" {
		return GuestOwner
	}
	return email
}

// FavoritesKey returns the storage key holding an owner's favorites.
func FavoritesKey(owner string) string {
	return prefixFavorites + owner
}

// SavedSearchesKey returns the storage key holding an owner's saved
// searches.
func SavedSearchesKey(owner string) string {
	return prefixSavedSearches + owner
}
