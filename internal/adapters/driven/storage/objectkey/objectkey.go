// Package objectkey lays out documents in flat object stores.
//
// Documents live at {prefix}/{owner}/{filename}. Marker objects whose names
// start with a dot sit next to them and never appear in listings.
package objectkey

import (
	"path"
	"strings"
)

const (
	// ReloadMarker records the last reload request.
	ReloadMarker = ".reload"

	// LanguageMarker holds the owner's language.
	LanguageMarker = ".language"
)

// OwnerPrefix returns the key prefix of an owner's objects, ending in "/".
func OwnerPrefix(prefix, ownerID string) string {
	return path.Join(strings.Trim(prefix, "/"), ownerID) + "/"
}

// Key returns the key of a document.
func Key(prefix, ownerID, filename string) string {
	return OwnerPrefix(prefix, ownerID) + filename
}

// Marker returns the key of an owner's marker object.
func Marker(prefix, ownerID, marker string) string {
	return OwnerPrefix(prefix, ownerID) + marker
}

// Filename strips the owner prefix from key. ok is false for markers,
// nested keys and keys outside the owner's prefix.
func Filename(prefix, ownerID, key string) (string, bool) {
	name, ok := strings.CutPrefix(key, OwnerPrefix(prefix, ownerID))
	if !ok || !ValidFilename(name) {
		return "", false
	}
	return name, true
}

// ValidFilename rejects names that would escape the owner's prefix or
// collide with a marker.
func ValidFilename(name string) bool {
	return name != "" && !strings.Contains(name, "/") && !strings.HasPrefix(name, ".")
}
