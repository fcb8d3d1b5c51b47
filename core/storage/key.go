package storage

import (
	"path"
	"strings"
)

// Key joins a bucket prefix and path parts into an object key.
// Leading and trailing slashes on the prefix are ignored and an empty prefix
// yields a key at the bucket root.
func Key(prefix string, parts ...string) string {
	return path.Join(append([]string{strings.Trim(prefix, "/")}, parts...)...)
}

// FolderKey returns the key of the folder marker object for folder under prefix.
func FolderKey(prefix, folder string) string {
	return Key(prefix, folder) + "/"
}
