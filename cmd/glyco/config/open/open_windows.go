//go:build windows

package open

import (
	"os"

	winacl "github.com/hectane/go-acl"
)

// NewSafeFile opens filepath as an empty file only the current user can
// read or write. Profile stores hold bearer tokens, so they must never
// be left group- or world-readable.
//
// An existing file is truncated.
func NewSafeFile(filepath string) (*os.File, error) {
	// Windows cannot apply an ACL at creation time. Create first,
	// chmod via ACL, and only then truncate, so no token bytes are
	// ever readable by others.
	f, err := os.OpenFile(filepath, os.O_TRUNC|os.O_CREATE|os.O_RDWR, os.FileMode(0600))
	if err != nil {
		return nil, err
	}

	if err := winacl.Chmod(filepath, os.FileMode(0600)); err != nil {
		return nil, err
	}

	if err := f.Truncate(0); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	return f, nil
}
