//go:build !windows

package open

import "os"

// NewSafeFile opens filepath as an empty file only the current user can
// read or write. Profile stores hold bearer tokens, so they must never
// be created group- or world-readable, not even for a moment.
//
// An existing file is truncated.
func NewSafeFile(filepath string) (*os.File, error) {
	f, err := os.OpenFile(filepath, os.O_TRUNC|os.O_CREATE|os.O_RDWR, os.FileMode(0600))
	if err != nil {
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
