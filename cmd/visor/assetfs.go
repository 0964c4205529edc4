package main

import (
	"errors"
	"io/fs"

	"golang.org/x/mobile/asset"
)

// assetFS exposes the assets packaged with the app. asset.Open only fails
// for missing files, so every open error is reported as fs.ErrNotExist.
type assetFS struct{}

func (assetFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	f, err := asset.Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return assetFile{File: f, name: name}, nil
}

// assetFile has no size or mode to report.
type assetFile struct {
	asset.File
	name string
}

func (f assetFile) Stat() (fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: f.name, Err: errors.ErrUnsupported}
}
