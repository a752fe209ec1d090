package cmd

import "github.com/qosasa/qosasa/pkg"

var (
	ErrMarshal      = pkg.NewError("marshal output")
	ErrWriteOutput  = pkg.NewError("write output")
	ErrReadTemplate = pkg.NewError("read template")
	ErrFileExists   = pkg.NewError("file exists (use --force to overwrite)")
)

func pkgError(err error) *pkg.Error { return pkg.WrapError(err) }
