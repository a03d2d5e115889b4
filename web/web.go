// Package web holds the storefront templates and static assets.
package web

import "embed"

// FS contains templates/*.html and static/*
//
//go:embed templates/*.html static/*
var FS embed.FS
