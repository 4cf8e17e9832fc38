// Package rastercheck renders synthetic plots and fields to pixel buffers,
// writes them as image files and validates what comes back.
//
// # Overview
//
// A run is a sequence of sections. Each section renders something (a line
// plot, a filled contour, an animation, a large tiled heatmap), stores it
// as PNG, JPEG or GIF, reads the file back and checks the pixels: is the
// image non-uniform, does it have the expected channels and size, do the
// frames of an animation move. Every check is counted, and the run passes
// only when no check failed.
//
// # Quick Start
//
//	import "github.com/gogpu/rastercheck"
//
//	sum := rastercheck.Run(ctx,
//	    rastercheck.WithOutputDir("out"),
//	    rastercheck.WithOutput(os.Stdout),
//	)
//	os.Exit(sum.ExitCode)
//
// # Tiled Composition
//
// The large heatmap is cut into tiles that render independently on a worker
// pool. The color range is resolved once over the whole field before any
// tile starts, so equal values get equal colors on both sides of a seam.
// Rendering produces alpha-first (A,R,G,B) pixels, which are reordered to
// RGBA before they are pasted into the canvas. JPEG output gets an opaque
// copy, flattened onto white after any resizing.
//
// # Output
//
// One line per check is printed, tagged [OK], [warn] or [fail], between
// section banners. The last line is the summary:
//
//	[RESULT] PASS | checks=33, ok=33, warns=0, fails=0, time=4.21s
//
// Diagnostics go to the slog logger set with SetLogger; there are none by
// default.
package rastercheck

// Version is the current version of the module.
const Version = "0.1.0"
