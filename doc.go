// Package atlas implements the dynamic texture atlas used to cache small
// images (glyph masks, path coverage, decoded sprites) in GPU textures.
//
// # Overview
//
// A [DrawAtlas] owns up to [MaxMultitexturePages] page textures. Each page
// is split into a grid of fixed-size plots, and rectangles are packed into
// plots with a skyline packer. Clients keep an [AtlasLocator] per cached
// image and check it with [DrawAtlas.HasID] before drawing: once a plot is
// recycled its generation advances and old locators stop matching.
//
// # Tokens
//
// GPU work is recorded ahead of execution, so a plot may still be sampled
// by work that has not been submitted yet. Clients stamp plots with the
// recorder's next flush token via [DrawAtlas.SetLastUseToken]; a plot is
// only recycled once its stamp is older than the next flush token. When
// every plot is pinned, [DrawAtlas.AddRect] returns [TryAgain]:
//
//	ec := a.AddToAtlas(rec, w, h, pixels, &loc)
//	if ec == atlas.TryAgain {
//	    a.RecordUploads(rec)
//	    rec.Flush()
//	    a.Compact(rec.TokenTracker().NextFlushToken())
//	    ec = a.AddToAtlas(rec, w, h, pixels, &loc)
//	}
//
// # Uploads
//
// Pixels are staged on the host per plot. [DrawAtlas.RecordUploads] hands
// the dirty region of every plot to the [Recorder], which writes them to
// the page textures when flushed. Textures come from a [TextureProvider];
// see the backend packages for software, wgpu HAL and gpucontext
// implementations.
//
// # Compaction
//
// [DrawAtlas.Compact] should be called after each flush. It ages unused
// plots and releases the highest page once nothing on it has been used
// for a while, keeping GPU memory proportional to recent demand.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route debug records
// (page activation, evictions) to a [log/slog] logger.
package atlas
