package atlas

// Option configures a DrawAtlas during creation.
//
// Example:
//
//	a, err := atlas.New(atlas.MaskFormatA8, 2048, 2048, 512, 512, gen,
//	    atlas.WithMultitexturing(true),
//	    atlas.WithEvictionCallback(glyphCache),
//	)
type Option func(*options)

// options holds optional configuration for DrawAtlas creation.
type options struct {
	multitexturing bool
	storage        bool
	label          string
	callbacks      []PlotEvictionCallback
}

// defaultOptions returns the default atlas options.
func defaultOptions() options {
	return options{
		label: "DrawAtlas",
	}
}

// WithMultitexturing allows the atlas to grow up to MaxMultitexturePages
// pages. Without it the atlas has a single page.
func WithMultitexturing(enabled bool) Option {
	return func(o *options) {
		o.multitexturing = enabled
	}
}

// WithStorageTextures requests storage-bindable page textures, for atlases
// written by compute passes.
func WithStorageTextures(enabled bool) Option {
	return func(o *options) {
		o.storage = enabled
	}
}

// WithEvictionCallback registers cb to be notified of plot evictions.
// It may be given more than once.
func WithEvictionCallback(cb PlotEvictionCallback) Option {
	return func(o *options) {
		if cb != nil {
			o.callbacks = append(o.callbacks, cb)
		}
	}
}

// WithLabel sets the debug label used for page textures and log records.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
