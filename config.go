package xmlstream

// Config is the single record of plain fields controlling Reader
// behavior (spec.md §9 design note: "a single record of plain
// fields; no dynamic parameter bags"). Writer takes no Config.
type Config struct {
	// TrimText discards whitespace-only Text events and strips leading and
	// trailing XML whitespace from the rest.
	TrimText bool
	// ExpandEmptyElements surfaces an Empty element as a Start immediately
	// followed by a synthetic End.
	ExpandEmptyElements bool
	// CheckEndNames verifies an End event's name against the innermost
	// unclosed Start, returning EndEventMismatchError otherwise. Read fresh
	// on every ReadEvent call, so toggling it takes effect starting with
	// the very next event and never retroactively revisits depth already
	// tracked (spec.md §9 Open Question (a)).
	CheckEndNames bool
	// CheckComments rejects "--" appearing inside a comment body, beyond
	// its closing "-->".
	CheckComments bool
	// AllowUnmatchedEnds tolerates an End event with no corresponding open
	// Start, instead of raising EndEventMismatchError.
	AllowUnmatchedEnds bool
	// TrimMarkupNamesInClosingTags accepts trailing whitespace inside an
	// End tag's name, e.g. "</a >".
	TrimMarkupNamesInClosingTags bool
	// SplitGeneralRefs causes Text content to be sliced into CharData and
	// GeneralRef events at each "&name;"/"&#N;" boundary, instead of
	// leaving references embedded in a single CharData event.
	SplitGeneralRefs bool
	// HTMLTolerantAttributes is stored in the Config, but Reader and
	// NSReader do not read it: attribute syntax is relaxed only per iterator,
	// through the AttrOptions.HTMLTolerant value passed to Attributes.
	HTMLTolerantAttributes bool
}

// DefaultConfig returns the Config used by NewReader: well-formedness
// checks on, no expansion or trimming.
func DefaultConfig() Config {
	return Config{CheckEndNames: true}
}

// Option mutates a Config in place; used with Reader.Configure.
type Option func(*Config)

func WithTrimText(v bool) Option { return func(c *Config) { c.TrimText = v } }

func WithExpandEmptyElements(v bool) Option { return func(c *Config) { c.ExpandEmptyElements = v } }

func WithCheckEndNames(v bool) Option { return func(c *Config) { c.CheckEndNames = v } }

func WithCheckComments(v bool) Option { return func(c *Config) { c.CheckComments = v } }

func WithAllowUnmatchedEnds(v bool) Option { return func(c *Config) { c.AllowUnmatchedEnds = v } }

func WithTrimMarkupNamesInClosingTags(v bool) Option {
	return func(c *Config) { c.TrimMarkupNamesInClosingTags = v }
}

func WithSplitGeneralRefs(v bool) Option { return func(c *Config) { c.SplitGeneralRefs = v } }

func WithHTMLTolerantAttributes(v bool) Option {
	return func(c *Config) { c.HTMLTolerantAttributes = v }
}
