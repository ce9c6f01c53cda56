package formcoerce

import "strings"

// Coercer converts raw form values according to a shape. The zero value is
// not usable; construct one with New.
type Coercer struct {
	opt  Options
	date Strategy[any]
}

// New returns a Coercer configured by opt.
func New(opt Options) *Coercer {
	return &Coercer{opt: opt, date: DateStrategy(opt.Location)}
}

// Options returns the configuration the Coercer was built with.
func (c *Coercer) Options() Options { return c.opt }

var defaultCoercer = New(DefaultOptions())

// CoerceValue coerces raw according to ref using DefaultOptions. ok is false
// when the value resolved to "omitted" (an empty optional field). A nil ref
// returns raw unchanged.
func CoerceValue(raw any, ref Describer) (any, bool) {
	return defaultCoercer.Coerce(raw, ref)
}

// Coerce coerces raw according to ref. See CoerceValue.
func (c *Coercer) Coerce(raw any, ref Describer) (any, bool) {
	v, p := c.coerce(raw, ref, nil, nil)
	return v, p&PresenceOmitted == 0
}

// CoerceWithMeta coerces raw and records, per JSON Pointer, which fallback
// branch produced each visited value.
func (c *Coercer) CoerceWithMeta(raw any, ref Describer) Decoded {
	pm := PresenceMap{}
	v, p := c.coerce(raw, ref, RootPath(), pm)
	return Decoded{Value: v, Omitted: p&PresenceOmitted != 0, Presence: pm}
}

// coerce dispatches on the shape's tag. path and pm are nil unless presence
// is being collected.
func (c *Coercer) coerce(raw any, ref Describer, path PathRef, pm PresenceMap) (any, Presence) {
	shape := Describe(ref)
	var (
		v any
		p Presence
	)
	switch shape.Tag {
	case TagBoolean:
		v, p = BooleanStrategy.apply(c.trim(raw), shape.Optional, shape.Nullable)
	case TagNumber:
		v, p = NumberStrategy.apply(c.trim(raw), shape.Optional, shape.Nullable)
	case TagDate:
		v, p = c.date.apply(c.trim(raw), shape.Optional, shape.Nullable)
	case TagText, TagEnum, TagNativeEnum:
		v, p = TextStrategy.apply(c.trim(raw), shape.Optional, shape.Nullable)
	case TagComposite:
		_, isRecord := asRecord(raw)
		if shape.Children == nil || (Truthy(raw) && !isRecord) {
			v, p = raw, PresencePassthrough
			break
		}
		v, p = c.composite(shape, path, pm).apply(raw, shape.Optional, shape.Nullable)
	default:
		v, p = raw, PresencePassthrough
	}
	pm.mark(path, p)
	return v, p
}

// composite builds the strategy for one record. Each call produces a fresh
// output map; the input record is never modified.
func (c *Coercer) composite(shape Shape, path PathRef, pm PresenceMap) Strategy[map[string]any] {
	return MakeStrategy(func(raw any) map[string]any {
		rec, _ := asRecord(raw)
		out := make(map[string]any, len(rec))
		for key, sub := range rec {
			c.assign(out, key, sub, shape.Children[key], path, pm)
		}
		if c.opt.FillAbsent {
			for _, key := range shape.ChildNames() {
				if _, seen := rec[key]; seen {
					continue
				}
				c.assign(out, key, nil, shape.Children[key], path, pm)
			}
		}
		return out
	}, c.compositeEmpty())
}

func (c *Coercer) assign(out map[string]any, key string, raw any, child Describer, path PathRef, pm PresenceMap) {
	var sub PathRef
	if pm != nil {
		sub = path.Field(key)
	}
	if v, p := c.coerce(raw, child, sub, pm); p&PresenceOmitted == 0 {
		out[key] = v
	}
}

func (c *Coercer) compositeEmpty() any {
	if c.opt.CompositeEmpty == CompositeEmptyRecord {
		return map[string]any{}
	}
	return false
}

func (c *Coercer) trim(raw any) any {
	if !c.opt.TrimText {
		return raw
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return raw
}
