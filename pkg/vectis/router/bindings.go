package router

import (
	"context"
	"maps"
)

// KeyOptions lists the modifiers a keyboard shortcut requires. Modifiers not
// required may be pressed as well.
type KeyOptions struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

func (o KeyOptions) satisfiedBy(evt *Event) bool {
	if o.Ctrl && !evt.Ctrl {
		return false
	}
	if o.Alt && !evt.Alt {
		return false
	}
	if o.Shift && !evt.Shift {
		return false
	}
	return true
}

// BindElement attaches h to one specific element for events of kind. Direct
// bindings run before delegated channels, on the target first and then on
// each ancestor.
func (r *Router) BindElement(el *Element, kind Kind, h Handler) Unsubscribe {
	r.mu.Lock()
	e := r.newEntryLocked(h)
	byElement, ok := r.direct[kind]
	if !ok {
		byElement = make(map[*Element][]entry)
		r.direct[kind] = byElement
	}
	byElement[el] = append(byElement[el], e)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		byElement, ok := r.direct[kind]
		if !ok {
			return
		}
		byElement[el] = removeEntry(byElement[el], e.id)
		if len(byElement[el]) == 0 {
			delete(byElement, el)
		}
	}
}

func (r *Router) directFor(kind Kind, el *Element) []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entry(nil), r.direct[kind][el]...)
}

// OnFormSubmit registers h for submit:<selector>. The submit's default is
// prevented and the form's enabled, named fields are collected into
// Payload.FormData before h runs.
func (r *Router) OnFormSubmit(selector string, h Handler) Unsubscribe {
	return r.On(selectorChannel(KindSubmit, "", selector), func(ctx context.Context, p *Payload) error {
		if p.Event != nil {
			p.Event.PreventDefault()
		}
		withForm := *p
		withForm.FormData = p.Target.fields()
		if p.FormData != nil {
			withForm.FormData = maps.Clone(p.FormData)
			maps.Copy(withForm.FormData, p.Target.fields())
		}
		return h(ctx, &withForm)
	})
}

// OnKeyboard registers h for keydown events whose key equals key exactly and
// whose modifiers include every one opts requires.
func (r *Router) OnKeyboard(key string, opts KeyOptions, h Handler) Unsubscribe {
	r.mu.Lock()
	kb := keyBinding{key: key, opts: opts, entry: r.newEntryLocked(h)}
	r.keys = append(r.keys, kb)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, existing := range r.keys {
			if existing.id == kb.id {
				r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
				return
			}
		}
	}
}

func (r *Router) keysFor(evt *Event) []keyBinding {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []keyBinding
	for _, kb := range r.keys {
		if kb.key == evt.Key && kb.opts.satisfiedBy(evt) {
			out = append(out, kb)
		}
	}
	return out
}
