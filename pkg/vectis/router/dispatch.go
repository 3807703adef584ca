package router

import (
	"context"

	"github.com/randalmurphal/vectis/pkg/vectis/observability"
)

// Dispatch classifies evt and emits the matching channels. It returns the
// channels that had at least one handler, in emission order.
func (r *Router) Dispatch(ctx context.Context, evt *Event) []string {
	if evt == nil {
		return nil
	}
	elapsed := observability.TimedOperation()
	ctx, span := r.spans.StartDispatchSpan(ctx, evt.ID, string(evt.Kind))

	d := dispatch{r: r, ctx: ctx, evt: evt}
	d.direct()

	switch evt.Kind {
	case KindClick:
		d.click()
	case KindInput:
		d.input()
	case KindChange:
		d.change()
	case KindSubmit:
		d.submit()
	case KindKeydown:
		d.keydown()
	}

	r.metrics.RecordDispatch(ctx, string(evt.Kind), len(d.fired), elapsed())
	if len(d.fired) > 0 {
		observability.LogDispatch(r.logger, evt.ID, string(evt.Kind), d.fired)
	}
	r.spans.EndSpanWithError(span, nil)
	return d.fired
}

// dispatch holds the state of one classification pass.
type dispatch struct {
	r     *Router
	ctx   context.Context
	evt   *Event
	fired []string
}

func (d *dispatch) emit(channel string, p *Payload) {
	p.Event = d.evt
	if d.r.Emit(d.ctx, channel, p) > 0 {
		d.fired = append(d.fired, channel)
	}
}

// direct runs element bindings on the target and then its ancestors.
func (d *dispatch) direct() {
	for el := d.evt.Target; el != nil; el = el.Parent {
		handlers := d.r.directFor(d.evt.Kind, el)
		if len(handlers) == 0 {
			continue
		}
		channel := "element:" + string(d.evt.Kind)
		p := &Payload{Channel: channel, Target: el, Event: d.evt, Value: el.Value}
		for _, e := range handlers {
			d.r.run(d.ctx, channel, e.handler, p)
		}
		d.fired = append(d.fired, channel)
	}
}

func (d *dispatch) click() {
	target := d.evt.Target
	if target == nil {
		return
	}

	if action := target.Action(); action != "" {
		if target.Disabled {
			observability.LogActionSkipped(observability.EnrichLogger(d.r.logger, d.evt.ID, string(d.evt.Kind)), action)
			return
		}
		d.evt.PreventDefault()
		d.emit("action:"+action, &Payload{Target: target, Data: target.dataCopy()})
		return
	}

	// Closest element with a live class binding wins.
walk:
	for el := target; el != nil; el = el.Parent {
		for _, class := range el.Classes {
			channel := selectorChannel(KindClick, ".", class)
			if d.r.hasLive(channel) {
				d.emit(channel, &Payload{Target: el, Data: el.dataCopy()})
				break walk
			}
		}
	}

	if target.ID != "" {
		d.emit(selectorChannel(KindClick, "#", target.ID), &Payload{Target: target, Data: target.dataCopy()})
	}
}

func (d *dispatch) input() {
	target := d.evt.Target
	if target == nil {
		return
	}
	d.valueChannels(KindInput, target)
	if target.HasClass(d.r.searchClass) {
		d.emit(ChannelSearch, &Payload{Target: target, Query: target.Value, Value: target.Value})
	}
}

func (d *dispatch) change() {
	if d.evt.Target == nil {
		return
	}
	d.valueChannels(KindChange, d.evt.Target)
}

// valueChannels emits <kind>:#<id> and then <kind>:.<class> for each class of
// the target.
func (d *dispatch) valueChannels(kind Kind, target *Element) {
	if target.ID != "" {
		d.emit(selectorChannel(kind, "#", target.ID), &Payload{
			Target: target,
			Value:  target.Value,
			Data:   target.dataCopy(),
		})
	}
	for _, class := range target.Classes {
		d.emit(selectorChannel(kind, ".", class), &Payload{
			Target: target,
			Value:  target.Value,
			Data:   target.dataCopy(),
		})
	}
}

func (d *dispatch) submit() {
	form := d.evt.Target
	if form == nil {
		return
	}
	if form.ID != "" {
		d.emit(selectorChannel(KindSubmit, "#", form.ID), &Payload{Target: form, Data: form.dataCopy()})
	}
	for _, class := range form.Classes {
		d.emit(selectorChannel(KindSubmit, ".", class), &Payload{Target: form, Data: form.dataCopy()})
	}
}

func (d *dispatch) keydown() {
	for _, kb := range d.r.keysFor(d.evt) {
		channel := "key:" + kb.key
		d.r.run(d.ctx, channel, kb.handler, &Payload{Channel: channel, Event: d.evt, Key: d.evt.Key})
		d.fired = append(d.fired, channel)
	}
}
