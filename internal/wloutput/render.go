package wloutput

import "log"

// pixelSize returns the buffer size to render at: the configured
// logical surface size scaled by the preferred fractional scale,
// falling back to the output's physical mode if the layer surface
// hasn't been configured with an explicit size yet.
func (o *Output) pixelSize() (int32, int32) {
	w, h := o.configW, o.configH
	if w == 0 || h == 0 {
		w, h = o.width, o.height
		return w, h
	}
	scale := o.scale120
	if scale == 0 {
		scale = 120
	}
	return scaleDim(w, scale), scaleDim(h, scale)
}

func scaleDim(v, scale120 int32) int32 {
	return int32((int64(v)*int64(scale120) + 60) / 120)
}

// render draws the active config's buffer and commits it, only doing
// real work when the buffer or the resolved config actually changed
// since the last render (§4.E's quiescence gate, applied per output).
func (o *Output) render() {
	if o.configSet == nil || o.layerSurface == nil || !o.acked {
		return
	}
	if !o.bufferChange && !o.configChange {
		return
	}

	w, h := o.pixelSize()
	if w <= 0 || h <= 0 {
		return
	}

	active := o.configSet.Active

	// A resize invalidates every buffer at the old size, not just the
	// active one; rebuild the rest now so a later workspace switch hits
	// a warm cache instead of paying a synchronous decode.
	if o.bufferChange {
		for _, c := range o.configSet.Configs {
			if c == active {
				continue
			}
			buf, err := o.mgr.Cache.Get(c, w, h)
			if err != nil {
				log.Printf("wloutput: prewarm output %s workspace %q: %v", o.name, c.Workspace, err)
				continue
			}
			prev := c.Buffer
			c.Buffer = buf
			// Get took a new reference even when it returned prev, so
			// prev's reference is always dropped to keep one per Config.
			if prev != nil {
				o.mgr.Cache.Release(prev)
			}
		}
	}

	buf, err := o.mgr.Cache.Get(active, w, h)
	if err != nil {
		log.Printf("wloutput: render output %s: %v", o.name, err)
		return
	}

	prev := active.Buffer
	active.Buffer = buf

	o.surface.Attach(buf.Wire.(*wireBuffer).buf, 0, 0)
	o.surface.DamageBuffer(0, 0, w, h)
	if o.viewport != nil {
		o.viewport.SetDestination(o.configW, o.configH)
	}
	o.surface.Commit()

	if prev != nil {
		o.mgr.Cache.Release(prev)
	}

	o.bufferChange = false
	o.configChange = false
}
