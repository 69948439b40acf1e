package videocontext

// Update is the per-frame tick, invoked by the scheduler rather than by
// users. One tick reconciles graph validity and source readiness,
// advances the timeline, dispatches play/pause to sources and triggers
// exactly one render pass.
func (vc *VideoContext) Update(dt float64) {
	vc.reconcileGraph()
	if vc.state == Broken {
		// Sticky until the graph validates again; the render trigger is
		// skipped entirely while broken.
		return
	}

	if vc.state == Playing || vc.state == Stalled || vc.state == Paused {
		// Readiness is re-evaluated from scratch every tick: no
		// debouncing, no hysteresis. The state is purely a function of
		// current inputs.
		if vc.state != Paused {
			anyNotReady := false
			for _, src := range vc.sources {
				if !src.n.Ready() {
					anyNotReady = true
				}
			}
			if anyNotReady {
				vc.setState(Stalled)
			} else {
				vc.setState(Playing)
			}
		}

		if vc.state == Playing {
			vc.currentTime += dt
			if vc.currentTime > vc.Duration() {
				vc.setState(Ended)
			}
		}

		for _, src := range vc.sources {
			src.n.Advance(vc.currentTime)
			switch vc.state {
			case Stalled:
				// Hold ready sources back so they cannot drift ahead of
				// the timeline while a slow source catches up.
				if src.n.Ready() {
					src.n.Pause()
				}
			case Paused:
				src.n.Pause()
			case Playing:
				src.n.Play()
			}
		}
	}

	vc.renderPass()
}

// renderPass triggers one frame: the destination composites first,
// establishing the base surface, then every processing node renders in
// creation order. Pixel-dependency order is the render graph's concern
// at the binding level, not here.
func (vc *VideoContext) renderPass() {
	vc.dest.Render()
	for _, p := range vc.processing {
		p.n.Render()
	}
}

func (vc *VideoContext) reconcileGraph() {
	err := vc.graph.Validate()
	if err != nil {
		if vc.state != Broken {
			vc.logger.Error("Render graph is structurally broken, suspending playback.", "error", err)
			vc.setState(Broken)
		}
		return
	}
	if vc.state == Broken {
		vc.logger.Info("Render graph repaired, resuming in paused state.")
		vc.setState(Paused)
	}
}
