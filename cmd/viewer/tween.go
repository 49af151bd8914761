package main

type Action struct {
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// updateTweens advances every running tween by dt and fires finished callbacks.
func (v *Viewer) updateTweens(dt float32) {
	for t, a := range v.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			delete(v.Tweens, t)
		}
	}
}
