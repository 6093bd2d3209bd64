package catalog

// handle tracks one outstanding mutation. It goes stale once the form changes mode,
// after which the mutation's outcome must not touch the form or the banner.
type handle struct {
	form  *Form
	epoch uint64
}

func newHandle(f *Form, epoch uint64) handle {
	return handle{form: f, epoch: epoch}
}

// Stale reports whether the form has left the mode the mutation was issued from
func (h handle) Stale() bool {
	return h.form.Epoch() != h.epoch
}
