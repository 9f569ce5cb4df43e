package debounce

func (d *Debouncer[T]) Pending() bool {
	return d.scheduled()
}
