package panicerr

// Recover calls f, converting any panic into a non-nil error return. Unlike a
// go statement, f runs on the caller's goroutine.
func Recover(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = newPanicError(name, e)
		}
	}()
	return f()
}
