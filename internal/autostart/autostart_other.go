//go:build !windows && !linux && !freebsd && !openbsd && !netbsd && !dragonfly

package autostart

// Register is not supported on this platform.
func Register(name, command string) error {
	return ErrUnsupported
}

// Unregister is not supported on this platform.
func Unregister(name string) error {
	return ErrUnsupported
}

// Registered is not supported on this platform.
func Registered(name string) (bool, error) {
	return false, ErrUnsupported
}
