package autostart

// unsupportedManager reports ErrUnsupported for every operation.
type unsupportedManager struct {
	name string
}

func (u unsupportedManager) ServiceName() string { return u.name }

func (u unsupportedManager) IsInstalled() (bool, error) { return false, ErrUnsupported }

func (u unsupportedManager) Install(execPath string) error { return ErrUnsupported }

func (u unsupportedManager) Uninstall() error { return ErrUnsupported }
