package device

import "github.com/GriffinCanCode/PocketOS/internal/providers/storage"

// deviceEnv is the catalog.Env handed to app initializers
type deviceEnv struct {
	d *Device
}

func (e *deviceEnv) Notify(title, message string) {
	e.d.loop.Do(func() { e.d.notify(title, message) })
}

func (e *deviceEnv) SetStatus(appID, status string) {
	e.d.loop.Do(func() { e.d.setStatus(appID, status) })
}

// Setting exposes the current value of a user setting by persistence key
func (e *deviceEnv) Setting(key string) string {
	var v string
	e.d.loop.Do(func() {
		switch key {
		case storage.KeyAccent:
			v = string(e.d.theme.Accent)
		case storage.KeyMode:
			v = string(e.d.theme.Mode)
		case storage.KeyLanguage:
			v = e.d.language
		case storage.KeyIconShape:
			v = e.d.iconStyle.Shape
		case storage.KeyIconSize:
			v = e.d.iconStyle.Size
		}
	})
	return v
}
