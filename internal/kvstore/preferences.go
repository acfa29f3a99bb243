package kvstore

import "fyne.io/fyne/v2"

// Preferences stores values in the fyne application preferences.
// An empty string reads as absent since fyne cannot tell them apart.
type Preferences struct {
	Prefs fyne.Preferences
}

// NewPreferences wraps the preferences of a running fyne app.
func NewPreferences(p fyne.Preferences) *Preferences {
	return &Preferences{Prefs: p}
}

func (p *Preferences) Get(key string) (string, bool, error) {
	v := p.Prefs.String(key)
	return v, v != "", nil
}

func (p *Preferences) Set(key, value string) error {
	p.Prefs.SetString(key, value)
	return nil
}

func (p *Preferences) Remove(key string) error {
	p.Prefs.RemoveValue(key)
	return nil
}
