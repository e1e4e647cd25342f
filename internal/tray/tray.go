// Package tray provides the system tray menu for mudra.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/mudra/internal/gesture"
)

// Tray is the system tray menu: an enable toggle, the mode switch, the last
// forwarded command and Quit.
type Tray struct {
	onToggle func(enabled bool)
	onMode   func(mode gesture.Mode) error
	onQuit   func()
	enabled  bool
	mode     gesture.Mode
	mu       sync.RWMutex

	menuToggle *systray.MenuItem
	menuMedia  *systray.MenuItem
	menuPinch  *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray showing the given initial state.
func New(enabled bool, mode gesture.Mode) *Tray {
	return &Tray{enabled: enabled, mode: mode}
}

// OnToggle sets the callback run when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnMode sets the callback run when a mode is picked. The menu only moves to
// the new mode when fn succeeds.
func (t *Tray) OnMode(fn func(mode gesture.Mode) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMode = fn
}

// OnQuit sets the callback run when Quit is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray. It blocks until Quit is clicked or Stop is
// called, and must run on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Stop closes the tray from any goroutine.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("mudra")
	systray.SetTooltip("mudra hand gesture control")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle gesture control")
	systray.AddSeparator()
	t.menuMedia = systray.AddMenuItemCheckbox("Media", "Finger-count media control", t.mode == gesture.ModeMedia)
	t.menuPinch = systray.AddMenuItemCheckbox("Mouse", "Pinch mouse control", t.mode == gesture.ModePinch)
	systray.AddSeparator()
	t.menuLast = systray.AddMenuItem("Last: none", "Last forwarded command")
	t.menuLast.Disable()
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit mudra")
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-t.menuMedia.ClickedCh:
				t.handleMode(gesture.ModeMedia)
			case <-t.menuPinch.ClickedCh:
				t.handleMode(gesture.ModePinch)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleMode(mode gesture.Mode) {
	t.mu.RLock()
	callback := t.onMode
	t.mu.RUnlock()

	if callback != nil {
		if err := callback(mode); err != nil {
			t.syncModeChecks()
			return
		}
	}

	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()
	t.syncModeChecks()
}

// SetMode shows mode as the active mode. It is meant for switches made
// outside the menu, such as over HTTP.
func (t *Tray) SetMode(mode gesture.Mode) {
	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()
	t.syncModeChecks()
}

// syncModeChecks redraws the mode checkboxes; systray toggles a checkbox on
// click regardless of the outcome.
func (t *Tray) syncModeChecks() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	setChecked(t.menuMedia, t.mode == gesture.ModeMedia)
	setChecked(t.menuPinch, t.mode == gesture.ModePinch)
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetLastCommand updates the last command display.
func (t *Tray) SetLastCommand(cmd gesture.Command) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLast != nil {
		t.menuLast.SetTitle("Last: " + cmd.Kind.String())
	}
}

// Watch shows each command from feed as the last command until feed closes.
func (t *Tray) Watch(feed <-chan gesture.Command) {
	for cmd := range feed {
		t.SetLastCommand(cmd)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Mode returns the mode the menu shows.
func (t *Tray) Mode() gesture.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func setChecked(item *systray.MenuItem, checked bool) {
	if item == nil {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}
