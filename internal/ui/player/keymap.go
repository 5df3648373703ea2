package player

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	toggle  key.Binding
	forward key.Binding
	back    key.Binding
	next    key.Binding
	faster  key.Binding
	slower  key.Binding
	end     key.Binding
	abort   key.Binding
}

func readingKeys() keyMap {
	km := sharedKeys()
	km.forward = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "page"))
	km.back = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "page"))
	km.next.SetEnabled(false)
	km.faster.SetEnabled(false)
	km.slower.SetEnabled(false)

	return km
}

func listeningKeys() keyMap {
	km := sharedKeys()
	km.forward = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("←/→", "seek"))
	km.back = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "seek"))

	return km
}

func sharedKeys() keyMap {
	return keyMap{
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "speed")),
		slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("+/-", "speed")),
		end:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "finish")),
		abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.toggle, k.forward}

	if k.next.Enabled() {
		bindings = append(bindings, k.next)
	}

	if k.faster.Enabled() {
		bindings = append(bindings, k.faster)
	}

	return append(bindings, k.end, k.abort)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
