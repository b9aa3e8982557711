package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyUp:     IntentFlap,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			' ': IntentFlap,
			'k': IntentFlap,
			'w': IntentFlap,
			'p': IntentPause,
			'r': IntentReset,
			'm': IntentToggleMute,
		},
	}
}

// Translate returns the intent bound to ev, IntentNone when unbound
func (t *KeyTable) Translate(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}

// Bind replaces the intent of a rune; IntentNone removes the binding
func (t *KeyTable) Bind(r rune, intent IntentType) {
	if intent == IntentNone {
		delete(t.Runes, r)
		return
	}
	t.Runes[r] = intent
}
