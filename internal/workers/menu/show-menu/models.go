// internal/workers/menu/show-menu/models.go
package showmenu

import (
	"visa-bot/internal/content"
	"visa-bot/internal/models"
)

// Screen is one static page of the menu.
type Screen struct {
	Name     string
	Text     string
	Keyboard *models.Keyboard
}

// screenFor maps a navigation action to its page.
func screenFor(c *content.Catalog, action models.Action) (Screen, bool) {
	switch action.(type) {
	case models.BackMain:
		return Screen{Name: "main", Text: content.StartText, Keyboard: c.MainMenu()}, true
	case models.Apply:
		return Screen{Name: "apply", Text: content.ApplyText, Keyboard: c.ApplyMenu()}, true
	case models.Requirements:
		return Screen{Name: "requirements", Text: content.RequirementsText, Keyboard: c.BackToMain()}, true
	case models.FAQ:
		return Screen{Name: "faq", Text: content.FAQText, Keyboard: c.BackToMain()}, true
	case models.Eligible:
		return Screen{Name: "eligible", Text: content.EligibleText, Keyboard: c.ApplyMenu()}, true
	}
	return Screen{}, false
}
