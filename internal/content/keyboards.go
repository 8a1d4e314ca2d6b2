package content

import (
	"visa-bot/internal/common/config"
	"visa-bot/internal/models"
)

// Catalog renders the bot keyboards. It is immutable after construction.
type Catalog struct {
	links         config.LinksConfig
	nationalities []string
}

func NewCatalog(links config.LinksConfig, nationalities []string) *Catalog {
	return &Catalog{
		links:         links,
		nationalities: append([]string(nil), nationalities...),
	}
}

func (c *Catalog) Links() config.LinksConfig { return c.links }

func (c *Catalog) MainMenu() *models.Keyboard {
	return models.NewKeyboard(
		models.ActionButton("🛂 Apply for Visa", models.Apply{}),
		models.ActionButton("📝 Visa Requirements", models.Requirements{}),
		models.ActionButton("❓ FAQ", models.FAQ{}),
		models.LinkButton("🌐 Go to Website", c.links.WebsiteURL),
		models.LinkButton("📞 Contact Specialist", c.links.ContactURL),
	)
}

func (c *Catalog) ApplyMenu() *models.Keyboard {
	return models.NewKeyboard(
		models.ActionButton("🇷🇺 Eligible Nationalities", models.Eligible{}),
		models.ActionButton("📋 Fill the Form", models.FillForm{}),
		backButton(),
	)
}

func (c *Catalog) BackToMain() *models.Keyboard {
	return models.NewKeyboard(backButton())
}

// Nationality is the quick-pick keyboard shown with the 3/8 prompt.
func (c *Catalog) Nationality() *models.Keyboard {
	buttons := make([]models.Button, 0, len(c.nationalities)+1)
	for _, nat := range c.nationalities {
		buttons = append(buttons, models.ActionButton(nat, models.SelectNationality{Country: nat}))
	}
	buttons = append(buttons, models.ActionButton("Other nationality? Type it in chat…", models.NationalityHint{}))
	return models.NewKeyboard(buttons...)
}

// Payment is attached to the end-of-form message.
func (c *Catalog) Payment() *models.Keyboard {
	return models.NewKeyboard(
		models.LinkButton("💳 Pay $125 Now and get instruction for Russian travel", c.links.PaymentURL),
		models.ActionButton("✅ I paid", models.UserPaid{}),
	)
}

// Guide is attached to the applicant's completion message.
func (c *Catalog) Guide() *models.Keyboard {
	return models.NewKeyboard(
		models.LinkButton("📄 Download PDF Guide", c.links.GuideURL),
		backButton(),
	)
}

// MarkPaid is attached to the admin's pending-payment summary.
func (c *Catalog) MarkPaid(target models.Identity) *models.Keyboard {
	return models.NewKeyboard(models.ActionButton("Mark as paid", models.ConfirmPayment{Target: target}))
}

func backButton() models.Button {
	return models.ActionButton("🔙 Back to Main Menu", models.BackMain{})
}
