package services

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"clienthub/internal/models"
	"clienthub/internal/store"
)

// EligibleClient is a client due for outreach, annotated with its derived
// expiry state
type EligibleClient struct {
	models.Client
	DaysLeft int            `json:"days_left"`
	Category ExpiryCategory `json:"category"`
}

// MessagingCounts holds per-category totals for the eligible set
type MessagingCounts struct {
	All      int `json:"all"`
	Expired  int `json:"expired"`
	Critical int `json:"critical"`
	Reminder int `json:"reminder"`
}

// SendResult is the outcome of composing a message for one client
type SendResult struct {
	Client   models.Client  `json:"client"`
	Category ExpiryCategory `json:"category"`
	DaysLeft int            `json:"days_left"`
	Message  string         `json:"message"`
	Link     string         `json:"link"`
}

// MessagingService derives the outreach queue from store state and composes
// outbound messages. Nothing is sent automatically; a send is always
// user triggered and hands back a deep link.
type MessagingService struct {
	store *store.Store
}

// NewMessagingService creates a new messaging service
func NewMessagingService(s *store.Store) *MessagingService {
	return &MessagingService{store: s}
}

// Eligible returns the clients due for outreach at the given instant,
// most urgent first:
//   - auto-pay clients are excluded unconditionally
//   - clients messaged less than messageFrequency days ago are excluded;
//     the boundary day counts as eligible again
//   - clients more than 15 days from expiry are not yet actionable
func (m *MessagingService) Eligible(now time.Time) []EligibleClient {
	frequency := m.store.Settings().MessageFrequency

	var out []EligibleClient
	for _, c := range m.store.Clients() {
		if c.AutoPay {
			continue
		}
		if c.LastMessageSent != nil {
			daysSince := int(now.Sub(*c.LastMessageSent).Hours() / 24)
			if daysSince < frequency {
				continue
			}
		}

		daysLeft := DaysLeft(c.ExpiryDate, now)
		if daysLeft > MessagingWindowDays {
			continue
		}

		out = append(out, EligibleClient{
			Client:   c,
			DaysLeft: daysLeft,
			Category: Classify(daysLeft),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})
	return out
}

// Counts tallies an eligible set per category
func Counts(eligible []EligibleClient) MessagingCounts {
	counts := MessagingCounts{All: len(eligible)}
	for _, c := range eligible {
		switch c.Category {
		case CategoryExpired:
			counts.Expired++
		case CategoryCritical:
			counts.Critical++
		case CategoryReminder:
			counts.Reminder++
		}
	}
	return counts
}

// FilterCategory narrows an eligible set to one category
func FilterCategory(eligible []EligibleClient, category ExpiryCategory) []EligibleClient {
	var out []EligibleClient
	for _, c := range eligible {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// ComposeMessage substitutes every occurrence of the named placeholders in
// the template. {days} is the absolute day count. Unknown placeholders are
// left verbatim.
func ComposeMessage(template string, c models.Client, daysLeft int, currency string) string {
	days := daysLeft
	if days < 0 {
		days = -days
	}

	r := strings.NewReplacer(
		"{name}", c.Name,
		"{website}", c.Website,
		"{days}", strconv.Itoa(days),
		"{price}", strconv.FormatFloat(c.Price, 'f', -1, 64),
		"{currency}", currency,
	)
	return r.Replace(template)
}

// WhatsAppLink builds the outbound deep link: digits-only phone number plus
// the URL-encoded message body
func WhatsAppLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(message)
}

// Send composes the message for the client's current category, stamps
// LastMessageSent and logs a "message_sent" entry. Returns false if the id
// is not in the active set.
func (m *MessagingService) Send(id string, now time.Time) (SendResult, bool) {
	c, ok := m.store.Client(id)
	if !ok {
		return SendResult{}, false
	}

	settings := m.store.Settings()
	daysLeft := DaysLeft(c.ExpiryDate, now)
	category := Classify(daysLeft)

	message := ComposeMessage(m.templateFor(settings.Templates, category), c, daysLeft, settings.Currency)
	link := WhatsAppLink(c.Phone, message)

	stamped, _ := m.store.RecordMessageSent(id, now)
	return SendResult{
		Client:   stamped,
		Category: category,
		DaysLeft: daysLeft,
		Message:  message,
		Link:     link,
	}, true
}

// MarkAllSent stamps LastMessageSent on every currently eligible client
// without composing or sending anything. An empty category means all.
// Returns the number of clients stamped.
func (m *MessagingService) MarkAllSent(category ExpiryCategory, now time.Time) int {
	eligible := m.Eligible(now)
	if category != "" {
		eligible = FilterCategory(eligible, category)
	}

	for _, c := range eligible {
		m.store.StampMessageSent(c.ID, now)
	}
	return len(eligible)
}

func (m *MessagingService) templateFor(templates models.MessageTemplates, category ExpiryCategory) string {
	switch category {
	case CategoryExpired:
		return templates.Expired
	case CategoryCritical:
		return templates.Critical
	default:
		return templates.Reminder
	}
}
