// Package template renders notification messages by substituting
// {placeholder} tokens with owner, pet and visit field values.
package template

import (
	"embed"
	"regexp"
	"strings"
	"sync"

	"github.com/wb-go/wbf/zlog"

	"github.com/petclinic/reminder-notifier/internal/model"
)

//go:embed templates/notifications/*.txt
var templateFS embed.FS

const (
	templateBasePath = "templates/notifications/"

	// dateLayout renders dates as "January 2, 2006".
	dateLayout = "January 2, 2006"

	// defaultTemplate is used when a template resource cannot be loaded.
	defaultTemplate = "Dear {ownerFirstName}, this is a notification from the Pet Clinic."
)

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Renderer substitutes placeholders and caches template resources.
//
// The cache is populated lazily per notification type and never invalidated:
// templates are static resources bundled with the binary.
type Renderer struct {
	mu    sync.Mutex
	cache map[string]string
}

// NewRenderer creates a Renderer with an empty template cache.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string]string)}
}

// Render replaces recognized placeholders in tmpl with values from the given
// owner, pet and visit. Unrecognized placeholders are left verbatim so that
// unknown tokens stay visible instead of silently disappearing. Pet and visit
// may be nil; their placeholders then fall under the pass-through rule.
// A nil-equivalent (empty) template renders to the empty string.
func (r *Renderer) Render(tmpl string, owner model.Owner, pet *model.Pet, visit *model.Visit) string {
	if tmpl == "" {
		return ""
	}

	values := map[string]string{
		"ownerFirstName": owner.FirstName,
		"ownerLastName":  owner.LastName,
		"ownerFullName":  owner.FullName(),
	}

	if pet != nil {
		values["petName"] = pet.Name

		petType := pet.Type
		if petType == "" {
			petType = "pet"
		}
		values["petType"] = petType

		if pet.BirthDate != nil {
			values["petBirthDate"] = pet.BirthDate.Format(dateLayout)
		} else {
			values["petBirthDate"] = ""
		}
	}

	if visit != nil {
		if visit.Date != nil {
			values["visitDate"] = visit.Date.Format(dateLayout)
		} else {
			values["visitDate"] = ""
		}
		values["visitDescription"] = visit.Description
	}

	// ReplaceAllStringFunc returns the value as-is, so replacement text
	// containing '{', '}' or '$' stays literal.
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return match
	})
}

// RenderSchedule renders a schedule's message template with its full
// owner, pet and visit context.
func (r *Renderer) RenderSchedule(s *model.Schedule) string {
	return r.Render(s.MessageTemplate, s.Owner, s.Pet, s.Visit)
}

// RenderNotification re-renders a notification's message with the owner and
// pet context attached to it. Notifications carry no visit reference.
func (r *Renderer) RenderNotification(n *model.Notification) string {
	return r.Render(n.Message, n.Owner, n.Pet, nil)
}

// LoadTemplate returns the template text for the given notification type,
// reading the embedded resource on first use. Lookup is case-insensitive.
// A missing resource falls back to the default template.
func (r *Renderer) LoadTemplate(t model.NotificationType) string {
	key := strings.ToLower(string(t))

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[key]; ok {
		return tmpl
	}

	path := templateBasePath + templateFileName(t)

	content, err := templateFS.ReadFile(path)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("path", path).Msg("failed to load notification template")
		r.cache[key] = defaultTemplate
		return defaultTemplate
	}

	tmpl := string(content)
	r.cache[key] = tmpl
	return tmpl
}

func templateFileName(t model.NotificationType) string {
	switch model.NotificationType(strings.ToLower(string(t))) {
	case model.TypeAppointmentReminder:
		return "appointment_reminder.txt"
	case model.TypeMedicationReminder:
		return "medication_reminder.txt"
	case model.TypeVaccinationReminder:
		return "vaccination_reminder.txt"
	default:
		return "default_notification.txt"
	}
}
