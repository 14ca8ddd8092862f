// pkg/catalog/schema.go
package catalog

import "voice-demo-generator/internal/models"

// Beat is one fixed turn of a composed conversation.
type Beat struct {
	Name string
	Role models.SpeakerRole
}

// BeatSequence is the fixed order of a composed call. Roles alternate starting with the customer.
var BeatSequence = []Beat{
	{"greeting", models.RoleCustomer},
	{"receptionist_greeting", models.RoleReceptionist},
	{"service_inquiry", models.RoleCustomer},
	{"receptionist_service_response", models.RoleReceptionist},
	{"booking_request", models.RoleCustomer},
	{"receptionist_availability", models.RoleReceptionist},
	{"customer_selection", models.RoleCustomer},
	{"receptionist_confirmation", models.RoleReceptionist},
	{"customer_details", models.RoleCustomer},
	{"receptionist_final_confirmation", models.RoleReceptionist},
	{"customer_closing", models.RoleCustomer},
	{"receptionist_closing", models.RoleReceptionist},
}

// TemplateSet holds the candidate variants for every beat plus the curated industry contexts.
type TemplateSet struct {
	Greeting                      []string `json:"greeting"`
	ReceptionistGreeting          []string `json:"receptionist_greeting"`
	ServiceInquiry                []string `json:"service_inquiry"`
	ReceptionistServiceResponse   []string `json:"receptionist_service_response"`
	BookingRequest                []string `json:"booking_request"`
	ReceptionistAvailability      []string `json:"receptionist_availability"`
	CustomerSelection             []string `json:"customer_selection"`
	ReceptionistConfirmation      []string `json:"receptionist_confirmation"`
	CustomerDetails               []string `json:"customer_details"`
	ReceptionistFinalConfirmation []string `json:"receptionist_final_confirmation"`
	CustomerClosing               []string `json:"customer_closing"`
	ReceptionistClosing           []string `json:"receptionist_closing"`

	IndustryContexts map[string]models.BusinessContext `json:"industry_contexts"`
}

// Variants returns the candidates for a beat name, or nil for an unknown beat.
func (t *TemplateSet) Variants(beat string) []string {
	switch beat {
	case "greeting":
		return t.Greeting
	case "receptionist_greeting":
		return t.ReceptionistGreeting
	case "service_inquiry":
		return t.ServiceInquiry
	case "receptionist_service_response":
		return t.ReceptionistServiceResponse
	case "booking_request":
		return t.BookingRequest
	case "receptionist_availability":
		return t.ReceptionistAvailability
	case "customer_selection":
		return t.CustomerSelection
	case "receptionist_confirmation":
		return t.ReceptionistConfirmation
	case "customer_details":
		return t.CustomerDetails
	case "receptionist_final_confirmation":
		return t.ReceptionistFinalConfirmation
	case "customer_closing":
		return t.CustomerClosing
	case "receptionist_closing":
		return t.ReceptionistClosing
	}
	return nil
}

// Context looks up a curated context by exact industry name.
func (t *TemplateSet) Context(industry string) (models.BusinessContext, bool) {
	ctx, ok := t.IndustryContexts[industry]
	return ctx, ok
}
