// internal/models/business.go
package models

// BusinessContext describes the fictional business an industry demo is built around.
// Values are created once per item and never mutated.
type BusinessContext struct {
	BusinessName       string `json:"business_name" mapstructure:"business_name"`
	ServiceType        string `json:"service_type" mapstructure:"service_type"`
	SpecificNeed       string `json:"specific_need" mapstructure:"specific_need"`
	ServiceCategory    string `json:"service_category" mapstructure:"service_category"`
	ServiceList        string `json:"service_list" mapstructure:"service_list"`
	RecommendedService string `json:"recommended_service" mapstructure:"recommended_service"`
}

// Fields exposes the context as placeholder values keyed by their template names.
func (c BusinessContext) Fields() map[string]string {
	return map[string]string{
		"business_name":       c.BusinessName,
		"service_type":        c.ServiceType,
		"specific_need":       c.SpecificNeed,
		"service_category":    c.ServiceCategory,
		"service_list":        c.ServiceList,
		"recommended_service": c.RecommendedService,
	}
}
