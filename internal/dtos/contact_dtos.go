package dtos

// ContactRequest mirrors the public contact form. Field names stay in
// French because that is what the site's form posts.
type ContactRequest struct {
	Nom       string  `json:"nom" validate:"required,min=1,max=100"`
	Prenom    string  `json:"prenom" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Telephone *string `json:"telephone" validate:"omitempty,max=20"`
	Objet     string  `json:"objet" validate:"required,oneof=immobilier succession famille entreprise autre"`
	Message   string  `json:"message" validate:"required,min=10,max=5000"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactWebhookPayload is what the automation webhook receives: the
// validated form plus a server-side submission timestamp.
type ContactWebhookPayload struct {
	ContactRequest
	// ISO-8601, UTC.
	Date string `json:"date"`
}
