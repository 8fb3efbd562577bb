package llm

import "context"

// TextGenerator issues one prompt to a hosted text-only model and returns
// the raw generated text. One shot, no retry.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

// VisionGenerator issues one prompt plus raw image bytes to a hosted
// multimodal model and returns the raw generated text. One shot, no retry.
type VisionGenerator interface {
	GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Sentinel value for a field the model could not extract.
const NotFound = "Not Found"

// AadhaarFields is the guaranteed key set for an Aadhaar card. Every field
// is always present in the serialized output; unextractable fields carry
// the "Not Found" sentinel.
type AadhaarFields struct {
	Name         string `json:"Name"`
	DOB          string `json:"DOB"`
	Number       string `json:"Number"`
	RelationName string `json:"Relation_Name"`
	Address      string `json:"Address"`
}

// PANFields is the guaranteed key set for a PAN card.
type PANFields struct {
	Name      string `json:"Name"`
	DOB       string `json:"DOB"`
	PANNumber string `json:"PAN_Number"`
}

// UdyamFields is the guaranteed key set for a Udyam registration
// certificate. Enterprise-specific keys, not the Aadhaar set.
type UdyamFields struct {
	EnterpriseName     string `json:"Enterprise_Name"`
	RegistrationNumber string `json:"Udyam_Registration_Number"`
	TypeOfEnterprise   string `json:"Type_of_Enterprise"`
	OwnerName          string `json:"Owner_Name"`
	Address            string `json:"Address"`
}

// BirthCertificateFields is the guaranteed key set for an Indian birth
// certificate. The template exists but the classifier does not yet dispatch
// to it.
type BirthCertificateFields struct {
	ChildName          string `json:"Child_Name"`
	DOB                string `json:"DOB"`
	Gender             string `json:"Gender"`
	FatherName         string `json:"Father_Name"`
	MotherName         string `json:"Mother_Name"`
	PlaceOfBirth       string `json:"Place_of_Birth"`
	RegistrationNumber string `json:"Registration_Number"`
}

// ParseFailure is the uniform failure payload returned when model output is
// not valid JSON after fence stripping. It travels inside the response
// body's data field; the surrounding call still succeeds.
type ParseFailure struct {
	Message string `json:"error"`
	Details string `json:"details"`
}
