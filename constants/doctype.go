package constants

import "strings"

// DocumentType is the closed set of labels the classifier may return.
type DocumentType string

const (
	AadhaarCard      DocumentType = "Aadhaar Card"
	PANCard          DocumentType = "PAN Card"
	UdyamCertificate DocumentType = "Udyam Certificate"
	Unknown          DocumentType = "Unknown"
)

var knownTypes = []DocumentType{AadhaarCard, PANCard, UdyamCertificate}

// KnownLabels returns the three extractable labels as strings.
func KnownLabels() []string {
	out := make([]string, len(knownTypes))
	for i, t := range knownTypes {
		out[i] = string(t)
	}
	return out
}

// Canonicalize maps raw classifier output onto the closed label set.
// Anything that is not exactly one of the known labels (after trimming
// surrounding whitespace) collapses to Unknown; no fuzzy matching.
func Canonicalize(input string) (DocumentType, bool) {
	s := strings.TrimSpace(input)
	for _, t := range knownTypes {
		if s == string(t) {
			return t, true
		}
	}
	return Unknown, false
}
