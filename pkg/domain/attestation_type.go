package domain

import (
	dErrors "laurel/pkg/domain-errors"
)

// AttestationType classifies what a peer endorsement asserts about its target.
// Invariant: the value must be one of the supported attestation types.
//
// Usage: construct via ParseAttestationType at trust boundaries to enforce
// the closed set; direct casting bypasses validation.
type AttestationType string

// Supported attestation types.
const (
	AttestationTechnicalSkill  AttestationType = "technical-skill"
	AttestationCollaboration   AttestationType = "collaboration"
	AttestationReliability     AttestationType = "reliability"
	AttestationLeadership      AttestationType = "leadership"
	AttestationMentorship      AttestationType = "mentorship"
	AttestationIntegrity       AttestationType = "integrity"
	AttestationCommunication   AttestationType = "communication"
	AttestationDomainExpertise AttestationType = "domain-expertise"
)

// validAttestationTypes is the single source of truth for the closed set.
var validAttestationTypes = map[AttestationType]bool{
	AttestationTechnicalSkill:  true,
	AttestationCollaboration:   true,
	AttestationReliability:     true,
	AttestationLeadership:      true,
	AttestationMentorship:      true,
	AttestationIntegrity:       true,
	AttestationCommunication:   true,
	AttestationDomainExpertise: true,
}

// ParseAttestationType constructs an AttestationType from external input.
//
// Errors: returns CodeInvalidString when the value is empty or not in the
// supported set.
func ParseAttestationType(s string) (AttestationType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidString, "attestation type cannot be empty")
	}
	t := AttestationType(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidString, "unsupported attestation type")
	}
	return t, nil
}

// IsValid checks if the attestation type is one of the supported values.
func (t AttestationType) IsValid() bool {
	return validAttestationTypes[t]
}

func (t AttestationType) String() string { return string(t) }
