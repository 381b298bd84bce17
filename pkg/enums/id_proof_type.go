package enums

import "fmt"

// IDProofType names the identity document captured at check-in.
type IDProofType string

const (
	IDProofTypeAadhaar  IDProofType = "aadhaar"
	IDProofTypePassport IDProofType = "passport"
	IDProofTypeDriving  IDProofType = "driving_license"
	IDProofTypeVoterID  IDProofType = "voter_id"
)

var validIDProofTypes = []IDProofType{
	IDProofTypeAadhaar,
	IDProofTypePassport,
	IDProofTypeDriving,
	IDProofTypeVoterID,
}

// String implements fmt.Stringer.
func (i IDProofType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IDProofType.
func (i IDProofType) IsValid() bool {
	for _, candidate := range validIDProofTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIDProofType converts raw input into an IDProofType.
func ParseIDProofType(value string) (IDProofType, error) {
	for _, candidate := range validIDProofTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid id proof type %q", value)
}
