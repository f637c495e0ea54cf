package services

import "testing"

func TestVerifyDocumentName(t *testing.T) {
	cases := []struct {
		docType    string
		name       string
		wantStatus string
	}{
		{"Medical Certificate", "medical_clearance_2026.pdf", "Verified"},
		{"Medical Certificate", "Doctor-Letter.PDF", "Verified"},
		{"Medical Certificate", "scan001.pdf", "Needs Review"},
		{"Fitness Assessment", "fitness_report.pdf", "Verified"},
		{"Fitness Assessment", "Sports-physical.pdf", "Verified"},
		{"Fitness Assessment", "random.pdf", "Needs Review"},
		{"Identity", "birth_certificate.pdf", "Needs Review"},
		{"Identity", "proof_of_age.jpg", "Needs Review"},
		{"Identity", "selfie.jpg", "Not Verified"},
	}

	for _, tc := range cases {
		status, confidence := VerifyDocumentName(tc.docType, tc.name)
		if status != tc.wantStatus {
			t.Errorf("VerifyDocumentName(%q, %q) = %q, want %q", tc.docType, tc.name, status, tc.wantStatus)
		}
		if confidence < 0 || confidence > 100 {
			t.Errorf("confidence %d out of range for %q", confidence, tc.name)
		}
	}
}
