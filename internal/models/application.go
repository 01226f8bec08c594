// internal/models/application.go
package models

import "time"

// ApplicationDraft is the in-memory, client-side state accumulated across
// the five wizard steps. Input fields are kept as the strings the user
// typed; the submission client converts numerics at assembly time. The
// draft has no identity until submission and is discarded if abandoned.
type ApplicationDraft struct {
	Personal   PersonalInfo    `json:"personalInfo"`
	Employment EmploymentInfo  `json:"employmentInfo"`
	Financial  FinancialInfo   `json:"financialInfo"`
	Decision   DecisionSignals `json:"decisionSignals"`
	Compliance ComplianceFlags `json:"complianceFlags"`
}

type PersonalInfo struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`

	// Date of birth as separate selections; day options are constrained by
	// the chosen month/year.
	BirthDay   string `json:"birthDay"`
	BirthMonth string `json:"birthMonth"`
	BirthYear  string `json:"birthYear"`

	SSN           string `json:"ssn"` // 9 digits, no separators
	DriverLicense string `json:"driverLicense"`
	Sex           string `json:"sex"`
	MaritalStatus string `json:"maritalStatus"`

	PrimaryPhone   string `json:"primaryPhone"`   // 10 digits
	SecondaryPhone string `json:"secondaryPhone"` // optional, 10 digits if set
	Email          string `json:"email"`

	Address          Address  `json:"address"`
	PreviousAddress  *Address `json:"previousAddress,omitempty"`
	EmergencyContact Contact  `json:"emergencyContact"`

	Referral      Referral `json:"referral"`
	EstimatedCost string   `json:"estimatedCost"` // 0 < v <= 250000
}

type Address struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	TimeAtAddress string `json:"timeAtAddress,omitempty"`
	RentOrOwn     string `json:"rentOrOwn,omitempty"`
}

type Contact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// ReferralMode distinguishes a directory-selected provider from manual entry.
type ReferralMode string

const (
	ReferralModeDirectory ReferralMode = "directory"
	ReferralModeManual    ReferralMode = "manual"
)

// Referral is a tagged union: in directory mode the four display fields are
// derived from the selected entry and ProviderID is carried; in manual mode
// they are free text and ProviderID is empty. The wizard enforces the
// clearing rules when the mode switches.
type Referral struct {
	Mode            ReferralMode `json:"mode"`
	ProviderID      string       `json:"providerId,omitempty"`
	Practice        string       `json:"practice"`
	ProviderName    string       `json:"providerName,omitempty"`
	ProviderContact string       `json:"providerContact,omitempty"`
	ProviderEmail   string       `json:"providerEmail,omitempty"`
}

type EmploymentInfo struct {
	Employer        string `json:"employer"`
	EmployerAddress string `json:"employerAddress,omitempty"`
	JobTitle        string `json:"jobTitle"`
	EmploymentType  string `json:"employmentType"`
	LengthBucket    string `json:"lengthOfEmployment"`
	GrossMonthly    string `json:"grossMonthlyIncome"`
	NetMonthly      string `json:"netMonthlyIncome"`
	PayFrequency    string `json:"payFrequency"`
	SecondaryIncome string `json:"secondaryIncome,omitempty"`
	HouseholdIncome string `json:"householdIncome,omitempty"`
	SpouseEmployer  string `json:"spouseEmployer,omitempty"`
	SpouseIncome    string `json:"spouseIncome,omitempty"`
}

type FinancialInfo struct {
	CheckingBalance    string `json:"checkingBalance,omitempty"`
	SavingsBalance     string `json:"savingsBalance,omitempty"`
	RetirementBalance  string `json:"retirementBalance,omitempty"`
	InvestmentBalance  string `json:"investmentBalance,omitempty"`
	MortgageOrRent     string `json:"mortgageOrRent"` // mandatory
	CreditScore        string `json:"creditScore,omitempty"`
	CreditScoreUnknown bool   `json:"creditScoreUnknown"`
}

type DecisionSignals struct {
	TimeConsidering   string   `json:"timeConsidering"`
	FinancingPriority string   `json:"financingPriority"`
	TreatmentReasons  []string `json:"treatmentReasons"`
	Urgency           int      `json:"urgency"` // 1-10
	Readiness         string   `json:"readiness"`
}

// ComplianceFlags are the four consents; all must be true before signing.
type ComplianceFlags struct {
	ConsentCreditPull     bool `json:"consentCreditPull"`
	ConsentCommunications bool `json:"consentCommunications"`
	AckNoCreditImpact     bool `json:"ackNoCreditImpact"`
	ConfirmAccuracy       bool `json:"confirmAccuracy"`
}

// Employment type buckets offered by the wizard.
const (
	EmploymentFullTime     = "full_time"
	EmploymentPartTime     = "part_time"
	EmploymentSelfEmployed = "self_employed"
	EmploymentRetired      = "retired"
	EmploymentUnemployed   = "unemployed"
)

// SignedDocumentPackage is produced once, at the final step. ContentHash
// commits to the exact contract text shown to the signer; the rendered
// bytes also embed signature and date and therefore vary run-to-run.
type SignedDocumentPackage struct {
	SignerName    string `json:"signerName"`
	SignerEmail   string `json:"signerEmail"`
	ConsentGiven  bool   `json:"consentGiven"`
	IPAddress     string `json:"ipAddress"`
	UserAgent     string `json:"userAgent"`
	ContentHash   string `json:"documentHash"`
	DocumentID    string `json:"documentId"` // contract version identifier
	DocumentBytes []byte `json:"-"`
}

// StoredApplication is the server-side row created by the intake handler.
// Signature fields are stored separately.
type StoredApplication struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignatureMethodElectronic is the fixed method tag on signature records.
const SignatureMethodElectronic = "electronic_signature"

// SignatureRecord is created only when a signature package was submitted.
type SignatureRecord struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	SignerName    string    `json:"signerName"`
	SignerEmail   string    `json:"signerEmail"`
	IPAddress     string    `json:"ipAddress"`
	UserAgent     string    `json:"userAgent"`
	ConsentGiven  bool      `json:"consentGiven"`
	Method        string    `json:"method"`
	SignedAt      time.Time `json:"signedAt"`
	ContentHash   string    `json:"contentHash"`
}

// SignedDocumentLink stores only the storage path of the uploaded rendered
// document, linked 1:1 to its signature record.
type SignedDocumentLink struct {
	SignatureID string `json:"signatureId"`
	StoragePath string `json:"storagePath"`
}

// ProviderProfile is one entry from the provider directory service.
type ProviderProfile struct {
	ID           string `json:"id"`
	PracticeName string `json:"practiceName"`
	FullName     string `json:"fullName"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	City         string `json:"city"`
	State        string `json:"state"`
}
