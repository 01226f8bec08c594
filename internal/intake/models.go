// internal/intake/models.go
package intake

// SubmissionRequest is the flat intake payload posted by the submission
// client. Only first/last name, email and the credit-pull consent are
// required at the handler level; the wizard enforces much stricter per-step
// rules, but the handler never assumes the client validated anything.
type SubmissionRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`

	BirthDay   string `json:"birth_day,omitempty"`
	BirthMonth string `json:"birth_month,omitempty"`
	BirthYear  string `json:"birth_year,omitempty"`

	SSN           string `json:"ssn,omitempty"`
	DriverLicense string `json:"driver_license,omitempty"`
	Sex           string `json:"sex,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`

	PrimaryPhone   string `json:"primary_phone,omitempty"`
	SecondaryPhone string `json:"secondary_phone,omitempty"`
	Email          string `json:"email"`

	Street        string `json:"street,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
	TimeAtAddress string `json:"time_at_address,omitempty"`
	RentOrOwn     string `json:"rent_or_own,omitempty"`

	PreviousStreet string `json:"previous_street,omitempty"`
	PreviousCity   string `json:"previous_city,omitempty"`
	PreviousState  string `json:"previous_state,omitempty"`
	PreviousZip    string `json:"previous_zip,omitempty"`

	EmergencyName         string `json:"emergency_name,omitempty"`
	EmergencyRelationship string `json:"emergency_relationship,omitempty"`
	EmergencyPhone        string `json:"emergency_phone,omitempty"`

	ReferralPractice string `json:"referral_practice,omitempty"`
	ProviderName     string `json:"provider_name,omitempty"`
	ProviderContact  string `json:"provider_contact,omitempty"`
	ProviderEmail    string `json:"provider_email,omitempty"`
	ProviderID       string `json:"provider_id,omitempty"`

	EstimatedCost *float64 `json:"estimated_cost,omitempty"`

	Employer           string   `json:"employer,omitempty"`
	EmployerAddress    string   `json:"employer_address,omitempty"`
	JobTitle           string   `json:"job_title,omitempty"`
	EmploymentType     string   `json:"employment_type,omitempty"`
	LengthOfEmployment string   `json:"length_of_employment,omitempty"`
	GrossMonthlyIncome *float64 `json:"gross_monthly_income,omitempty"`
	NetMonthlyIncome   *float64 `json:"net_monthly_income,omitempty"`
	PayFrequency       string   `json:"pay_frequency,omitempty"`
	SecondaryIncome    *float64 `json:"secondary_income,omitempty"`
	HouseholdIncome    *float64 `json:"household_income,omitempty"`
	SpouseEmployer     string   `json:"spouse_employer,omitempty"`
	SpouseIncome       *float64 `json:"spouse_income,omitempty"`

	CheckingBalance    *float64 `json:"checking_balance,omitempty"`
	SavingsBalance     *float64 `json:"savings_balance,omitempty"`
	RetirementBalance  *float64 `json:"retirement_balance,omitempty"`
	InvestmentBalance  *float64 `json:"investment_balance,omitempty"`
	MortgageOrRent     *float64 `json:"mortgage_or_rent,omitempty"`
	CreditScore        *float64 `json:"credit_score,omitempty"`
	CreditScoreUnknown bool     `json:"credit_score_unknown,omitempty"`

	TimeConsidering   string `json:"time_considering,omitempty"`
	FinancingPriority string `json:"financing_priority,omitempty"`
	TreatmentReasons  string `json:"treatment_reasons,omitempty"` // delimited
	Urgency           int    `json:"urgency,omitempty"`
	Readiness         string `json:"readiness,omitempty"`

	ConsentCreditPull     bool `json:"consent_credit_pull"`
	ConsentCommunications bool `json:"consent_communications,omitempty"`
	AckNoCreditImpact     bool `json:"ack_no_credit_impact,omitempty"`
	ConfirmAccuracy       bool `json:"confirm_accuracy,omitempty"`

	AdditionalInfo string `json:"additional_info,omitempty"`

	SignatureData *SignatureData `json:"signature_data,omitempty"`
}

// SignatureData nests the signed-document package under a single key.
type SignatureData struct {
	SignerName   string `json:"signer_name"`
	SignerEmail  string `json:"signer_email"`
	ConsentGiven bool   `json:"consent_given"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
	DocumentHash string `json:"document_hash"`
	DocumentID   string `json:"document_id"`
	PDFBase64    string `json:"pdf_base64"`
}

// SubmissionResponse is the wire response. Exactly one of the shapes from
// the API contract is populated: {success,id,message[,warning]} on 200,
// {error} on 4xx, {error,details} on 500.
type SubmissionResponse struct {
	Success bool   `json:"success,omitempty"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
