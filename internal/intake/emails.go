// internal/intake/emails.go
package intake

import (
	"fmt"
	"html"
	"strings"
)

// buildProviderSummary renders the exhaustive provider-facing email. Each
// section is conditionally included: if none of its fields are populated
// the section heading is omitted entirely from the message.
func buildProviderSummary(req *SubmissionRequest) (subject, body string) {
	subject = fmt.Sprintf("New financing application: %s %s", req.FirstName, req.LastName)

	var b strings.Builder
	b.WriteString("<h2>New Patient Financing Application</h2>")

	writeSection(&b, "Personal Information", [][2]string{
		{"Name", strings.TrimSpace(fmt.Sprintf("%s %s %s", req.FirstName, req.MiddleName, req.LastName))},
		{"Date of Birth", formatDOB(req)},
		{"SSN", maskSSN(req.SSN)},
		{"Driver's License / State ID", req.DriverLicense},
		{"Sex", req.Sex},
		{"Marital Status", req.MaritalStatus},
		{"Primary Phone", req.PrimaryPhone},
		{"Secondary Phone", req.SecondaryPhone},
		{"Email", req.Email},
	})

	writeSection(&b, "Home Address", [][2]string{
		{"Street", req.Street},
		{"City", req.City},
		{"State", req.State},
		{"ZIP", req.Zip},
		{"Time at Address", req.TimeAtAddress},
		{"Rent or Own", req.RentOrOwn},
		{"Previous Street", req.PreviousStreet},
		{"Previous City", req.PreviousCity},
		{"Previous State", req.PreviousState},
		{"Previous ZIP", req.PreviousZip},
	})

	writeSection(&b, "Emergency Contact", [][2]string{
		{"Name", req.EmergencyName},
		{"Relationship", req.EmergencyRelationship},
		{"Phone", req.EmergencyPhone},
	})

	writeSection(&b, "Referral Information", [][2]string{
		{"Referring Practice", req.ReferralPractice},
		{"Provider", req.ProviderName},
		{"Provider Contact", req.ProviderContact},
		{"Provider Email", req.ProviderEmail},
		{"Directory Provider ID", req.ProviderID},
	})

	writeSection(&b, "Employment & Income", [][2]string{
		{"Employer", req.Employer},
		{"Employer Address", req.EmployerAddress},
		{"Job Title", req.JobTitle},
		{"Employment Type", req.EmploymentType},
		{"Length of Employment", req.LengthOfEmployment},
		{"Gross Monthly Income", formatMoney(req.GrossMonthlyIncome)},
		{"Net Monthly Income", formatMoney(req.NetMonthlyIncome)},
		{"Pay Frequency", req.PayFrequency},
		{"Secondary Income", formatMoney(req.SecondaryIncome)},
		{"Household Income", formatMoney(req.HouseholdIncome)},
		{"Spouse Employer", req.SpouseEmployer},
		{"Spouse Income", formatMoney(req.SpouseIncome)},
	})

	writeSection(&b, "Assets", [][2]string{
		{"Checking Balance", formatMoney(req.CheckingBalance)},
		{"Savings Balance", formatMoney(req.SavingsBalance)},
		{"Retirement Balance", formatMoney(req.RetirementBalance)},
		{"Investment Balance", formatMoney(req.InvestmentBalance)},
	})

	writeSection(&b, "Liabilities", [][2]string{
		{"Mortgage / Rent Payment", formatMoney(req.MortgageOrRent)},
	})

	creditScore := formatMoney(req.CreditScore)
	if req.CreditScoreUnknown {
		creditScore = "Unknown (patient does not know)"
	}
	writeSection(&b, "Credit Information", [][2]string{
		{"Credit Score", creditScore},
	})

	writeSection(&b, "Treatment Information", [][2]string{
		{"Estimated Treatment Cost", formatMoney(req.EstimatedCost)},
		{"Treatment Reasons", req.TreatmentReasons},
	})

	writeSection(&b, "Patient Psychology", [][2]string{
		{"Time Considering Treatment", req.TimeConsidering},
		{"Financing Priority", req.FinancingPriority},
		{"Urgency (1-10)", formatUrgency(req.Urgency)},
		{"Readiness to Proceed", req.Readiness},
	})

	writeSection(&b, "Consent & Commitment", [][2]string{
		{"Credit Report Authorization", formatConsent(req.ConsentCreditPull)},
		{"Communications Consent", formatConsent(req.ConsentCommunications)},
		{"No-Credit-Impact Acknowledgment", formatConsent(req.AckNoCreditImpact)},
		{"Accuracy Confirmation", formatConsent(req.ConfirmAccuracy)},
	})

	writeSection(&b, "Additional Information", [][2]string{
		{"Notes", req.AdditionalInfo},
	})

	if sig := req.SignatureData; sig != nil {
		writeSection(&b, "Signature Information", [][2]string{
			{"Signer Name", sig.SignerName},
			{"Signer Email", sig.SignerEmail},
			{"Consent Given", formatConsent(sig.ConsentGiven)},
			{"IP Address", sig.IPAddress},
			{"Agreement Version", sig.DocumentID},
			{"Document Hash", sig.DocumentHash},
		})
	}

	return subject, b.String()
}

// buildPatientThankYou renders the patient-facing confirmation email.
func buildPatientThankYou(req *SubmissionRequest) (subject, body string) {
	subject = "We received your financing application"

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", html.EscapeString(req.FirstName))
	b.WriteString("<p>Thank you for applying for dental treatment financing. Our team is reviewing your application and will be in touch shortly.</p>")
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li>Applicant: %s %s</li>", html.EscapeString(req.FirstName), html.EscapeString(req.LastName))
	fmt.Fprintf(&b, "<li>Email: %s</li>", html.EscapeString(req.Email))
	if req.ReferralPractice != "" {
		fmt.Fprintf(&b, "<li>Referring practice: %s</li>", html.EscapeString(req.ReferralPractice))
	}
	if req.EstimatedCost != nil {
		fmt.Fprintf(&b, "<li>Estimated treatment cost: %s</li>", formatMoney(req.EstimatedCost))
	}
	b.WriteString("</ul>")
	b.WriteString("<p>No further action is needed from you right now.</p>")

	return subject, b.String()
}

// writeSection emits one heading plus rows, skipping empty fields; if every
// field is empty the whole section is omitted.
func writeSection(b *strings.Builder, title string, rows [][2]string) {
	populated := false
	for _, row := range rows {
		if row[1] != "" {
			populated = true
			break
		}
	}
	if !populated {
		return
	}

	fmt.Fprintf(b, "<h3>%s</h3><table>", html.EscapeString(title))
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(b, "<tr><td><b>%s</b></td><td>%s</td></tr>",
			html.EscapeString(row[0]), html.EscapeString(row[1]))
	}
	b.WriteString("</table>")
}

func formatDOB(req *SubmissionRequest) string {
	if req.BirthDay == "" && req.BirthMonth == "" && req.BirthYear == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", req.BirthMonth, req.BirthDay, req.BirthYear)
}

// maskSSN shows only the last four digits in email summaries.
func maskSSN(ssn string) string {
	if len(ssn) != 9 {
		return ""
	}
	return "***-**-" + ssn[5:]
}

func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("$%.2f", *v)
}

func formatUrgency(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func formatConsent(given bool) string {
	if given {
		return "Yes"
	}
	return "No"
}
