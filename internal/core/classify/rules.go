package classify

import "regexp"

// Rule is a single build-time pattern rule. Identifier-shaped patterns
// (SSNs, keys, IBANs) are case-sensitive; keyword patterns carry (?i).
type Rule struct {
	Type        string
	Pattern     *regexp.Regexp
	Description string
}

// privateRules match personally identifying information and credentials.
var privateRules = []Rule{
	{
		Type:        "SSN",
		Pattern:     regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		Description: "US social security number",
	},
	{
		Type:        "CreditCard",
		Pattern:     regexp.MustCompile(`\b(?:\d{4}[ -]?){3}\d{4}\b`),
		Description: "payment card number",
	},
	{
		Type:        "Email",
		Pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Description: "email address",
	},
	{
		Type:        "Phone",
		Pattern:     regexp.MustCompile(`\b(?:\+?1[-. ]?)?\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`),
		Description: "phone number",
	},
	{
		Type:        "Credential",
		Pattern:     regexp.MustCompile(`(?i)\b(?:password|passwd|passphrase|secret key|private key|login code)\b`),
		Description: "credential reference",
	},
	{
		Type:        "APIKey",
		Pattern:     regexp.MustCompile(`\b(?:sk|pk|api|ghp|xoxb)_[A-Za-z0-9]{16,}\b`),
		Description: "API key or token",
	},
	{
		Type:        "BankAccount",
		Pattern:     regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
		Description: "bank account (IBAN)",
	},
}

// personalRules match private-life content that is not directly identifying.
var personalRules = []Rule{
	{
		Type:        "Health",
		Pattern:     regexp.MustCompile(`(?i)\b(?:health|doctor|therapy|therapist|diagnosis|medication|illness|surgery|anxiety|depression)\b`),
		Description: "health reference",
	},
	{
		Type:        "Family",
		Pattern:     regexp.MustCompile(`(?i)\b(?:mother|father|mom|dad|sister|brother|daughter|son|grandma|grandpa|family)\b`),
		Description: "family reference",
	},
	{
		Type:        "Emotion",
		Pattern:     regexp.MustCompile(`(?i)\b(?:feelings?|afraid|scared|lonely|ashamed|guilty|grief|crying|heartbroken)\b`),
		Description: "emotional content",
	},
	{
		Type:        "Relationship",
		Pattern:     regexp.MustCompile(`(?i)\b(?:girlfriend|boyfriend|wife|husband|divorce|breakup|wedding|marriage)\b`),
		Description: "relationship reference",
	},
}

// businessRules match work content that is shareable but not a raw idea.
var businessRules = []Rule{
	{
		Type:        "Client",
		Pattern:     regexp.MustCompile(`(?i)\b(?:client|customer|stakeholder|vendor|supplier)\b`),
		Description: "client or counterparty reference",
	},
	{
		Type:        "Finance",
		Pattern:     regexp.MustCompile(`(?i)\b(?:budget|invoice|contract|revenue|payroll|pricing)\b`),
		Description: "financial term",
	},
	{
		Type:        "MoneyAmount",
		Pattern:     regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?[kKmM]?\b`),
		Description: "money amount",
	},
	{
		Type:        "Project",
		Pattern:     regexp.MustCompile(`(?i)\b(?:project|deadline|milestone|sprint|deliverable|roadmap)\b`),
		Description: "project term",
	},
	{
		Type:        "Meeting",
		Pattern:     regexp.MustCompile(`(?i)\b(?:meeting|standup|offsite|presentation|workshop)\b`),
		Description: "meeting term",
	},
}
