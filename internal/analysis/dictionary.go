package analysis

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// EntityPattern maps an entity keyword to its canned responsibility text.
type EntityPattern struct {
	Keyword        string `yaml:"keyword"`
	Responsibility string `yaml:"responsibility"`
}

// RiskTrigger maps a keyword (single token or phrase) to a cataloged risk.
type RiskTrigger struct {
	Keyword string   `yaml:"keyword"`
	Risk    RiskItem `yaml:"risk"`
}

// Dictionary is the static keyword configuration driving all three
// extractors. It is loaded once at startup and passed in explicitly; slices
// keep the insertion order that defines emission order.
type Dictionary struct {
	Entities       []EntityPattern `yaml:"entities"`
	GenericRisks   []RiskItem      `yaml:"generic_risks"`
	RiskTriggers   []RiskTrigger   `yaml:"risk_triggers"`
	Actors         []string        `yaml:"actors"`
	FillerPrefixes []string        `yaml:"filler_prefixes"`
}

// DefaultDictionary returns the built-in keyword dictionary.
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		Entities: []EntityPattern{
			{"user", "Authenticate, view content, perform actions, manage profile"},
			{"admin", "Manage users, configure system, view reports, moderate content"},
			{"customer", "Browse products, place orders, track deliveries, leave reviews"},
			{"order", "Store order details, track status, calculate totals, manage items"},
			{"product", "Store product info, manage inventory, display details, handle pricing"},
			{"system", "Process requests, manage data, handle errors, provide services"},
			{"database", "Store data, handle queries, ensure integrity, manage backups"},
			{"payment", "Process transactions, validate cards, handle refunds, generate receipts"},
			{"report", "Aggregate data, generate visualizations, export formats, schedule delivery"},
			{"notification", "Send alerts, manage preferences, track delivery, handle templates"},
			{"project", "Store project info, track progress, manage members, handle deadlines"},
			{"task", "Track status, assign owners, set deadlines, manage dependencies"},
			{"file", "Store content, manage versions, handle uploads, control access"},
			{"message", "Store content, track read status, manage threads, handle attachments"},
			{"account", "Manage credentials, track activity, handle permissions, store preferences"},
			{"inventory", "Track quantities, manage locations, handle transfers, set alerts"},
			{"category", "Organize items, manage hierarchy, handle relationships, enable filtering"},
			{"review", "Store ratings, manage comments, track helpfulness, moderate content"},
			{"cart", "Manage items, calculate totals, handle quantities, persist session"},
			{"shipping", "Calculate costs, track packages, manage addresses, handle returns"},
		},
		GenericRisks: []RiskItem{
			{"Performance issues with large datasets", ImpactMedium, LikelihoodMedium, "performance"},
			{"Security vulnerabilities in user input handling", ImpactHigh, LikelihoodMedium, "security"},
			{"Insufficient error handling causing poor user experience", ImpactMedium, LikelihoodHigh, "quality"},
		},
		RiskTriggers: []RiskTrigger{
			{"payment", RiskItem{"Payment gateway integration failure", ImpactHigh, LikelihoodLow, "integration"}},
			{"user data", RiskItem{"User data privacy and GDPR compliance issues", ImpactHigh, LikelihoodMedium, "compliance"}},
			{"password", RiskItem{"Weak password storage leading to data breach", ImpactHigh, LikelihoodMedium, "security"}},
			{"upload", RiskItem{"Malicious file upload vulnerability", ImpactHigh, LikelihoodMedium, "security"}},
			{"api", RiskItem{"API rate limiting and availability issues", ImpactMedium, LikelihoodMedium, "integration"}},
			{"database", RiskItem{"Database corruption or data loss", ImpactHigh, LikelihoodLow, "data"}},
			{"real-time", RiskItem{"Real-time synchronization failures", ImpactMedium, LikelihoodMedium, "integration"}},
			{"notification", RiskItem{"Notification delivery failures or spam issues", ImpactLow, LikelihoodMedium, "integration"}},
			{"third-party", RiskItem{"Third-party service dependency and downtime", ImpactMedium, LikelihoodMedium, "integration"}},
			{"mobile", RiskItem{"Cross-platform compatibility issues", ImpactMedium, LikelihoodHigh, "platform"}},
		},
		Actors: []string{"user", "admin", "administrator", "customer", "manager", "operator", "guest"},
		FillerPrefixes: []string{
			"the system should ",
			"the app should ",
			"users can ",
			"the user can ",
			"it should ",
			"should ",
		},
	}
}

// LoadDictionary reads a YAML dictionary file and overlays it on the
// defaults. A section present in the file replaces the corresponding default
// section wholesale; absent sections keep their defaults.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary file: %w", err)
	}

	var override Dictionary
	if err := yaml.UnmarshalStrict(data, &override); err != nil {
		return nil, fmt.Errorf("parse dictionary file: %w", err)
	}

	d := DefaultDictionary()
	if len(override.Entities) > 0 {
		d.Entities = override.Entities
	}
	if len(override.GenericRisks) > 0 {
		d.GenericRisks = override.GenericRisks
	}
	if len(override.RiskTriggers) > 0 {
		d.RiskTriggers = override.RiskTriggers
	}
	if len(override.Actors) > 0 {
		d.Actors = override.Actors
	}
	if len(override.FillerPrefixes) > 0 {
		d.FillerPrefixes = override.FillerPrefixes
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("dictionary validation failed: %w", err)
	}
	return d, nil
}

// Validate checks the dictionary for entries the extractors cannot use.
func (d *Dictionary) Validate() error {
	for i, e := range d.Entities {
		if strings.TrimSpace(e.Keyword) == "" {
			return fmt.Errorf("entity pattern %d has an empty keyword", i)
		}
	}
	for i, t := range d.RiskTriggers {
		if strings.TrimSpace(t.Keyword) == "" {
			return fmt.Errorf("risk trigger %d has an empty keyword", i)
		}
		if t.Risk.Description == "" {
			return fmt.Errorf("risk trigger %q has an empty risk description", t.Keyword)
		}
	}
	for i, r := range d.GenericRisks {
		if r.Description == "" {
			return fmt.Errorf("generic risk %d has an empty description", i)
		}
	}
	for i, a := range d.Actors {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("actor %d is empty", i)
		}
	}
	return nil
}
