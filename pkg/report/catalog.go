// Package report holds the catalog of report descriptors offered to
// logged-in users. Viewing a report is gated by an authorization key built
// from ViewPrefix and the report name.
package report

// ViewPrefix is prepended to a report name to form its authorization key.
const ViewPrefix = "VIEW_REPORT_"

// Report describes one available report: a name plus opaque presentation
// metadata the UI consumes.
type Report struct {
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ViewKey returns the authorization key guarding this report.
func (r Report) ViewKey() string {
	return ViewPrefix + r.Name
}

// Catalog is an ordered list of report descriptors. Order is significant and
// preserved by all consumers.
type Catalog struct {
	reports []Report
}

// NewCatalog creates a catalog from an ordered descriptor list.
func NewCatalog(reports []Report) *Catalog {
	return &Catalog{
		reports: reports,
	}
}

// DefaultCatalog returns the built-in reports in display order.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Report{
		{Name: "Users", Metadata: map[string]interface{}{"title": "User Listing"}},
		{Name: "Groups", Metadata: map[string]interface{}{"title": "Group Listing"}},
		{Name: "PasswordAccess", Metadata: map[string]interface{}{"title": "Password Access Audit"}},
		{Name: "PasswordPermissions", Metadata: map[string]interface{}{"title": "Password Permissions"}},
		{Name: "PasswordExport", Metadata: map[string]interface{}{"title": "Current Password Export"}},
	})
}

// Reports returns the descriptors in catalog order. Callers receive a fresh
// slice they may filter in place.
func (c *Catalog) Reports() []Report {
	reports := make([]Report, len(c.reports))
	copy(reports, c.reports)
	return reports
}
