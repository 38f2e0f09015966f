package identity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/doug-fsg/controlei/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugFold decomposes accented letters and drops the combining marks, so
// "João" slugifies to "joao" instead of losing the letter.
var slugFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a display name: diacritics folded,
// lower-cased, every non [a-z0-9] run collapsed to a single hyphen,
// leading and trailing hyphens trimmed.
func Slugify(name string) string {
	if folded, _, err := transform.String(slugFold, name); err == nil {
		name = folded
	}
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Organization is the tenant boundary. All financial data belongs to
// exactly one organization; the slug is immutable after creation.
type Organization struct {
	shared.BaseEntity
	Name    string
	Slug    string
	LogoURL string
}

// NewOrganization creates an organization with a slug derived from the name.
func NewOrganization(name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "organization name is required")
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "organization name must contain at least one alphanumeric character")
	}
	return &Organization{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug,
	}, nil
}

// NewOrganizationForUser creates an organization for the tenant backfill.
// The owning user's ID is appended to the slug, which keeps slugs globally
// unique even when two legacy users share a display name.
func NewOrganizationForUser(name string, userID uuid.UUID) (*Organization, error) {
	org, err := NewOrganization(name)
	if err != nil {
		return nil, err
	}
	org.Slug = fmt.Sprintf("%s-%s", org.Slug, userID)
	return org, nil
}

// WithSlugSuffix returns the slug with a numeric disambiguator appended.
// Used when the derived slug collides with an existing organization.
func (o *Organization) WithSlugSuffix(n int) string {
	return fmt.Sprintf("%s-%d", o.Slug, n)
}

// SetLogoURL updates the organization logo
func (o *Organization) SetLogoURL(url string) {
	o.LogoURL = url
}
