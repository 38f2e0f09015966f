package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Acme", "acme"},
		{"spaces become hyphens", "Acme Trading Co", "acme-trading-co"},
		{"runs collapse", "a  --  b", "a-b"},
		{"diacritics folded", "João's Café!", "joao-s-cafe"},
		{"leading and trailing trimmed", "  -acme-  ", "acme"},
		{"digits kept", "Loja 24h", "loja-24h"},
		{"only special chars", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewOrganization(t *testing.T) {
	org, err := NewOrganization("Acme Trading")
	require.NoError(t, err)
	assert.Equal(t, "Acme Trading", org.Name)
	assert.Equal(t, "acme-trading", org.Slug)
	assert.NotEqual(t, uuid.Nil, org.ID)
}

func TestNewOrganization_RequiresName(t *testing.T) {
	_, err := NewOrganization("   ")
	assert.Error(t, err)

	_, err = NewOrganization("!!!")
	assert.Error(t, err)
}

func TestNewOrganizationForUser_AppendsUserID(t *testing.T) {
	userID := uuid.New()
	org, err := NewOrganizationForUser("Finanças - João", userID)
	require.NoError(t, err)

	assert.Equal(t, "finan-as-jo-o-"+userID.String(), org.Slug)
}

func TestOrganization_WithSlugSuffix(t *testing.T) {
	org, err := NewOrganization("Acme")
	require.NoError(t, err)

	assert.Equal(t, "acme-1", org.WithSlugSuffix(1))
	assert.Equal(t, "acme-2", org.WithSlugSuffix(2))
}
