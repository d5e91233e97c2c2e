package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Email    string `validate:"required,custom_email,allowed_domain"`
	Password string `validate:"required,strong_password"`
}

func newValidator(t *testing.T, domain string) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v, Options{AllowedEmailDomain: domain}))
	return v
}

func TestLoginFormRules(t *testing.T) {
	v := newValidator(t, "unc.edu.ph")
	opts := Options{AllowedEmailDomain: "unc.edu.ph"}

	cases := []struct {
		name    string
		form    loginForm
		message string
	}{
		{"valid", loginForm{"ana.cruz@unc.edu.ph", "Sup3r$ecretPw"}, ""},
		{"missing email", loginForm{"", "Sup3r$ecretPw"}, "Email is required"},
		{"bad format", loginForm{"ana.cruz", "Sup3r$ecretPw"}, "Invalid email format"},
		{"other domain", loginForm{"ana@gmail.com", "Sup3r$ecretPw"}, "Only @unc.edu.ph email addresses are allowed"},
		{"short", loginForm{"ana@unc.edu.ph", "Sh0rt!"}, "Password must be at least 12 characters"},
		{"no upper", loginForm{"ana@unc.edu.ph", "sup3r$ecretpw"}, "Password must contain at least one uppercase letter"},
		{"no lower", loginForm{"ana@unc.edu.ph", "SUP3R$ECRETPW"}, "Password must contain at least one lowercase letter"},
		{"no digit", loginForm{"ana@unc.edu.ph", "Super$ecretPw"}, "Password must contain at least one number"},
		{"no special", loginForm{"ana@unc.edu.ph", "Sup3rSecretPw"}, "Password must contain at least one special character"},
		{"missing password", loginForm{"ana@unc.edu.ph", ""}, "Password is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.form)
			if tc.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.message, Message(err, opts))
		})
	}
}

func TestEmptyDomainDisablesDomainRule(t *testing.T) {
	v := newValidator(t, "")
	assert.NoError(t, v.Struct(loginForm{"ana@gmail.com", "Sup3r$ecretPw"}))
}

func TestDomainRuleIsCaseInsensitive(t *testing.T) {
	v := newValidator(t, "@UNC.edu.ph")
	assert.NoError(t, v.Struct(loginForm{"Ana@unc.EDU.ph", "Sup3r$ecretPw"}))
}
